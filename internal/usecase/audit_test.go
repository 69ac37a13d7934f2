package usecase

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"PromiseDetector/internal/domain"
)

var educationPromise = domain.Promise{
	Statement: "Vou garantir que o orçamento da educação básica seja dobrado até 2027.",
	Topics:    []string{"Fundeb", "educação"},
}

var educationBaseline = domain.FiscalBaseline{
	CurrentAmount:    180e9,
	TargetMultiplier: 2.0,
	HorizonYears:     3,
}

func fundebHistory() []domain.Vote {
	return []domain.Vote{
		{
			Date:        time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			Topic:       "Fundeb",
			Choice:      domain.VoteAgainst,
			Description: "Manutenção de repasses obrigatórios",
		},
		{
			Date:        time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			Topic:       "Piso Salarial Professores",
			Choice:      domain.VoteAbstain,
			Description: "Reajuste anual",
		},
	}
}

func TestAuditInconsistencyDominates(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	// Any feasibility input: even a trivially easy target stays Empty
	// once an Against vote on a promise topic exists.
	easy := domain.FiscalBaseline{CurrentAmount: 180e9, TargetMultiplier: 1.01, HorizonYears: 10}

	verdict, err := engine.Audit(educationPromise, fundebHistory(), easy)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	if !verdict.InconsistencyDetected {
		t.Fatalf("expected inconsistency to be detected")
	}
	if verdict.Classification != domain.ClassificationEmpty {
		t.Fatalf("expected empty classification, got %s", verdict.Classification)
	}
	if verdict.InconsistentVote == nil || verdict.InconsistentVote.Topic != "Fundeb" {
		t.Fatalf("expected the Fundeb vote to be cited, got %+v", verdict.InconsistentVote)
	}
	if !strings.Contains(verdict.Explanation, "2023-12-15") {
		t.Fatalf("explanation should cite the vote date: %s", verdict.Explanation)
	}
}

func TestAuditFeasibilityArithmetic(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	// Doubling 180e9 over 3 years requires about 25.99% annual growth.
	verdict, err := engine.Audit(educationPromise, nil, educationBaseline)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	want := math.Pow(2.0, 1.0/3.0) - 1
	if math.Abs(verdict.RequiredGrowthRate-want) > 1e-9 {
		t.Fatalf("unexpected growth rate: %v", verdict.RequiredGrowthRate)
	}
	if verdict.RequiredGrowthRate < 0.2598 || verdict.RequiredGrowthRate > 0.2600 {
		t.Fatalf("growth rate out of expected band: %v", verdict.RequiredGrowthRate)
	}
	if verdict.Feasibility != domain.FeasibilityLow {
		t.Fatalf("expected low feasibility, got %s", verdict.Feasibility)
	}
	if verdict.Classification != domain.ClassificationDubious {
		t.Fatalf("expected dubious classification, got %s", verdict.Classification)
	}
}

func TestAuditPlausibleClassifications(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	cases := []struct {
		name       string
		multiplier float64
		years      int
		want       domain.Feasibility
	}{
		{"medium growth", 1.40, 3, domain.FeasibilityMedium},
		{"high feasibility", 1.10, 3, domain.FeasibilityHigh},
	}

	for _, tc := range cases {
		baseline := domain.FiscalBaseline{CurrentAmount: 100e9, TargetMultiplier: tc.multiplier, HorizonYears: tc.years}
		verdict, err := engine.Audit(educationPromise, nil, baseline)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if verdict.Feasibility != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, verdict.Feasibility)
		}
		if verdict.Classification != domain.ClassificationPlausible {
			t.Fatalf("%s: expected plausible, got %s", tc.name, verdict.Classification)
		}
	}
}

func TestAuditEmptyHistoryIsExplicit(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	verdict, err := engine.Audit(educationPromise, nil, educationBaseline)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	if verdict.InconsistencyDetected {
		t.Fatalf("empty history must not count as inconsistency")
	}
	if !strings.Contains(verdict.Explanation, "No voting history was available") {
		t.Fatalf("explanation must state the missing history: %s", verdict.Explanation)
	}
}

func TestAuditDeterministic(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())
	history := fundebHistory()

	first, err := engine.Audit(educationPromise, history, educationBaseline)
	if err != nil {
		t.Fatalf("first audit: %v", err)
	}
	second, err := engine.Audit(educationPromise, history, educationBaseline)
	if err != nil {
		t.Fatalf("second audit: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("verdicts differ for identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestAuditInvalidBaseline(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	cases := []struct {
		name     string
		baseline domain.FiscalBaseline
		field    string
	}{
		{"zero horizon", domain.FiscalBaseline{CurrentAmount: 1e9, TargetMultiplier: 2, HorizonYears: 0}, "horizonYears"},
		{"negative horizon", domain.FiscalBaseline{CurrentAmount: 1e9, TargetMultiplier: 2, HorizonYears: -2}, "horizonYears"},
		{"zero multiplier", domain.FiscalBaseline{CurrentAmount: 1e9, TargetMultiplier: 0, HorizonYears: 3}, "targetMultiplier"},
	}

	for _, tc := range cases {
		_, err := engine.Audit(educationPromise, nil, tc.baseline)
		var invalid *domain.InvalidBaselineError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidBaselineError, got %v", tc.name, err)
		}
		if invalid.Field != tc.field {
			t.Fatalf("%s: expected field %s, got %s", tc.name, tc.field, invalid.Field)
		}
	}
}

func TestAuditTopicMatchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	engine := NewAuditEngine(DefaultAuditConfig())

	history := []domain.Vote{{
		Date:   time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Topic:  "Emenda do FUNDEB",
		Choice: domain.VoteAgainst,
	}}

	verdict, err := engine.Audit(domain.Promise{Statement: "promessa", Topics: []string{"fundeb"}}, history, educationBaseline)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !verdict.InconsistencyDetected {
		t.Fatalf("expected case-insensitive topic match")
	}
}
