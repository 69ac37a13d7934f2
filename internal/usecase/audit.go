package usecase

import (
	"fmt"
	"math"
	"strings"

	"PromiseDetector/internal/domain"
)

// AuditConfig sets the feasibility thresholds on the required compound
// annual growth rate.
type AuditConfig struct {
	HighGrowthThreshold float64
	LowGrowthThreshold  float64
}

// DefaultAuditConfig returns the 15%/8% annual-growth defaults.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		HighGrowthThreshold: 0.15,
		LowGrowthThreshold:  0.08,
	}
}

// AuditEngine scores the credibility of a promise against budgetary
// feasibility and voting-record consistency. It is pure: identical
// inputs always produce identical verdicts.
type AuditEngine struct {
	cfg AuditConfig
}

// NewAuditEngine constructs the engine; a zero config falls back to the
// defaults.
func NewAuditEngine(cfg AuditConfig) *AuditEngine {
	if cfg.HighGrowthThreshold == 0 && cfg.LowGrowthThreshold == 0 {
		cfg = DefaultAuditConfig()
	}
	return &AuditEngine{cfg: cfg}
}

// Audit runs the consistency check and the feasibility calculation,
// derives the verdict from the fixed decision table, and renders the
// explanation.
func (e *AuditEngine) Audit(promise domain.Promise, history []domain.Vote, baseline domain.FiscalBaseline) (domain.AuditVerdict, error) {
	if baseline.HorizonYears <= 0 {
		return domain.AuditVerdict{}, &domain.InvalidBaselineError{
			Field: "horizonYears", Value: float64(baseline.HorizonYears),
		}
	}
	if baseline.TargetMultiplier <= 0 {
		return domain.AuditVerdict{}, &domain.InvalidBaselineError{
			Field: "targetMultiplier", Value: baseline.TargetMultiplier,
		}
	}

	inconsistent := firstInconsistentVote(promise, history)
	rate := math.Pow(baseline.TargetMultiplier, 1/float64(baseline.HorizonYears)) - 1
	feasibility := e.classifyFeasibility(rate)
	classification := classify(inconsistent != nil, feasibility)

	verdict := domain.AuditVerdict{
		Classification:        classification,
		Feasibility:           feasibility,
		InconsistencyDetected: inconsistent != nil,
		InconsistentVote:      inconsistent,
		RequiredGrowthRate:    rate,
	}
	verdict.Explanation = e.explain(promise, verdict, baseline, len(history))

	return verdict, nil
}

// firstInconsistentVote returns the earliest listed Against vote whose
// topic matches one of the promise topics, or nil.
func firstInconsistentVote(promise domain.Promise, history []domain.Vote) *domain.Vote {
	for _, vote := range history {
		if vote.Choice != domain.VoteAgainst {
			continue
		}
		for _, topic := range promise.Topics {
			topic = strings.TrimSpace(topic)
			if topic == "" {
				continue
			}
			if strings.Contains(strings.ToLower(vote.Topic), strings.ToLower(topic)) {
				matched := vote
				return &matched
			}
		}
	}
	return nil
}

func (e *AuditEngine) classifyFeasibility(rate float64) domain.Feasibility {
	switch {
	case rate > e.cfg.HighGrowthThreshold:
		return domain.FeasibilityLow
	case rate > e.cfg.LowGrowthThreshold:
		return domain.FeasibilityMedium
	default:
		return domain.FeasibilityHigh
	}
}

// classify applies the fixed decision table, in order: any detected
// inconsistency dominates; otherwise low feasibility downgrades.
func classify(inconsistencyDetected bool, feasibility domain.Feasibility) domain.Classification {
	if inconsistencyDetected {
		return domain.ClassificationEmpty
	}
	if feasibility == domain.FeasibilityLow {
		return domain.ClassificationDubious
	}
	return domain.ClassificationPlausible
}

func (e *AuditEngine) explain(promise domain.Promise, verdict domain.AuditVerdict, baseline domain.FiscalBaseline, historyLen int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Promise %q is classified as %s.",
		promise.Statement, strings.ToUpper(string(verdict.Classification)))

	if vote := verdict.InconsistentVote; vote != nil {
		fmt.Fprintf(&b, " On %s the official voted against '%s' (%s), contradicting the stated commitment.",
			vote.Date.Format("2006-01-02"), vote.Topic, vote.Description)
	}
	if historyLen == 0 {
		b.WriteString(" No voting history was available; the absence of contrary votes is not proof of consistency.")
	}

	target := baseline.CurrentAmount * baseline.TargetMultiplier
	fmt.Fprintf(&b, " Reaching the target takes the budget from %s to %s over %d years, an implied growth of %.1f%% per year",
		formatAmount(baseline.CurrentAmount), formatAmount(target),
		baseline.HorizonYears, verdict.RequiredGrowthRate*100)

	switch verdict.Feasibility {
	case domain.FeasibilityLow:
		fmt.Fprintf(&b, " — above the %.0f%% annual ceiling considered achievable under current fiscal rules.",
			e.cfg.HighGrowthThreshold*100)
	case domain.FeasibilityMedium:
		b.WriteString(" — aggressive but within reach of past budget expansions.")
	default:
		b.WriteString(" — compatible with ordinary budget growth.")
	}

	return b.String()
}

func formatAmount(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("%.1f billion", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.1f million", value/1e6)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}
