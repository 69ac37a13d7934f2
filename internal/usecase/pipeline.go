package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/ports"
)

// Case pairs an official with a promise under audit. When Statement is
// empty and Page is set, the scout supplies the statement.
type Case struct {
	Politician string
	Statement  string
	Page       string
	Topics     []string
	Baseline   domain.FiscalBaseline
}

// PipelineDeps wires all driven adapters into the audit workflow.
type PipelineDeps struct {
	Synchronizer *Synchronizer
	Audit        *AuditEngine
	Votes        ports.VotingSource
	Scout        ports.PromiseSource
	Notifier     ports.Notifier
	Logger       *slog.Logger
}

// Pipeline resolves each watched case, audits the promise against the
// official's voting history, and publishes a digest of the verdicts.
// Verdicts are computed on demand and never persisted.
type Pipeline struct {
	synchronizer *Synchronizer
	audit        *AuditEngine
	votes        ports.VotingSource
	scout        ports.PromiseSource
	notifier     ports.Notifier
	logger       *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		synchronizer: deps.Synchronizer,
		audit:        deps.Audit,
		votes:        deps.Votes,
		scout:        deps.Scout,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
	}
}

type caseVerdict struct {
	politician domain.Politician
	statement  string
	verdict    domain.AuditVerdict
}

// Run executes one audit pass over the watched cases.
func (p *Pipeline) Run(ctx context.Context, cases []Case) error {
	if p.synchronizer == nil || p.audit == nil {
		return nil
	}

	var verdicts []caseVerdict
	for _, c := range cases {
		politician, err := p.synchronizer.Resolve(ctx, c.Politician)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", c.Politician, err)
		}

		statement := c.Statement
		if statement == "" && c.Page != "" && p.scout != nil {
			statements, err := p.scout.FetchStatements(ctx, c.Page)
			if err != nil {
				return fmt.Errorf("scout %s: %w", c.Politician, err)
			}
			if len(statements) == 0 {
				p.debug("no promise statements found", "politician", politician.Name, "page", c.Page)
				continue
			}
			statement = statements[0]
		}

		var history []domain.Vote
		if p.votes != nil && politician.ExternalDirectoryID != "" {
			history, err = p.votes.FetchVotes(ctx, politician.ExternalDirectoryID)
			if err != nil {
				return fmt.Errorf("fetch votes for %s: %w", politician.Name, err)
			}
		}

		promise := domain.Promise{Statement: statement, Topics: c.Topics}
		verdict, err := p.audit.Audit(promise, history, c.Baseline)
		if err != nil {
			return fmt.Errorf("audit %s: %w", politician.Name, err)
		}

		p.debug("case audited",
			"politician", politician.Name,
			"classification", string(verdict.Classification),
			"feasibility", string(verdict.Feasibility))

		verdicts = append(verdicts, caseVerdict{
			politician: politician,
			statement:  statement,
			verdict:    verdict,
		})
	}

	if len(verdicts) == 0 || p.notifier == nil {
		return nil
	}

	return p.notifier.PublishDigest(ctx, buildDigest(verdicts))
}

func buildDigest(verdicts []caseVerdict) string {
	var b strings.Builder
	for _, cv := range verdicts {
		fmt.Fprintf(&b, "- %s (%s-%s)\nVerdict: %s | Feasibility: %s\n%s\n\n",
			cv.politician.Name,
			cv.politician.Party,
			cv.politician.Region,
			strings.ToUpper(string(cv.verdict.Classification)),
			cv.verdict.Feasibility,
			cv.verdict.Explanation)
	}
	return b.String()
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
