package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"PromiseDetector/internal/config"
	"PromiseDetector/internal/directory"
	"PromiseDetector/internal/domain"
	"PromiseDetector/internal/infrastructure/camara"
	"PromiseDetector/internal/infrastructure/identity"
	"PromiseDetector/internal/infrastructure/inspect"
	"PromiseDetector/internal/infrastructure/scheduler"
	"PromiseDetector/internal/infrastructure/scout"
	"PromiseDetector/internal/infrastructure/storage"
	"PromiseDetector/internal/infrastructure/telegram"
	"PromiseDetector/internal/logging"
	"PromiseDetector/internal/ports"
	"PromiseDetector/internal/usecase"
)

// Application wires configuration to use cases and lifecycle
// orchestration. The store is the only long-lived resource: created
// once per process, closed on shutdown.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.SQLiteStore
	pipeline *usecase.Pipeline
	evidence *usecase.EvidenceService
	registry *usecase.RegistryService
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Directory.TimeoutSeconds) * time.Second}
	chamber := camara.NewClient(cfg.Directory.BaseURL, httpClient)

	providers := directory.NewRegistry()
	providers.Register(chamber)

	provider, err := providers.Resolve(cfg.Directory.Provider)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("select directory provider: %w", err)
	}

	synchronizer := usecase.NewSynchronizer(usecase.SynchronizerDeps{
		Repository: store.Politicians(),
		Provider:   provider,
		Logger:     baseLogger.With("component", "synchronizer"),
	})

	engine := usecase.NewAuditEngine(usecase.AuditConfig{
		HighGrowthThreshold: cfg.Audit.HighGrowthThreshold,
		LowGrowthThreshold:  cfg.Audit.LowGrowthThreshold,
	})

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID)
	}

	ids := identity.Generator{}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Synchronizer: synchronizer,
		Audit:        engine,
		Votes:        chamber,
		Scout:        scout.NewPageScout(nil, cfg.Scout.Keywords),
		Notifier:     notifier,
		Logger:       baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		store:    store,
		pipeline: pipeline,
		evidence: usecase.NewEvidenceService(usecase.EvidenceDeps{
			Politicians: store.Politicians(),
			Evidence:    store.Evidence(),
			IDs:         ids,
		}),
		registry: usecase.NewRegistryService(usecase.RegistryDeps{
			Repository: store.Politicians(),
			Evidence:   store.Evidence(),
			IDs:        ids,
		}),
	}, nil
}

// Evidence exposes the attachment subsystem to embedding callers.
func (a *Application) Evidence() *usecase.EvidenceService {
	return a.evidence
}

// Registry exposes the curation service to embedding callers.
func (a *Application) Registry() *usecase.RegistryService {
	return a.registry
}

// Run dumps the remote relational backend when configured, then drives
// the audit pipeline: periodically when a scheduler interval is set,
// once otherwise. The periodic mode blocks until the context ends.
func (a *Application) Run(ctx context.Context) error {
	if a.cfg.Inspection.DSN != "" {
		if err := a.runInspection(ctx); err != nil {
			return fmt.Errorf("inspection: %w", err)
		}
	}

	if a.pipeline == nil {
		return nil
	}

	cases := casesFromConfig(a.cfg.Cases)

	if a.cfg.Scheduler.IntervalHours <= 0 {
		return a.pipeline.Run(ctx, cases)
	}

	driver := scheduler.NewIntervalScheduler(time.Duration(a.cfg.Scheduler.IntervalHours) * time.Hour)
	recurring := usecase.NewScheduler(driver, a.pipeline, cases)
	if err := recurring.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer recurring.Stop(context.Background())

	<-ctx.Done()
	return nil
}

// Close releases the embedded store.
func (a *Application) Close() error {
	return a.store.Close()
}

func (a *Application) runInspection(ctx context.Context) error {
	inspector, err := inspect.Open(a.cfg.Inspection.DSN)
	if err != nil {
		return err
	}
	defer inspector.Close()

	report := inspector.Report(ctx, a.cfg.Inspection.Tables)

	serialized, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("serialize report: %w", err)
	}
	a.logger.Info("inspection report", "report", string(serialized))
	return nil
}

func casesFromConfig(cfg []config.CaseConfig) []usecase.Case {
	cases := make([]usecase.Case, 0, len(cfg))
	for _, c := range cfg {
		cases = append(cases, usecase.Case{
			Politician: c.Politician,
			Statement:  c.Statement,
			Page:       c.Page,
			Topics:     c.Topics,
			Baseline: domain.FiscalBaseline{
				CurrentAmount:    c.Baseline.CurrentAmount,
				TargetMultiplier: c.Baseline.TargetMultiplier,
				HorizonYears:     c.Baseline.HorizonYears,
			},
		})
	}
	return cases
}
