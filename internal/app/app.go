package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/config"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/infrastructure/congress"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/infrastructure/llm"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/infrastructure/notify"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/infrastructure/scheduler"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/infrastructure/storage"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/release"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/usecase"
)

// Options selects what a single invocation does.
type Options struct {
	Chamber       domain.Chamber
	PopulateFirst bool
	Daemon        bool
}

// Application wires configuration to use cases and owns collaborator
// lifecycles for one process.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.PostgresStore
	source   ports.BillSource
	pipeline *usecase.Pipeline
	backlog  *usecase.Backlog
	testRun  *usecase.TestRun
	notifier ports.Notifier
}

// New performs all fatal startup checks (credential file, store
// connection) and builds a runnable application. No URL is touched here.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	apiKey, err := cfg.Congress.Key()
	if err != nil {
		return nil, fmt.Errorf("congress credential: %w", err)
	}

	store, err := storage.NewPostgresStore(cfg.Database.DSN, logger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}

	source := congress.NewClient(cfg.Congress.BaseURL, apiKey, &http.Client{Timeout: 30 * time.Second},
		logger.With("component", "congress"))

	completer := llm.NewOpenAIClient(cfg.OpenAI)
	generator := release.NewGenerator(completer, source, logger.With("component", "generator"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Queue:     store,
		Stories:   store,
		Source:    source,
		Generator: generator,
		Defaults: usecase.StoryDefaults{
			Uname:          cfg.Pipeline.Uname,
			Byline:         cfg.Pipeline.Byline,
			HouseSourceID:  cfg.Pipeline.HouseSourceID,
			SenateSourceID: cfg.Pipeline.SenateSourceID,
		},
		BatchLimit: cfg.Pipeline.BatchLimit,
		Logger:     logger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		source:   source,
		pipeline: pipeline,
		backlog:  usecase.NewBacklog(store, source, logger.With("component", "backlog")),
		testRun:  usecase.NewTestRun(source, generator, logger.With("component", "testrun")),
		notifier: buildNotifier(cfg.Notifications, logger),
	}, nil
}

// Close releases the store connection.
func (a *Application) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// Run executes one pipeline pass (or a daemon loop) per the options.
func (a *Application) Run(ctx context.Context, opts Options) error {
	if !opts.Daemon {
		return a.runOnce(ctx, opts)
	}

	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval)
	if err := driver.Start(ctx, func(time.Time) {
		if err := a.runOnce(ctx, opts); err != nil {
			a.logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		return err
	}

	<-ctx.Done()
	return driver.Stop(context.Background())
}

func (a *Application) runOnce(ctx context.Context, opts Options) error {
	if opts.PopulateFirst {
		if err := a.backlog.SeedAll(ctx); err != nil {
			return fmt.Errorf("seed backlog: %w", err)
		}
	}

	summary, err := a.pipeline.Run(ctx, opts.Chamber)
	if err != nil {
		return err
	}
	summary.PopulateFirst = opts.PopulateFirst

	report := usecase.FormatRunSummary(summary)
	a.logger.Info("run complete",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"deferred", summary.Deferred,
		"total", summary.TotalURLs,
		"stopped", summary.Stopped)

	if a.notifier != nil {
		subject := fmt.Sprintf("Bill intro load summary (%s)", summary.Chamber.Title())
		if err := a.notifier.SendRunSummary(ctx, subject, report); err != nil {
			a.logger.Error("run summary notification failed", "error", err)
		}
	}

	return nil
}

// RunTest executes the queue-bypassing test mode over [start, end).
func (a *Application) RunTest(ctx context.Context, start, end int) error {
	return a.testRun.Run(ctx, start, end, "test_outputs.csv")
}

func buildNotifier(cfg config.NotificationConfig, logger *slog.Logger) ports.Notifier {
	var channels []ports.Notifier

	if cfg.Email.Host != "" {
		channels = append(channels, notify.NewEmailNotifier(cfg.Email))
	}

	if cfg.Telegram.BotToken != "" {
		telegram, err := notify.NewTelegramNotifier(cfg.Telegram)
		if err != nil {
			logger.Error("telegram notifier unavailable", "error", err)
		} else {
			channels = append(channels, telegram)
		}
	}

	if len(channels) == 0 {
		return nil
	}
	return notify.NewMultiNotifier(channels...)
}
