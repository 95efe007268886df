package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsScanner/internal/config"
	"NewsScanner/internal/domain"
	"NewsScanner/internal/infrastructure/csvout"
	"NewsScanner/internal/infrastructure/fetcher"
	"NewsScanner/internal/infrastructure/ner"
	"NewsScanner/internal/infrastructure/parser"
	"NewsScanner/internal/infrastructure/scheduler"
	"NewsScanner/internal/infrastructure/storage"
	"NewsScanner/internal/infrastructure/telegram"
	"NewsScanner/internal/logging"
	"NewsScanner/internal/ports"
	"NewsScanner/internal/scanner"
	"NewsScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	archive  *storage.SQLiteArchive
}

// Options carries overrides used by tests and embedding callers.
type Options struct {
	HTTPClient *http.Client
	NewRunID   func() string
}

// New validates cfg and builds a runnable application instance. Nothing is
// fetched or written here.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	watchlist, err := usecase.NewWatchlist(cfg.Companies)
	if err != nil {
		return nil, err
	}

	loc := cfg.Window.Location()
	registry := scanner.NewRegistry()
	registry.Register(parser.NewListExtractor(cfg.Source.Extractor, parser.Selectors{
		Item:    cfg.Source.Selectors.Item,
		Title:   cfg.Source.Selectors.Title,
		Summary: cfg.Source.Selectors.Summary,
		Date:    cfg.Source.Selectors.Date,
	}, cfg.Source.DateLayouts, loc))

	httpFetcher := fetcher.NewHTTPFetcher(opts.HTTPClient, cfg.Source.UserAgent, cfg.Source.Timeout())
	source := parser.NewStrategySource(httpFetcher, registry, cfg.Source.URL, cfg.Source.Extractor,
		baseLogger.With("component", "source"))

	recognizer := newRecognizer(cfg, opts.HTTPClient)

	var archive *storage.SQLiteArchive
	var runArchive ports.RunArchive
	if cfg.Archive.DSN != "" {
		archive, err = storage.OpenSQLiteArchive(ctx, cfg.Archive.DSN)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		runArchive = archive
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Recognizer: recognizer,
		Writer:     csvout.NewWriter(),
		Archive:    runArchive,
		Notifier:   notifier,
		Watchlist:  watchlist,
		Logger:     baseLogger.With("component", "pipeline"),
		OutputPath: cfg.Output.Path,
		WindowDays: cfg.Window.Days,
		Location:   loc,
		Workers:    cfg.NER.Workers,
		NewRunID:   opts.NewRunID,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, archive: archive}, nil
}

// newRecognizer picks the configured backend. The rule backend learns the
// watch-list names as ORG so company mentions are labelled consistently.
func newRecognizer(cfg config.Config, client *http.Client) ports.EntityRecognizer {
	if cfg.NER.Kind == config.RecognizerHTTP {
		return ner.NewHTTPRecognizer(cfg.NER.Endpoint, cfg.NER.APIKey, client)
	}

	entries := make([]ner.Entry, 0, len(cfg.Companies)+len(cfg.NER.Gazetteer))
	for _, name := range cfg.Companies {
		entries = append(entries, ner.Entry{Text: name, Label: "ORG"})
	}
	for _, e := range cfg.NER.Gazetteer {
		entries = append(entries, ner.Entry{Text: e.Text, Label: e.Label, Variants: e.Variants})
	}
	return ner.NewRuleRecognizer(entries)
}

// Run performs a single pipeline execution for the given reference day.
func (a *Application) Run(ctx context.Context, today time.Time) (domain.RunSummary, error) {
	return a.pipeline.Run(ctx, today)
}

// Schedule runs the pipeline on the configured interval until ctx is done.
func (a *Application) Schedule(ctx context.Context) error {
	ticker := scheduler.NewTickerScheduler(a.cfg.Scheduler.IntervalDuration())
	sched := usecase.NewScheduler(ticker, a.pipeline, a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "interval", a.cfg.Scheduler.IntervalDuration().String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

// Archive exposes the run archive; nil when archive.dsn is empty.
func (a *Application) Archive() *storage.SQLiteArchive {
	return a.archive
}

// Close releases the archive connection.
func (a *Application) Close() error {
	if a.archive == nil {
		return nil
	}
	return a.archive.Close()
}
