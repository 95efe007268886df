package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Recognizer ports.EntityRecognizer
	Writer     ports.RecordWriter
	Archive    ports.RunArchive
	Notifier   ports.Notifier
	Watchlist  *Watchlist
	Logger     *slog.Logger

	OutputPath string
	WindowDays int
	Location   *time.Location
	Workers    int

	// NewRunID overrides run identifier generation; defaults to random UUIDs.
	NewRunID func() string
}

// Pipeline implements the fetch, filter, annotate, tag and write workflow.
type Pipeline struct {
	source     ports.ArticleSource
	recognizer ports.EntityRecognizer
	writer     ports.RecordWriter
	archive    ports.RunArchive
	notifier   ports.Notifier
	watchlist  *Watchlist
	annotator  *Annotator
	logger     *slog.Logger

	outputPath string
	windowDays int
	location   *time.Location
	newRunID   func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	newRunID := deps.NewRunID
	if newRunID == nil {
		newRunID = func() string { return uuid.NewString() }
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Pipeline{
		source:     deps.Source,
		recognizer: deps.Recognizer,
		writer:     deps.Writer,
		archive:    deps.Archive,
		notifier:   deps.Notifier,
		watchlist:  deps.Watchlist,
		annotator:  NewAnnotator(deps.Recognizer, deps.Workers, deps.Logger),
		logger:     deps.Logger,
		outputPath: deps.OutputPath,
		windowDays: deps.WindowDays,
		location:   loc,
		newRunID:   newRunID,
	}
}

// Run executes one pass for the reference day today. Any stage failure aborts
// the run before the output file is touched; per-entry extraction problems and
// undated records are logged and left out.
func (p *Pipeline) Run(ctx context.Context, today time.Time) (domain.RunSummary, error) {
	today = today.In(p.location)
	summary := domain.RunSummary{RunID: p.newRunID(), Today: today}
	log := p.logger
	if log != nil {
		log = log.With("run_id", summary.RunID)
	}

	if err := p.preflight(); err != nil {
		return summary, err
	}

	if err := p.recognizer.Init(ctx); err != nil {
		return summary, asRecognizerError("init", err)
	}
	defer func() {
		if err := p.recognizer.Close(); err != nil {
			logWarn(log, "close recognizer", "error", err)
		}
	}()

	raw, skipped, err := p.source.FetchArticles(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch articles: %w", err)
	}
	for _, s := range skipped {
		logWarn(log, "skip article entry", "error", s)
	}
	summary.Extracted = len(raw)
	summary.Skipped = len(skipped)

	records := make([]domain.ArticleRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, domain.NewRecord(r))
	}

	records, rejected := FilterByWindow(records, today, p.windowDays, p.location)
	for _, r := range rejected {
		logWarn(log, "reject record", "error", r)
	}
	summary.Rejected = len(rejected)
	logDebug(log, "window filter done", "kept", len(records), "rejected", len(rejected))

	records, err = p.annotator.Annotate(ctx, records)
	if err != nil {
		return summary, fmt.Errorf("annotate entities: %w", err)
	}

	records = TagCompanies(records, p.watchlist)
	for _, rec := range records {
		if len(rec.Tags.Companies) > 0 {
			summary.Tagged++
		}
	}

	if err := p.writer.Write(records, p.outputPath); err != nil {
		return summary, fmt.Errorf("write records: %w", err)
	}
	summary.Written = len(records)
	logInfo(log, "records written", "path", p.outputPath, "count", summary.Written, "tagged", summary.Tagged)

	if p.archive != nil {
		if err := p.archive.SaveRun(ctx, summary.RunID, today, records); err != nil {
			logWarn(log, "archive run", "error", err)
		}
	}

	if p.notifier != nil {
		if digest := buildDigestMessage(records); digest != "" {
			if err := p.notifier.PublishDigest(ctx, digest); err != nil {
				logWarn(log, "publish digest", "error", err)
			}
		}
	}

	return summary, nil
}

func (p *Pipeline) preflight() error {
	if p.watchlist == nil {
		return &domain.InvalidConfigError{Field: "companies", Reason: "watch-list is not loaded"}
	}
	if p.outputPath == "" {
		return &domain.InvalidConfigError{Field: "output.path", Reason: "must be set"}
	}
	if p.source == nil {
		return &domain.InvalidConfigError{Field: "source", Reason: "article source is not configured"}
	}
	if p.recognizer == nil {
		return &domain.InvalidConfigError{Field: "ner", Reason: "recognizer is not configured"}
	}
	if p.writer == nil {
		return &domain.InvalidConfigError{Field: "output", Reason: "writer is not configured"}
	}
	return nil
}

// buildDigestMessage lists the records that mention at least one watch-list company.
func buildDigestMessage(records []domain.ArticleRecord) string {
	var b strings.Builder
	for _, rec := range records {
		if rec.Tags == nil || len(rec.Tags.Companies) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s\nCompanies: %s\n%s\n\n",
			rec.Title,
			strings.Join(rec.Tags.Companies, ", "),
			rec.Summary)
	}
	return b.String()
}

func asRecognizerError(op string, err error) error {
	var recErr *domain.RecognizerError
	if errors.As(err, &recErr) {
		return err
	}
	return &domain.RecognizerError{Op: op, Err: err}
}

func logDebug(log *slog.Logger, msg string, args ...any) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

func logInfo(log *slog.Logger, msg string, args ...any) {
	if log != nil {
		log.Info(msg, args...)
	}
}

func logWarn(log *slog.Logger, msg string, args ...any) {
	if log != nil {
		log.Warn(msg, args...)
	}
}
