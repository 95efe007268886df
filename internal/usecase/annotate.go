package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// Annotator runs the entity recognizer over titles and summaries.
type Annotator struct {
	recognizer ports.EntityRecognizer
	workers    int
	logger     *slog.Logger
}

// NewAnnotator wires a recognizer; workers below one mean sequential processing.
func NewAnnotator(recognizer ports.EntityRecognizer, workers int, logger *slog.Logger) *Annotator {
	if workers < 1 {
		workers = 1
	}
	return &Annotator{recognizer: recognizer, workers: workers, logger: logger}
}

// Annotate returns a copy of records with Entities set on every element.
// Records are processed concurrently but each result lands at its input index.
// The first recognizer failure cancels the remaining work.
func (a *Annotator) Annotate(ctx context.Context, records []domain.ArticleRecord) ([]domain.ArticleRecord, error) {
	if a.recognizer == nil {
		return nil, &domain.RecognizerError{Op: "annotate", Err: errors.New("recognizer is not configured")}
	}

	out := make([]domain.ArticleRecord, len(records))
	copy(out, records)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range out {
		g.Go(func() error {
			titleEntities, err := a.collect(gctx, out[i].Title)
			if err != nil {
				return fmt.Errorf("record %d title: %w", i, err)
			}
			summaryEntities, err := a.collect(gctx, out[i].Summary)
			if err != nil {
				return fmt.Errorf("record %d summary: %w", i, err)
			}
			out[i].Entities = &domain.Annotation{
				TitleEntities:   titleEntities,
				SummaryEntities: summaryEntities,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.debug("annotated records", "count", len(out))
	return out, nil
}

func (a *Annotator) collect(ctx context.Context, text string) ([]domain.Entity, error) {
	entities := []domain.Entity{}
	if text == "" {
		return entities, nil
	}
	for entity, err := range a.recognizer.Recognize(ctx, text) {
		if err != nil {
			var recErr *domain.RecognizerError
			if errors.As(err, &recErr) {
				return nil, err
			}
			return nil, &domain.RecognizerError{Op: "recognize", Err: err}
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (a *Annotator) debug(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
