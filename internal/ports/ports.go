package ports

import (
	"context"
	"iter"
	"time"

	"NewsScanner/internal/domain"
)

// DocumentFetcher retrieves the raw bytes of a listing page.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ArticleExtractor turns a listing page into raw entries. Entries that lack
// the expected markup are reported through skipped rather than failing the page.
type ArticleExtractor interface {
	Name() string
	Extract(raw []byte) (articles []domain.RawArticle, skipped []error, err error)
}

// ArticleSource combines fetching and extraction for the configured source.
type ArticleSource interface {
	FetchArticles(ctx context.Context) (articles []domain.RawArticle, skipped []error, err error)
}

// EntityRecognizer labels named spans in text. Init is called once per run
// before the first Recognize and Close once after the last.
type EntityRecognizer interface {
	Init(ctx context.Context) error
	Recognize(ctx context.Context, text string) iter.Seq2[domain.Entity, error]
	Close() error
}

// RecordWriter serializes the enriched records to path, replacing any existing file.
type RecordWriter interface {
	Write(records []domain.ArticleRecord, path string) error
}

// RunArchive keeps a history of enriched records across runs.
type RunArchive interface {
	SaveRun(ctx context.Context, runID string, today time.Time, records []domain.ArticleRecord) error
}

// Notifier streams watch-list digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
