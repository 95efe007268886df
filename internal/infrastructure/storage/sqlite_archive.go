package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/infrastructure/csvout"
	"NewsScanner/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS tagged_articles (
    run_id           TEXT    NOT NULL,
    position         INTEGER NOT NULL,
    run_day          TEXT    NOT NULL,
    title            TEXT    NOT NULL,
    summary          TEXT    NOT NULL,
    published_on     TEXT,
    title_entities   TEXT    NOT NULL,
    summary_entities TEXT    NOT NULL,
    companies        TEXT    NOT NULL,
    created_at       TEXT    NOT NULL,
    PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS tagged_articles_run_day ON tagged_articles (run_day);
`

const dayLayout = "2006-01-02"

// SQLiteArchive keeps every run's enriched records in a SQLite database.
type SQLiteArchive struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.RunArchive = (*SQLiteArchive)(nil)

// OpenSQLiteArchive opens (or creates) the database at dsn and applies the schema.
func OpenSQLiteArchive(ctx context.Context, dsn string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &SQLiteArchive{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (a *SQLiteArchive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// SaveRun inserts all records of a run in one transaction. Saving the same
// run twice replaces its rows.
func (a *SQLiteArchive) SaveRun(ctx context.Context, runID string, today time.Time, records []domain.ArticleRecord) error {
	if a.db == nil {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := sq.Delete("tagged_articles").Where(sq.Eq{"run_id": runID}).RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear run %s: %w", runID, err)
	}

	if len(records) > 0 {
		insert := sq.Insert("tagged_articles").Columns(
			"run_id", "position", "run_day", "title", "summary", "published_on",
			"title_entities", "summary_entities", "companies", "created_at",
		)
		createdAt := a.now().UTC().Format(time.RFC3339)
		for i, rec := range records {
			if !rec.Annotated() || !rec.Tagged() {
				return &domain.MissingFieldError{Index: i, Field: "enrichment", Title: rec.Title}
			}
			insert = insert.Values(
				runID, i, today.Format(dayLayout), rec.Title, rec.Summary, publishedOn(rec),
				csvout.FormatEntities(rec.Entities.TitleEntities),
				csvout.FormatEntities(rec.Entities.SummaryEntities),
				csvout.FormatCompanies(rec.Tags.Companies),
				createdAt,
			)
		}
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("insert run %s: %w", runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", runID, err)
	}
	return nil
}

// LoadRun returns the records of runID in their original order.
func (a *SQLiteArchive) LoadRun(ctx context.Context, runID string) ([]domain.ArticleRecord, error) {
	rows, err := sq.Select("title", "summary", "published_on", "title_entities", "summary_entities", "companies").
		From("tagged_articles").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("position").
		RunWith(a.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rows.Close()

	var records []domain.ArticleRecord
	for rows.Next() {
		var (
			rec                domain.ArticleRecord
			published          sql.NullString
			titleEnts, sumEnts string
			companies          string
		)
		if err := rows.Scan(&rec.Title, &rec.Summary, &published, &titleEnts, &sumEnts, &companies); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if published.Valid {
			if d, err := time.Parse(dayLayout, published.String); err == nil {
				rec.Date = d
			}
		}
		te, err := csvout.ParseEntityCell(titleEnts)
		if err != nil {
			return nil, err
		}
		se, err := csvout.ParseEntityCell(sumEnts)
		if err != nil {
			return nil, err
		}
		cs, err := csvout.ParseCompanyCell(companies)
		if err != nil {
			return nil, err
		}
		rec.Entities = &domain.Annotation{TitleEntities: te, SummaryEntities: se}
		rec.Tags = &domain.CompanyTags{Companies: cs}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// RunInfo summarizes one archived run.
type RunInfo struct {
	RunID   string
	Day     string
	Records int
}

// Runs lists archived runs, newest first, up to limit entries.
func (a *SQLiteArchive) Runs(ctx context.Context, limit uint64) ([]RunInfo, error) {
	rows, err := sq.Select("run_id", "run_day", "COUNT(*)", "MAX(created_at) AS created").
		From("tagged_articles").
		GroupBy("run_id", "run_day").
		OrderBy("created DESC", "run_id").
		Limit(limit).
		RunWith(a.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
		)
		if err := rows.Scan(&info.RunID, &info.Day, &info.Records, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return runs, nil
}

func publishedOn(rec domain.ArticleRecord) any {
	if !rec.HasDate() {
		return nil
	}
	return rec.Date.Format(dayLayout)
}
