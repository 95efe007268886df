package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

func openTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := OpenSQLiteArchive(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func sampleRecords() []domain.ArticleRecord {
	return []domain.ArticleRecord{
		{
			Title:   "Google announces IBM partnership",
			Summary: "It's official",
			Date:    time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
			Entities: &domain.Annotation{
				TitleEntities:   []domain.Entity{{Text: "Google", Label: "ORG"}, {Text: "IBM", Label: "ORG"}},
				SummaryEntities: []domain.Entity{},
			},
			Tags: &domain.CompanyTags{Companies: []string{"Google"}},
		},
		{
			Title:    "quiet",
			Summary:  "nothing",
			Entities: &domain.Annotation{TitleEntities: []domain.Entity{}, SummaryEntities: []domain.Entity{}},
			Tags:     &domain.CompanyTags{Companies: []string{}},
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)
	ctx := context.Background()
	today := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	require.NoError(t, archive.SaveRun(ctx, "run-a", today, sampleRecords()))

	got, err := archive.LoadRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	missing, err := archive.LoadRun(ctx, "run-missing")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSaveRunReplacesExistingRun(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)
	ctx := context.Background()
	today := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	require.NoError(t, archive.SaveRun(ctx, "run-a", today, sampleRecords()))
	require.NoError(t, archive.SaveRun(ctx, "run-a", today, sampleRecords()[:1]))

	got, err := archive.LoadRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveRunRejectsUnenriched(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)
	err := archive.SaveRun(context.Background(), "run-a", time.Now(), []domain.ArticleRecord{{Title: "raw"}})
	require.ErrorIs(t, err, domain.ErrMissingField)

	got, err := archive.LoadRun(context.Background(), "run-a")
	require.NoError(t, err)
	assert.Empty(t, got, "transaction rolled back")
}

func TestRuns(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)
	ctx := context.Background()

	archive.now = func() time.Time { return time.Date(2026, time.October, 17, 6, 0, 0, 0, time.UTC) }
	require.NoError(t, archive.SaveRun(ctx, "older", time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), sampleRecords()))
	archive.now = func() time.Time { return time.Date(2026, time.October, 18, 6, 0, 0, 0, time.UTC) }
	require.NoError(t, archive.SaveRun(ctx, "newer", time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), sampleRecords()[:1]))

	runs, err := archive.Runs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []RunInfo{
		{RunID: "newer", Day: "2026-10-18", Records: 1},
		{RunID: "older", Day: "2026-10-17", Records: 2},
	}, runs)

	runs, err = archive.Runs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
