package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

func TestAnnotatePreservesOrder(t *testing.T) {
	t.Parallel()

	rec := &cannedRecognizer{entities: map[string][]domain.Entity{}}
	var in []domain.ArticleRecord
	for i := 0; i < 20; i++ {
		title := fmt.Sprintf("title %d", i)
		rec.entities[title] = []domain.Entity{
			{Text: fmt.Sprintf("A%d", i), Label: "ORG"},
			{Text: fmt.Sprintf("B%d", i), Label: "PERSON"},
		}
		in = append(in, domain.ArticleRecord{Title: title, Summary: ""})
	}

	out, err := NewAnnotator(rec, 4, nil).Annotate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	for i, r := range out {
		assert.Equal(t, in[i].Title, r.Title)
		require.True(t, r.Annotated())
		assert.Equal(t, rec.entities[r.Title], r.Entities.TitleEntities)
		assert.NotNil(t, r.Entities.SummaryEntities)
		assert.Empty(t, r.Entities.SummaryEntities)
		assert.False(t, in[i].Annotated(), "input is not mutated")
	}
}

func TestAnnotateEmptyFieldsSkipRecognizer(t *testing.T) {
	t.Parallel()

	rec := &cannedRecognizer{}
	out, err := NewAnnotator(rec, 1, nil).Annotate(context.Background(), []domain.ArticleRecord{{}})
	require.NoError(t, err)

	require.True(t, out[0].Annotated())
	assert.Empty(t, out[0].Entities.TitleEntities)
	assert.Empty(t, out[0].Entities.SummaryEntities)
	assert.Empty(t, rec.calls)
}

func TestAnnotateTitleAndSummaryIndependently(t *testing.T) {
	t.Parallel()

	rec := &cannedRecognizer{entities: map[string][]domain.Entity{
		"Google buys":     {{Text: "Google", Label: "ORG"}},
		"in Paris Monday": {{Text: "Paris", Label: "GPE"}, {Text: "Monday", Label: "DATE"}},
	}}

	out, err := NewAnnotator(rec, 2, nil).Annotate(context.Background(), []domain.ArticleRecord{
		{Title: "Google buys", Summary: "in Paris Monday"},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Entity{{Text: "Google", Label: "ORG"}}, out[0].Entities.TitleEntities)
	assert.Equal(t, []domain.Entity{{Text: "Paris", Label: "GPE"}, {Text: "Monday", Label: "DATE"}}, out[0].Entities.SummaryEntities)
}

func TestAnnotateRecognizerFailure(t *testing.T) {
	t.Parallel()

	rec := &cannedRecognizer{failOn: "boom"}
	_, err := NewAnnotator(rec, 2, nil).Annotate(context.Background(), []domain.ArticleRecord{
		{Title: "fine"},
		{Title: "fine", Summary: "boom"},
	})
	require.ErrorIs(t, err, domain.ErrRecognizer)
}

func TestAnnotateWithoutRecognizer(t *testing.T) {
	t.Parallel()

	_, err := NewAnnotator(nil, 1, nil).Annotate(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrRecognizer)
}
