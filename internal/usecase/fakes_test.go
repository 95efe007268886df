package usecase

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"time"

	"NewsScanner/internal/domain"
)

// cannedRecognizer returns a fixed entity list per exact input text.
type cannedRecognizer struct {
	mu       sync.Mutex
	entities map[string][]domain.Entity
	failOn   string
	initErr  error
	inits    int
	closes   int
	calls    []string
}

func (c *cannedRecognizer) Init(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inits++
	return c.initErr
}

func (c *cannedRecognizer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *cannedRecognizer) Recognize(_ context.Context, text string) iter.Seq2[domain.Entity, error] {
	c.mu.Lock()
	c.calls = append(c.calls, text)
	c.mu.Unlock()

	return func(yield func(domain.Entity, error) bool) {
		if c.failOn != "" && strings.Contains(text, c.failOn) {
			yield(domain.Entity{}, errors.New("model crashed"))
			return
		}
		for _, e := range c.entities[text] {
			if !yield(e, nil) {
				return
			}
		}
	}
}

type staticSource struct {
	articles []domain.RawArticle
	skipped  []error
	err      error
	calls    int
}

func (s *staticSource) FetchArticles(context.Context) ([]domain.RawArticle, []error, error) {
	s.calls++
	return s.articles, s.skipped, s.err
}

type memoryWriter struct {
	path    string
	records []domain.ArticleRecord
	writes  int
	err     error
}

func (m *memoryWriter) Write(records []domain.ArticleRecord, path string) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.records = records
	return nil
}

type memoryArchive struct {
	runID   string
	records int
	err     error
}

func (m *memoryArchive) SaveRun(_ context.Context, runID string, _ time.Time, records []domain.ArticleRecord) error {
	m.runID = runID
	m.records = len(records)
	return m.err
}

type memoryNotifier struct {
	digests []string
	err     error
}

func (m *memoryNotifier) PublishDigest(_ context.Context, digest string) error {
	m.digests = append(m.digests, digest)
	return m.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
