package parser

import (
	"context"
	"fmt"
	"log/slog"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
	"NewsScanner/internal/scanner"
)

// StrategySource implements ArticleSource by fetching one page and handing it
// to a registered extractor strategy.
type StrategySource struct {
	fetcher   ports.DocumentFetcher
	registry  *scanner.Registry
	url       string
	extractor string
	logger    *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the fetcher and extractor registry with the configured page.
func NewStrategySource(fetcher ports.DocumentFetcher, reg *scanner.Registry, url, extractor string, log *slog.Logger) *StrategySource {
	return &StrategySource{
		fetcher:   fetcher,
		registry:  reg,
		url:       url,
		extractor: extractor,
		logger:    log,
	}
}

// FetchArticles downloads the source page and extracts its entries.
func (s *StrategySource) FetchArticles(ctx context.Context) ([]domain.RawArticle, []error, error) {
	if s.registry == nil || s.fetcher == nil {
		return nil, nil, fmt.Errorf("article source is not configured")
	}

	strategy, err := s.registry.Resolve(s.extractor)
	if err != nil {
		return nil, nil, &domain.InvalidConfigError{Field: "source.extractor", Reason: err.Error()}
	}

	s.debug("fetch page", "url", s.url, "extractor", strategy.Name())
	raw, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, nil, err
	}

	articles, skipped, err := strategy.Extract(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("extract %s: %w", s.url, err)
	}

	s.debug("page produced articles", "count", len(articles), "skipped", len(skipped), "bytes", len(raw))
	return articles, skipped, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
