package usecase

import (
	"fmt"
	"strings"

	"NewsScanner/internal/domain"
)

// Watchlist is the immutable, ordered set of company names to look for.
type Watchlist struct {
	names  []string
	tokens [][]string
}

// NewWatchlist splits every name on whitespace. An empty list or a name
// without tokens is rejected, since such a name would match every record.
func NewWatchlist(names []string) (*Watchlist, error) {
	if len(names) == 0 {
		return nil, &domain.InvalidConfigError{Field: "companies", Reason: "watch-list is empty"}
	}
	w := &Watchlist{
		names:  make([]string, len(names)),
		tokens: make([][]string, len(names)),
	}
	for i, name := range names {
		tokens := strings.Fields(name)
		if len(tokens) == 0 {
			return nil, &domain.InvalidConfigError{
				Field:  fmt.Sprintf("companies[%d]", i),
				Reason: "company name has no tokens",
			}
		}
		w.names[i] = name
		w.tokens[i] = tokens
	}
	return w, nil
}

// Names returns the watch-list in configured order.
func (w *Watchlist) Names() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Match returns, in watch-list order, every name whose tokens each occur as a
// case-sensitive substring of title or of summary.
//
// Tokens are checked independently: they may be spread across both fields and
// may sit inside longer words ("IBM" matches "IBMXcorp"). This looseness is
// kept for compatibility with existing outputs; tightening it to phrase or
// word-boundary matching would change which records get tagged.
func (w *Watchlist) Match(title, summary string) []string {
	matched := []string{}
	for i, tokens := range w.tokens {
		if allTokensPresent(tokens, title, summary) {
			matched = append(matched, w.names[i])
		}
	}
	return matched
}

func allTokensPresent(tokens []string, title, summary string) bool {
	for _, token := range tokens {
		if !strings.Contains(title, token) && !strings.Contains(summary, token) {
			return false
		}
	}
	return true
}

// TagCompanies returns a copy of records with Tags set on every element.
func TagCompanies(records []domain.ArticleRecord, watchlist *Watchlist) []domain.ArticleRecord {
	out := make([]domain.ArticleRecord, len(records))
	for i, rec := range records {
		rec.Tags = &domain.CompanyTags{Companies: watchlist.Match(rec.Title, rec.Summary)}
		out[i] = rec
	}
	return out
}
