package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// ListExtractorName is the registry name of the selector-driven extractor.
const ListExtractorName = "article-list"

var dateExpr = regexp.MustCompile(`\d{4}-\d{2}-\d{2}(T[0-9:.]+(Z|[+-]\d{2}:\d{2}))?|[A-Z][a-z]{2,8}\.? \d{1,2}, \d{4}|\d{1,2} [A-Z][a-z]{2} \d{4}`)

// Selectors locate the parts of a listing entry. Title, Summary and Date are
// searched inside each Item match.
type Selectors struct {
	Item    string
	Title   string
	Summary string
	Date    string
}

// ListExtractor pulls title, summary and date out of repeated listing entries.
type ListExtractor struct {
	name      string
	selectors Selectors
	layouts   []string
	location  *time.Location
}

var _ ports.ArticleExtractor = (*ListExtractor)(nil)

// NewListExtractor builds an extractor; dates without a zone are read in loc.
func NewListExtractor(name string, selectors Selectors, layouts []string, loc *time.Location) *ListExtractor {
	if name == "" {
		name = ListExtractorName
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ListExtractor{name: name, selectors: selectors, layouts: layouts, location: loc}
}

// Name identifies the strategy inside the registry.
func (e *ListExtractor) Name() string {
	return e.name
}

// Extract returns every entry with a title and a summary. Entries missing
// either are reported in skipped as *domain.ParseError; a page without any
// entry is an error. A missing or unreadable date leaves RawArticle.Date zero.
func (e *ListExtractor) Extract(raw []byte) ([]domain.RawArticle, []error, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, &domain.ParseError{Index: -1, Reason: fmt.Sprintf("parse document: %v", err)}
	}

	items := doc.Find(e.selectors.Item)
	if items.Length() == 0 {
		return nil, nil, &domain.ParseError{Index: -1, Reason: fmt.Sprintf("no %q elements on page", e.selectors.Item)}
	}

	var (
		articles []domain.RawArticle
		skipped  []error
	)
	items.Each(func(i int, item *goquery.Selection) {
		article, err := e.parseEntry(i, item)
		if err != nil {
			skipped = append(skipped, err)
			return
		}
		articles = append(articles, article)
	})

	return articles, skipped, nil
}

func (e *ListExtractor) parseEntry(index int, item *goquery.Selection) (domain.RawArticle, error) {
	title := strings.TrimSpace(item.Find(e.selectors.Title).First().Text())
	if title == "" {
		return domain.RawArticle{}, &domain.ParseError{Index: index, Reason: fmt.Sprintf("no %q title", e.selectors.Title)}
	}

	summary := strings.TrimSpace(item.Find(e.selectors.Summary).First().Text())
	if summary == "" {
		return domain.RawArticle{}, &domain.ParseError{Index: index, Reason: fmt.Sprintf("no %q summary", e.selectors.Summary)}
	}

	return domain.RawArticle{
		Title:   title,
		Summary: summary,
		Date:    e.parseDate(item),
	}, nil
}

func (e *ListExtractor) parseDate(item *goquery.Selection) time.Time {
	if e.selectors.Date == "" {
		return time.Time{}
	}
	node := item.Find(e.selectors.Date).First()
	if node.Length() == 0 {
		return time.Time{}
	}

	candidates := make([]string, 0, 3)
	if v, ok := node.Attr("datetime"); ok {
		candidates = append(candidates, strings.TrimSpace(v))
	}
	text := strings.Join(strings.Fields(node.Text()), " ")
	candidates = append(candidates, text)
	if match := dateExpr.FindString(text); match != "" && match != text {
		candidates = append(candidates, match)
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		for _, layout := range e.layouts {
			if parsed, err := time.ParseInLocation(layout, candidate, e.location); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
