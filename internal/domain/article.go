package domain

import "time"

// Entity is a labelled span reported by an entity recognizer.
type Entity struct {
	Text  string
	Label string
}

// Annotation holds the entities recognized independently in title and summary.
type Annotation struct {
	TitleEntities   []Entity
	SummaryEntities []Entity
}

// CompanyTags lists watch-list companies matched for a record, in watch-list order.
type CompanyTags struct {
	Companies []string
}

// ArticleRecord is a single scraped news item moving through the pipeline.
//
// Entities and Tags stay nil until the annotation and tagging stages run;
// afterwards they are always set, possibly with empty lists.
type ArticleRecord struct {
	Title   string
	Summary string
	// Date is the calendar day the article was published on. The zero value
	// means the extractor could not find or parse a date.
	Date time.Time

	Entities *Annotation
	Tags     *CompanyTags
}

// HasDate reports whether the extractor produced a usable publication date.
func (r ArticleRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// Annotated reports whether the entity annotation stage has run for the record.
func (r ArticleRecord) Annotated() bool {
	return r.Entities != nil
}

// Tagged reports whether the company tagging stage has run for the record.
func (r ArticleRecord) Tagged() bool {
	return r.Tags != nil
}

// RawArticle is what an extractor yields for one listing entry.
type RawArticle struct {
	Title   string
	Summary string
	Date    time.Time
}

// NewRecord converts an extracted entry into a record awaiting enrichment.
func NewRecord(raw RawArticle) ArticleRecord {
	return ArticleRecord{
		Title:   raw.Title,
		Summary: raw.Summary,
		Date:    raw.Date,
	}
}

// RunSummary describes the outcome of one pipeline execution.
type RunSummary struct {
	RunID     string
	Today     time.Time
	Extracted int
	Skipped   int
	Rejected  int
	Written   int
	Tagged    int
}
