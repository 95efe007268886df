package usecase

import (
	"time"

	"NewsScanner/internal/domain"
)

// FilterByWindow keeps records whose calendar date lies in the closed range
// [today-days, today]. today is read as a calendar day in loc; record dates
// are read in their own zone, as the extractor attached it.
//
// Records without a date are left out of kept and reported in rejected as
// *domain.MissingFieldError values. Survivors keep their input order.
func FilterByWindow(records []domain.ArticleRecord, today time.Time, days int, loc *time.Location) (kept []domain.ArticleRecord, rejected []error) {
	if loc == nil {
		loc = time.UTC
	}
	end := civilDay(today.In(loc))
	start := end.AddDate(0, 0, -days)

	kept = make([]domain.ArticleRecord, 0, len(records))
	for i, rec := range records {
		if !rec.HasDate() {
			rejected = append(rejected, &domain.MissingFieldError{Index: i, Field: "date", Title: rec.Title})
			continue
		}
		day := civilDay(rec.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, rejected
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
