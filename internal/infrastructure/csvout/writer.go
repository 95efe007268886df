package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// Header is the fixed column order of the output file.
var Header = []string{"Title", "Summary", "Title Entities", "Summary Entities", "Tagged Companies"}

// Writer stores enriched records as CSV.
type Writer struct{}

var _ ports.RecordWriter = (*Writer)(nil)

// NewWriter returns a CSV record writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write replaces the file at path with a header row followed by one row per
// record. The file is written next to path and renamed into place, so a failed
// write leaves any previous output untouched.
func (w *Writer) Write(records []domain.ArticleRecord, path string) error {
	rows, err := toRows(records)
	if err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.WriteError{Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := Encode(tmp, rows); err != nil {
		_ = tmp.Close()
		cleanup()
		return &domain.WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &domain.WriteError{Path: path, Err: fmt.Errorf("close temp file: %w", err)}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return &domain.WriteError{Path: path, Err: fmt.Errorf("chmod temp file: %w", err)}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &domain.WriteError{Path: path, Err: fmt.Errorf("rename into place: %w", err)}
	}
	return nil
}

// WriteRecords streams records as CSV to out without touching the filesystem.
func WriteRecords(out io.Writer, records []domain.ArticleRecord) error {
	rows, err := toRows(records)
	if err != nil {
		return err
	}
	return Encode(out, rows)
}

// Encode writes the header and rows as CSV.
func Encode(out io.Writer, rows [][]string) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

func toRows(records []domain.ArticleRecord) ([][]string, error) {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		if !rec.Annotated() {
			return nil, &domain.MissingFieldError{Index: i, Field: "entities", Title: rec.Title}
		}
		if !rec.Tagged() {
			return nil, &domain.MissingFieldError{Index: i, Field: "tagged companies", Title: rec.Title}
		}
		rows = append(rows, []string{
			rec.Title,
			rec.Summary,
			FormatEntities(rec.Entities.TitleEntities),
			FormatEntities(rec.Entities.SummaryEntities),
			FormatCompanies(rec.Tags.Companies),
		})
	}
	return rows, nil
}

// ReadRecords parses a file produced by Write back into annotated, tagged records.
// Dates are not part of the output and stay unset.
func ReadRecords(in io.Reader) ([]domain.ArticleRecord, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %d: %q", i, header[i])
		}
	}

	records := []domain.ArticleRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}

		titleEntities, err := ParseEntityCell(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		summaryEntities, err := ParseEntityCell(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		companies, err := ParseCompanyCell(row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}

		records = append(records, domain.ArticleRecord{
			Title:   row[0],
			Summary: row[1],
			Entities: &domain.Annotation{
				TitleEntities:   titleEntities,
				SummaryEntities: summaryEntities,
			},
			Tags: &domain.CompanyTags{Companies: companies},
		})
	}
	return records, nil
}
