package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a run. Concrete error types below
// match them through errors.Is.
var (
	ErrFetch         = errors.New("fetch failed")
	ErrParse         = errors.New("article markup missing")
	ErrMissingField  = errors.New("missing field")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrRecognizer    = errors.New("entity recognizer failed")
	ErrWrite         = errors.New("write failed")
)

// FetchError reports a network or HTTP failure while retrieving the source page.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports absent article markup. Index is the position of the
// listing entry, or -1 when the whole page lacks article containers.
type ParseError struct {
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("parse page: %s", e.Reason)
	}
	return fmt.Sprintf("parse article %d: %s", e.Index, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MissingFieldError reports a record lacking a field a stage depends on.
type MissingFieldError struct {
	Index int
	Field string
	Title string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d (%q): missing %s", e.Index, e.Title, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidConfigError reports a configuration value that makes a run impossible.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// RecognizerError reports a recognizer that failed to start or to process text.
type RecognizerError struct {
	Op  string
	Err error
}

func (e *RecognizerError) Error() string {
	return fmt.Sprintf("recognizer %s: %v", e.Op, e.Err)
}

func (e *RecognizerError) Unwrap() error { return e.Err }

func (e *RecognizerError) Is(target error) bool { return target == ErrRecognizer }

// WriteError reports a failure to persist the final records.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }
