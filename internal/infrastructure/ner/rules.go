package ner

import (
	"context"
	"errors"
	"iter"
	"strconv"
	"strings"
	"sync"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// RuleRecognizer is a deterministic recognizer built from a gazetteer and
// surface heuristics. It needs no model download, which makes it the default
// for scheduled runs and tests.
//
// Labels follow the OntoNotes names used by common NER models: ORG, PERSON,
// GPE, LOC, DATE, MONEY, PERCENT and CARDINAL.
type RuleRecognizer struct {
	entries []Entry

	mu   sync.RWMutex
	dict *gazetteer
}

var _ ports.EntityRecognizer = (*RuleRecognizer)(nil)

// NewRuleRecognizer registers extra gazetteer entries. Extra entries win over
// the built-in place list when both define the same phrase.
func NewRuleRecognizer(entries []Entry) *RuleRecognizer {
	return &RuleRecognizer{entries: entries}
}

// Init compiles the gazetteer. Calling it again is a no-op.
func (r *RuleRecognizer) Init(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dict != nil {
		return nil
	}
	all := make([]Entry, 0, len(defaultEntries)+len(r.entries))
	all = append(all, defaultEntries...)
	all = append(all, r.entries...)
	r.dict = newGazetteer(all)
	return nil
}

// Close drops the compiled gazetteer.
func (r *RuleRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dict = nil
	return nil
}

// Recognize yields entities left to right. Text is only scanned once the
// sequence is ranged over.
func (r *RuleRecognizer) Recognize(ctx context.Context, text string) iter.Seq2[domain.Entity, error] {
	return func(yield func(domain.Entity, error) bool) {
		r.mu.RLock()
		dict := r.dict
		r.mu.RUnlock()
		if dict == nil {
			yield(domain.Entity{}, &domain.RecognizerError{Op: "recognize", Err: errors.New("recognizer not initialized")})
			return
		}
		if err := ctx.Err(); err != nil {
			yield(domain.Entity{}, &domain.RecognizerError{Op: "recognize", Err: err})
			return
		}

		s := scan{text: text, tokens: tokenize(text), dict: dict}
		for i := 0; i < len(s.tokens); {
			n, label, from := s.match(i)
			if n == 0 {
				i++
				continue
			}
			if label != "" && !yield(domain.Entity{Text: s.span(from, i+n), Label: label}, nil) {
				return
			}
			i += n
		}
	}
}

type scan struct {
	text   string
	tokens []token
	dict   *gazetteer
}

func (s *scan) span(from, to int) string {
	return s.text[s.tokens[from].start:s.tokens[to-1].end]
}

func (s *scan) at(i int) (token, bool) {
	if i < 0 || i >= len(s.tokens) {
		return token{}, false
	}
	return s.tokens[i], true
}

// match tries each rule at i. It returns the number of tokens consumed, the
// label, and the index the reported span starts at. Honorifics are consumed
// but not reported; a lone honorific yields an empty label.
func (s *scan) match(i int) (int, string, int) {
	if n, label := s.dict.longest(s.tokens, i); n > 0 {
		return n, label, i
	}
	if n := s.money(i); n > 0 {
		return n, "MONEY", i
	}
	if n := s.percent(i); n > 0 {
		return n, "PERCENT", i
	}
	if n := s.date(i); n > 0 {
		return n, "DATE", i
	}
	if t := s.tokens[i]; t.kind == kindNumber {
		return 1, "CARDINAL", i
	}
	return s.properNoun(i)
}

func (s *scan) adjacent(i int) bool {
	a, okA := s.at(i)
	b, okB := s.at(i + 1)
	return okA && okB && a.end == b.start
}

func (s *scan) money(i int) int {
	t := s.tokens[i]
	if t.kind == kindSymbol && t.text != "%" {
		next, ok := s.at(i + 1)
		if !ok || next.kind != kindNumber || !s.adjacent(i) {
			return 0
		}
		if scale, ok := s.at(i + 2); ok && moneyScales[scale.text] {
			return 3
		}
		return 2
	}
	if t.kind == kindNumber {
		next, ok := s.at(i + 1)
		if ok && moneyScales[next.text] {
			if unit, ok := s.at(i + 2); ok && currencyWords[strings.ToLower(unit.text)] {
				return 3
			}
		}
		if ok && currencyWords[strings.ToLower(next.text)] {
			return 2
		}
	}
	return 0
}

func (s *scan) percent(i int) int {
	t := s.tokens[i]
	if t.kind != kindNumber {
		return 0
	}
	next, ok := s.at(i + 1)
	if !ok {
		return 0
	}
	if next.text == "%" && s.adjacent(i) {
		return 2
	}
	if strings.EqualFold(next.text, "percent") {
		return 2
	}
	return 0
}

func (s *scan) date(i int) int {
	t := s.tokens[i]
	switch {
	case t.kind == kindWord && weekdays[t.text]:
		return 1
	case t.kind == kindWord && relativeDays[strings.ToLower(t.text)]:
		return 1
	case t.kind == kindNumber && isYear(t.text):
		return 1
	case t.kind == kindWord && months[t.bare()]:
		return s.monthDate(i)
	}
	return 0
}

// monthDate matches "October", "Oct. 17", "October 17, 2026" and "October 2026".
// A lone month only counts when it is spelled out and is not "May".
func (s *scan) monthDate(i int) int {
	if next, ok := s.at(i + 1); ok && next.kind == kindNumber {
		switch {
		case isDayOfMonth(next.text):
			if comma, ok := s.at(i + 2); ok && comma.text == "," {
				if year, ok := s.at(i + 3); ok && isYear(year.text) {
					return 4
				}
			}
			if year, ok := s.at(i + 2); ok && isYear(year.text) {
				return 3
			}
			return 2
		case isYear(next.text):
			return 2
		}
	}
	word := s.tokens[i].text
	spelledOut := len(word) > 4 || word == "June" || word == "July"
	if !spelledOut || word == "May" {
		return 0
	}
	return 1
}

func (s *scan) properNoun(i int) (int, string, int) {
	t := s.tokens[i]
	if !startsName(t) {
		return 0, "", i
	}

	j := i + 1
	connected := false
	for j < len(s.tokens) {
		next := s.tokens[j]
		if startsName(next) && !s.reserved(j) {
			j++
			continue
		}
		if nameConnectors[next.text] {
			if after, ok := s.at(j + 1); ok && startsName(after) && !s.reserved(j+1) {
				connected = true
				j += 2
				continue
			}
		}
		break
	}
	n := j - i

	from := i
	if honorifics[t.bare()] {
		if n == 1 {
			return 1, "", i
		}
		return n, "PERSON", i + 1
	}

	last := s.tokens[j-1]
	switch {
	case corporateSuffixes[last.bare()] && n > 1:
		return n, "ORG", from
	case connected || corporateSuffixes[t.bare()]:
		return n, "ORG", from
	case n == 1 && t.acronym():
		return n, "ORG", from
	case s.afterPlacePreposition(i):
		return n, "GPE", from
	case n >= 2 && n <= 3 && !anyAcronym(s.tokens[i:j]):
		return n, "PERSON", from
	default:
		return n, "ORG", from
	}
}

// reserved reports tokens that other rules own, so a name run stops before them.
func (s *scan) reserved(i int) bool {
	t := s.tokens[i]
	if weekdays[t.text] || months[t.bare()] {
		return true
	}
	n, _ := s.dict.longest(s.tokens, i)
	return n > 0
}

func (s *scan) afterPlacePreposition(i int) bool {
	prev, ok := s.at(i - 1)
	return ok && placePrepositions[prev.text]
}

func startsName(t token) bool {
	if !t.capitalized() || months[t.bare()] || weekdays[t.text] {
		return false
	}
	return !commonWords[strings.ToLower(t.bare())]
}

func anyAcronym(tokens []token) bool {
	for _, t := range tokens {
		if t.acronym() {
			return true
		}
	}
	return false
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1900 && n <= 2099
}

func isDayOfMonth(s string) bool {
	if len(s) > 2 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 31
}
