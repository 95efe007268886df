package ner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	kindWord tokenKind = iota
	kindNumber
	kindSymbol
	kindPunct
)

// token is a slice of the source text; start and end are byte offsets so a
// span can be cut out of the original string unchanged.
type token struct {
	text  string
	start int
	end   int
	kind  tokenKind
}

func (t token) capitalized() bool {
	if t.kind != kindWord {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.text)
	return unicode.IsUpper(r)
}

func (t token) acronym() bool {
	if t.kind != kindWord {
		return false
	}
	letters := 0
	for _, r := range t.text {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

// bare strips a trailing period kept on abbreviations ("Inc." -> "Inc").
func (t token) bare() string {
	return strings.TrimSuffix(t.text, ".")
}

// tokenize splits text into words, numbers, currency/percent symbols and
// punctuation. Hyphens, apostrophes and ampersands stay inside words; dots and
// commas stay inside numbers; a possessive 's becomes its own punctuation token.
func tokenize(text string) []token {
	var tokens []token
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case isWordRune(r):
			end := scanWord(text, i)
			tokens = appendWord(tokens, text, i, end)
			i = end
		case r == '$' || r == '%' || r == '€' || r == '£':
			tokens = append(tokens, token{text: text[i : i+size], start: i, end: i + size, kind: kindSymbol})
			i += size
		default:
			tokens = append(tokens, token{text: text[i : i+size], start: i, end: i + size, kind: kindPunct})
			i += size
		}
	}
	return tokens
}

func scanWord(text string, start int) int {
	_, size := utf8.DecodeRuneInString(text[start:])
	j := start + size
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		if isWordRune(r) {
			j += size
			continue
		}
		if j+size < len(text) {
			prev, _ := utf8.DecodeLastRuneInString(text[:j])
			next, _ := utf8.DecodeRuneInString(text[j+size:])
			if joins(prev, r, next) {
				j += size
				continue
			}
		}
		break
	}

	word := text[start:j]
	if j < len(text) && text[j] == '.' && (strings.Contains(word, ".") || abbreviations[word]) {
		j++
	}
	return j
}

func joins(prev, r, next rune) bool {
	switch r {
	case '-', '\'', '’', '&':
		return isWordRune(next)
	case '.':
		return (unicode.IsDigit(prev) && unicode.IsDigit(next)) ||
			(unicode.IsLetter(prev) && unicode.IsLetter(next))
	case ',':
		return unicode.IsDigit(prev) && unicode.IsDigit(next)
	}
	return false
}

func appendWord(tokens []token, text string, start, end int) []token {
	word := text[start:end]
	for _, suffix := range []string{"'s", "’s"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			cut := end - len(suffix)
			tokens = append(tokens, newWordToken(text, start, cut))
			return append(tokens, token{text: text[cut:end], start: cut, end: end, kind: kindPunct})
		}
	}
	return append(tokens, newWordToken(text, start, end))
}

func newWordToken(text string, start, end int) token {
	t := token{text: text[start:end], start: start, end: end, kind: kindWord}
	if isNumeric(t.text) {
		t.kind = kindNumber
	}
	return t
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}
