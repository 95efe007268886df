package csvout

import (
	"fmt"
	"strings"

	"NewsScanner/internal/domain"
)

// List cells use the literal notation analysts already parse downstream:
// entities as [('Google', 'ORG'), ('Paris', 'GPE')] and companies as
// ['Google', 'Meta']. Empty lists are [].

// FormatEntities renders an entity list as a list-of-pairs literal.
func FormatEntities(entities []domain.Entity) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range entities {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(quote(e.Text))
		b.WriteString(", ")
		b.WriteString(quote(e.Label))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

// FormatCompanies renders company names as a list-of-strings literal.
func FormatCompanies(companies []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range companies {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(c))
	}
	b.WriteByte(']')
	return b.String()
}

// quote picks single quotes unless the text holds a single quote and no
// double quote, then escapes backslashes, the chosen quote and control whitespace.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// ParseEntityCell reverses FormatEntities.
func ParseEntityCell(cell string) ([]domain.Entity, error) {
	p := &cellParser{src: cell}
	entities := []domain.Entity{}
	err := p.list(func() error {
		if err := p.expect('('); err != nil {
			return err
		}
		text, err := p.str()
		if err != nil {
			return err
		}
		if err := p.expect(','); err != nil {
			return err
		}
		label, err := p.str()
		if err != nil {
			return err
		}
		if err := p.expect(')'); err != nil {
			return err
		}
		entities = append(entities, domain.Entity{Text: text, Label: label})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse entity cell: %w", err)
	}
	return entities, nil
}

// ParseCompanyCell reverses FormatCompanies.
func ParseCompanyCell(cell string) ([]string, error) {
	p := &cellParser{src: cell}
	companies := []string{}
	err := p.list(func() error {
		s, err := p.str()
		if err != nil {
			return err
		}
		companies = append(companies, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse company cell: %w", err)
	}
	return companies, nil
}

type cellParser struct {
	src string
	pos int
}

func (p *cellParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *cellParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *cellParser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return fmt.Errorf("expected %q at %d, got end of input", c, p.pos)
	}
	if got != c {
		return fmt.Errorf("expected %q at %d, got %q", c, p.pos, got)
	}
	p.pos++
	return nil
}

// list parses '[' item (',' item)* ']' and rejects trailing input.
func (p *cellParser) list(item func() error) error {
	if err := p.expect('['); err != nil {
		return err
	}
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
	} else {
		for {
			if err := item(); err != nil {
				return err
			}
			c, ok := p.peek()
			if !ok {
				return fmt.Errorf("unterminated list")
			}
			p.pos++
			if c == ']' {
				break
			}
			if c != ',' {
				return fmt.Errorf("unexpected %q at %d", c, p.pos-1)
			}
		}
	}
	if _, ok := p.peek(); ok {
		return fmt.Errorf("trailing input at %d", p.pos)
	}
	return nil
}

func (p *cellParser) str() (string, error) {
	q, ok := p.peek()
	if !ok || (q != '\'' && q != '"') {
		return "", fmt.Errorf("expected quoted string at %d", p.pos)
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch {
		case c == q:
			return b.String(), nil
		case c == '\\':
			if p.pos >= len(p.src) {
				return "", fmt.Errorf("dangling escape")
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated string")
}
