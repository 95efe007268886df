package ner

import "strings"

// Entry is a known phrase with its label. Variants are alternative surface
// forms reported with the same label.
type Entry struct {
	Text     string
	Label    string
	Variants []string
}

// gazetteer recognizes known phrases by greedy longest match over tokens.
// Matching is case-sensitive; phrases are compared token by token.
type gazetteer struct {
	phrases map[string]string
	maxLen  int
}

func newGazetteer(entries []Entry) *gazetteer {
	g := &gazetteer{phrases: map[string]string{}, maxLen: 1}
	for _, e := range entries {
		g.add(e.Text, e.Label)
		for _, v := range e.Variants {
			g.add(v, e.Label)
		}
	}
	return g
}

func (g *gazetteer) add(phrase, label string) {
	words := phraseTokens(phrase)
	if len(words) == 0 {
		return
	}
	g.phrases[strings.Join(words, " ")] = label
	if len(words) > g.maxLen {
		g.maxLen = len(words)
	}
}

// longest returns the token count and label of the longest phrase starting
// at tokens[i], or 0 when nothing matches.
func (g *gazetteer) longest(tokens []token, i int) (int, string) {
	maxN := g.maxLen
	if remaining := len(tokens) - i; maxN > remaining {
		maxN = remaining
	}
	for n := maxN; n >= 1; n-- {
		parts := make([]string, n)
		for k := 0; k < n; k++ {
			parts[k] = tokens[i+k].text
		}
		if label, ok := g.phrases[strings.Join(parts, " ")]; ok {
			return n, label
		}
	}
	return 0, ""
}

func phraseTokens(phrase string) []string {
	tokens := tokenize(phrase)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.text
	}
	return words
}

// defaultEntries are places commonly found in business news datelines.
var defaultEntries = []Entry{
	{Text: "United States", Label: "GPE", Variants: []string{"U.S.", "US", "USA", "U.S.A."}},
	{Text: "United Kingdom", Label: "GPE", Variants: []string{"U.K.", "UK", "Britain"}},
	{Text: "European Union", Label: "ORG", Variants: []string{"EU"}},
	{Text: "Europe", Label: "LOC"},
	{Text: "Asia", Label: "LOC"},
	{Text: "Africa", Label: "LOC"},
	{Text: "North America", Label: "LOC"},
	{Text: "Latin America", Label: "LOC"},
	{Text: "China", Label: "GPE"},
	{Text: "India", Label: "GPE"},
	{Text: "Japan", Label: "GPE"},
	{Text: "Germany", Label: "GPE"},
	{Text: "France", Label: "GPE"},
	{Text: "Canada", Label: "GPE"},
	{Text: "Australia", Label: "GPE"},
	{Text: "Brazil", Label: "GPE"},
	{Text: "Mexico", Label: "GPE"},
	{Text: "Singapore", Label: "GPE"},
	{Text: "South Korea", Label: "GPE"},
	{Text: "Israel", Label: "GPE"},
	{Text: "New York", Label: "GPE"},
	{Text: "San Francisco", Label: "GPE"},
	{Text: "Los Angeles", Label: "GPE"},
	{Text: "Chicago", Label: "GPE"},
	{Text: "Boston", Label: "GPE"},
	{Text: "Seattle", Label: "GPE"},
	{Text: "Austin", Label: "GPE"},
	{Text: "Armonk", Label: "GPE"},
	{Text: "London", Label: "GPE"},
	{Text: "Paris", Label: "GPE"},
	{Text: "Berlin", Label: "GPE"},
	{Text: "Tokyo", Label: "GPE"},
	{Text: "Beijing", Label: "GPE"},
	{Text: "Shanghai", Label: "GPE"},
	{Text: "Mumbai", Label: "GPE"},
	{Text: "Bengaluru", Label: "GPE", Variants: []string{"Bangalore"}},
	{Text: "Dubai", Label: "GPE"},
	{Text: "Toronto", Label: "GPE"},
	{Text: "Sydney", Label: "GPE"},
}
