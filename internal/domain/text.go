package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes runes and removes combining diacritical marks, so
// "café" normalizes to "cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text and strips diacritics. Total and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// QueryTokens splits a query into normalized whitespace-separated tokens.
func QueryTokens(query string) []string {
	return strings.Fields(Normalize(query))
}

// LongQueryTokens keeps only tokens longer than two characters. The live
// single-source endpoints use this variant so short fillers like "de" never
// constrain substring matching.
func LongQueryTokens(query string) []string {
	var tokens []string
	for _, t := range QueryTokens(query) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// NameBrandKey is the normalized "name brand" string used as the dedupe key
// and the comparison grouping text.
func (r ProductRecord) NameBrandKey() string {
	return Normalize(strings.TrimSpace(r.Name + " " + r.Brand))
}

// MatchesAllWords reports whether every token appears as an exact word in the
// record's normalized name+brand. An empty token list matches everything.
// Connectors apply this check before returning results.
func (r ProductRecord) MatchesAllWords(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	words := make(map[string]bool)
	for _, w := range strings.Fields(r.NameBrandKey()) {
		words[w] = true
	}
	for _, tok := range tokens {
		if !words[tok] {
			return false
		}
	}
	return true
}

// ContainsAllTokens reports whether every token appears as a substring of the
// record's normalized name+brand. The live-search endpoints use this looser
// variant on top of whatever the source's own relevance returned.
func (r ProductRecord) ContainsAllTokens(tokens []string) bool {
	full := r.NameBrandKey()
	for _, tok := range tokens {
		if !strings.Contains(full, tok) {
			return false
		}
	}
	return true
}
