package taxonomy

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// delimiters splits raw category strings into tokens.
var delimiters = regexp.MustCompile(`(?i)[,/|;•·▪‣◦●∙]|\band\b`)

// Tokenize splits s on commas, slashes, pipes, semicolons, bullet glyphs and
// the word "and", and returns the non-empty cleaned tokens in input order.
func Tokenize(s string) []string {
	s = norm.NFKC.String(s)
	parts := delimiters.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if tok := CleanToken(p); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// CleanToken applies NFKC normalization and case folding, collapses internal
// whitespace and strips surrounding punctuation, dashes and symbols.
func CleanToken(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
	})
}
