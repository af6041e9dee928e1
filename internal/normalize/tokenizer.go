// Package normalize converts raw BACnet point descriptors into expanded,
// Title-Case, semantically tagged catalog entries. The engine is a pure
// function of (point, context, dictionary snapshot): no call path mutates
// dictionary data and no call ever fails outright.
package normalize

import (
	"strings"
	"unicode"
)

// delimiters splits identifiers into word-sized tokens.
const delimiters = " _-."

// Tokenize splits a raw identifier into word tokens: first on runs of
// delimiter characters, then on lowercase-to-uppercase adjacencies inside
// each piece (camelCase). ALLCAPS acronyms survive intact; purely numeric
// tokens are retained since they may carry index meaning.
func Tokenize(identifier string) []string {
	var tokens []string
	for _, piece := range strings.FieldsFunc(identifier, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	}) {
		tokens = append(tokens, splitCamel(piece)...)
	}
	return tokens
}

// splitCamel inserts boundaries at lowercase-then-uppercase adjacencies.
// Unicode letters count as letters for the case tests.
func splitCamel(s string) []string {
	runes := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// isNumeric reports whether the token is purely digits.
func isNumeric(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// titleCase capitalizes the first letter of each space-separated word and
// lowercases the rest. Words already containing digits keep their case.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(w)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}
