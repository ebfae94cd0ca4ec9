// Package bm25 implements a BM25 keyword index over code elements, scored
// across the name, qualified name, and source snippet fields.
package bm25

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s, splits on non-alphanumeric boundaries, further
// splits CamelCase and snake_case compounds, and drops single-character
// tokens — so "HTTPServer.handle_request" yields
// ["http", "server", "handle", "request"].
func Tokenize(s string) []string {
	var tokens []string
	for _, word := range splitNonAlnum(s) {
		tokens = append(tokens, splitCompound(word)...)
	}

	out := tokens[:0]
	for _, t := range tokens {
		if len(t) > 1 {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

func splitNonAlnum(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitCompound breaks a single alphanumeric run into CamelCase humps:
// "HTTPServerConfig" -> ["HTTP", "Server", "Config"], "getHTML" -> ["get", "HTML"].
func splitCompound(word string) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}

	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			boundary = true
		case unicode.IsLetter(prev) && unicode.IsDigit(cur):
			boundary = true
		case unicode.IsDigit(prev) && unicode.IsLetter(cur):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// "HTTPServer" -> split before "Server", keeping "HTTP" intact.
			boundary = true
		}
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}
