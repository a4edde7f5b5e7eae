package indexer

import (
	"net/url"
	"strings"
	"unicode"
)

// tokenDelimiters defines characters that separate tokens.
const tokenDelimiters = "/?&=.-_:;,"

// Tokenize splits a string into searchable tokens: lower-cased, split on
// URL-ish delimiters and whitespace, tokens shorter than 2 chars dropped.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= 2 {
			result = append(result, t)
		}
	}
	return result
}

// TokenizeURL extracts tokens from a session URL: host, path segments, and
// query parameter keys (not values). Relative request-targets tokenize
// as-is.
func TokenizeURL(rawURL string) []string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Tokenize(rawURL)
	}

	var parts []string
	if parsed.Host != "" {
		parts = append(parts, parsed.Host)
	}
	if parsed.Path != "" {
		parts = append(parts, parsed.Path)
	}
	for key := range parsed.Query() {
		parts = append(parts, key)
	}
	if len(parts) == 0 {
		return Tokenize(rawURL)
	}
	return Tokenize(strings.Join(parts, " "))
}

// TokenizeHeaders extracts tokens from "name: value" header fields.
func TokenizeHeaders(fields []string) []string {
	var out []string
	for _, f := range fields {
		out = append(out, Tokenize(f)...)
	}
	return out
}
