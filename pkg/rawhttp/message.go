// Package rawhttp parses raw captured HTTP message text into structured
// requests and responses.
//
// The parser is deliberately lenient: header lines without the exact
// ": " separator are silently discarded, and missing start-line tokens are
// filled with fixed defaults. Captured text is treated as ISO-8859-1 so one
// character always corresponds to one byte, which keeps binary payloads
// smuggled as text intact.
package rawhttp

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Message is a raw HTTP message split into start line, headers, and body.
type Message struct {
	StartLine string
	Headers   *Headers
	RawBody   string
	BodyBytes []byte
}

// ParseMessage splits a raw message blob into a start line, a header map,
// and a body.
//
// The header block ends at the first blank line (CRLF CRLF); later blank
// lines belong to the body verbatim. When no blank line exists the whole
// input is the header block and the body is empty. The first line is always
// the start line, even when it contains a colon. Remaining lines split at
// the first ": "; lines without that separator are dropped without error.
func ParseMessage(raw string) *Message {
	headerBlock, body, _ := strings.Cut(raw, "\r\n\r\n")

	lines := strings.Split(headerBlock, "\r\n")
	headers := NewHeaders()
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		headers.Set(name, value)
	}

	return &Message{
		StartLine: lines[0],
		Headers:   headers,
		RawBody:   body,
		BodyBytes: EncodeLatin1(body),
	}
}

// DecodeLatin1 converts raw fragment bytes to text, one rune per byte.
// The mapping is total, so decoding never fails and EncodeLatin1 recovers
// the original bytes exactly.
func DecodeLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Every byte maps to a rune; this branch is unreachable.
		return string(b)
	}
	return string(out)
}

// EncodeLatin1 converts text back to its single-byte form. Runes outside
// ISO-8859-1 are replaced with the encoding's substitute byte rather than
// failing, consistent with the lenient parse policy.
func EncodeLatin1(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
