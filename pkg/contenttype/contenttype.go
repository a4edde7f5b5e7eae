// Package contenttype classifies content-type header values and picks the
// default inspector view for a message body.
package contenttype

import (
	"mime"
	"strings"
	"unicode/utf8"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON   Category = "json"
	XML    Category = "xml"
	HTML   Category = "html"
	Form   Category = "form"
	Text   Category = "text"
	Binary Category = "binary"
)

// View names the inspector presentation chosen for a body.
type View string

const (
	ViewJSON    View = "json"
	ViewXML     View = "xml"
	ViewText    View = "text"
	ViewHex     View = "hex"
	ViewHeaders View = "headers"
)

// Classify returns the broad content category for a content-type header
// value. Parameters (charset, boundary) are stripped with
// mime.ParseMediaType; malformed values fall back to a lower-cased string
// match. An empty value classifies as Binary.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case mediaType == "application/x-www-form-urlencoded":
		return Form
	case strings.HasPrefix(mediaType, "text/"),
		strings.Contains(mediaType, "javascript"),
		strings.Contains(mediaType, "yaml"):
		return Text
	default:
		return Binary
	}
}

// DefaultView picks the inspector view a session opens on, from the
// response content-type and whether the body is empty. An empty body always
// lands on the headers view.
func DefaultView(contentType string, bodyLen int) View {
	if bodyLen == 0 {
		return ViewHeaders
	}
	switch Classify(contentType) {
	case JSON:
		return ViewJSON
	case XML:
		return ViewXML
	case HTML, Form, Text:
		return ViewText
	default:
		return ViewHex
	}
}

// IsBinary reports whether body data should be treated as binary. Known
// text categories are never binary; for unknown or empty content types the
// data itself decides via UTF-8 validation.
func IsBinary(contentType string, data []byte) bool {
	if contentType != "" {
		switch Classify(contentType) {
		case JSON, XML, HTML, Form, Text:
			return false
		}
		mediaType := strings.ToLower(contentType)
		if strings.HasPrefix(mediaType, "image/") ||
			strings.HasPrefix(mediaType, "audio/") ||
			strings.HasPrefix(mediaType, "video/") ||
			strings.Contains(mediaType, "octet-stream") ||
			strings.Contains(mediaType, "pdf") ||
			strings.Contains(mediaType, "gzip") ||
			strings.Contains(mediaType, "zip") {
			return true
		}
	}
	return !utf8.Valid(data)
}

// IsJSON reports whether the content type indicates JSON.
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}
