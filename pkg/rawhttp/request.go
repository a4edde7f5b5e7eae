package rawhttp

import "strings"

// Request start-line defaults used when tokens are missing or empty.
const (
	DefaultMethod      = "GET"
	DefaultTarget      = "/"
	DefaultHTTPVersion = "HTTP/1.1"
)

// Request is a parsed HTTP request message.
type Request struct {
	Message
	Method      string
	URL         string
	HTTPVersion string
}

// ParseRequest parses a raw client-side blob as an HTTP request.
//
// The start line splits on single spaces into up to three tokens: method,
// request-target, and HTTP version; extra tokens are ignored and missing or
// empty tokens fall back to defaults. The target is kept verbatim, so a
// CONNECT host:port or an absolute-form URL passes through untouched.
func ParseRequest(raw string) *Request {
	msg := ParseMessage(raw)
	req := &Request{
		Message:     *msg,
		Method:      DefaultMethod,
		URL:         DefaultTarget,
		HTTPVersion: DefaultHTTPVersion,
	}

	tokens := strings.Split(msg.StartLine, " ")
	if len(tokens) > 0 && tokens[0] != "" {
		req.Method = tokens[0]
	}
	if len(tokens) > 1 && tokens[1] != "" {
		req.URL = tokens[1]
	}
	if len(tokens) > 2 && tokens[2] != "" {
		req.HTTPVersion = tokens[2]
	}
	return req
}
