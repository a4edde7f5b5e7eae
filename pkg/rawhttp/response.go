package rawhttp

import (
	"strconv"
	"strings"
)

// Response status-line defaults used when tokens are missing or malformed.
const (
	DefaultStatusCode = 200
	DefaultStatusText = "OK"
)

// Response is a parsed HTTP response message.
type Response struct {
	Message
	HTTPVersion string
	StatusCode  int
	StatusText  string
}

// ParseResponse parses a raw server-side blob as an HTTP response.
//
// The status line splits on single spaces: HTTP version, status code, then
// the status text as the remaining tokens rejoined (it may contain spaces).
// A missing or non-numeric status code defaults to 200, matching the
// default-filling policy of the other tokens.
func ParseResponse(raw string) *Response {
	msg := ParseMessage(raw)
	resp := &Response{
		Message:     *msg,
		HTTPVersion: DefaultHTTPVersion,
		StatusCode:  DefaultStatusCode,
		StatusText:  DefaultStatusText,
	}

	tokens := strings.Split(msg.StartLine, " ")
	if len(tokens) > 0 && tokens[0] != "" {
		resp.HTTPVersion = tokens[0]
	}
	if len(tokens) > 1 {
		if code, err := strconv.Atoi(tokens[1]); err == nil {
			resp.StatusCode = code
		}
	}
	if len(tokens) > 2 {
		if text := strings.Join(tokens[2:], " "); text != "" {
			resp.StatusText = text
		}
	}
	return resp
}
