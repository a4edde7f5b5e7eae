package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantStartLine string
		wantHeaders   map[string]string
		wantBody      string
	}{
		{
			name:          "request with headers and body",
			raw:           "POST /api HTTP/1.1\r\nHost: example.com\r\nContent-Type: application/json\r\n\r\n{\"a\":1}",
			wantStartLine: "POST /api HTTP/1.1",
			wantHeaders:   map[string]string{"host": "example.com", "content-type": "application/json"},
			wantBody:      "{\"a\":1}",
		},
		{
			name:          "no blank line means no body",
			raw:           "GET / HTTP/1.1\r\nHost: example.com",
			wantStartLine: "GET / HTTP/1.1",
			wantHeaders:   map[string]string{"host": "example.com"},
			wantBody:      "",
		},
		{
			name:          "only first blank line ends headers",
			raw:           "HTTP/1.1 200 OK\r\n\r\nline one\r\n\r\nline two",
			wantStartLine: "HTTP/1.1 200 OK",
			wantHeaders:   map[string]string{},
			wantBody:      "line one\r\n\r\nline two",
		},
		{
			name:          "header without colon-space is discarded",
			raw:           "GET / HTTP/1.1\r\nKey:Value\r\nGood: yes\r\n\r\n",
			wantStartLine: "GET / HTTP/1.1",
			wantHeaders:   map[string]string{"good": "yes"},
			wantBody:      "",
		},
		{
			name:          "start line with colon is never a header",
			raw:           "CONNECT example.com:443 HTTP/1.1\r\n\r\n",
			wantStartLine: "CONNECT example.com:443 HTTP/1.1",
			wantHeaders:   map[string]string{},
			wantBody:      "",
		},
		{
			name:          "value keeps everything after first separator",
			raw:           "GET / HTTP/1.1\r\nReferer: https://example.com/a: b\r\n\r\n",
			wantStartLine: "GET / HTTP/1.1",
			wantHeaders:   map[string]string{"referer": "https://example.com/a: b"},
			wantBody:      "",
		},
		{
			name:          "empty input",
			raw:           "",
			wantStartLine: "",
			wantHeaders:   map[string]string{},
			wantBody:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ParseMessage(tt.raw)

			assert.Equal(t, tt.wantStartLine, msg.StartLine)
			assert.Equal(t, tt.wantBody, msg.RawBody)
			assert.Equal(t, tt.wantHeaders, msg.Headers.Map())
			assert.Equal(t, EncodeLatin1(tt.wantBody), msg.BodyBytes)
		})
	}
}

func TestParseMessageDuplicateHeaderLastWins(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nSet-Cookie: a=1\r\nHost: example.com\r\nSet-Cookie: b=2\r\n\r\n"
	msg := ParseMessage(raw)

	assert.Equal(t, "b=2", msg.Headers.Get("set-cookie"))
	// The duplicate keeps its original position.
	assert.Equal(t, []string{"set-cookie", "host"}, msg.Headers.Names())
}

func TestParseMessageCaseInsensitiveLookup(t *testing.T) {
	msg := ParseMessage("GET / HTTP/1.1\r\nContent-Type: application/json\r\n\r\n")

	assert.Equal(t, "application/json", msg.Headers.Get("content-type"))
	assert.Equal(t, "application/json", msg.Headers.Get("Content-Type"))
	assert.True(t, msg.Headers.Has("CONTENT-TYPE"))
	// Stored key is the lower-cased form only.
	assert.Equal(t, []string{"content-type"}, msg.Headers.Names())
}

func TestLatin1RoundTrip(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}

	decoded := DecodeLatin1(raw)
	require.Equal(t, 256, len([]rune(decoded)))
	assert.Equal(t, raw, EncodeLatin1(decoded))
}

func TestBodyBytesPreserveHighBytes(t *testing.T) {
	body := []byte{'a', 0x80, 0xfe, 0xff, 'z'}
	raw := append([]byte("HTTP/1.1 200 OK\r\n\r\n"), body...)

	msg := ParseMessage(DecodeLatin1(raw))
	assert.Equal(t, body, msg.BodyBytes)
}

func TestHeadersPairsOrder(t *testing.T) {
	h := NewHeaders()
	h.Set("B", "2")
	h.Set("A", "1")
	h.Set("b", "3")

	assert.Equal(t, [][2]string{{"b", "3"}, {"a", "1"}}, h.Pairs())
	assert.Equal(t, 2, h.Len())
}
