package tools

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/query"
	"github.com/usestring/saz-mcp/internal/store"
)

// buildArchive zips name->content entries in order.
func buildArchive(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func emptyDeps() *Deps {
	cfg := config.Load()
	return &Deps{
		Store:  store.New(cfg),
		Config: cfg,
		Query:  query.NewEngine(),
	}
}

// testDeps returns Deps with a three-session archive loaded: two JSON API
// calls and one binary download, one incomplete session ("4") in between.
func testDeps(t *testing.T) *Deps {
	t.Helper()

	d := emptyDeps()

	entries := map[string][]byte{
		"raw/1_c.txt": []byte("GET /api/users/1 HTTP/1.1\r\nHost: api.example.com\r\n\r\n"),
		"raw/1_s.txt": []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"id\":1,\"name\":\"ada\"}"),
		"raw/2_c.txt": []byte("GET /api/users/2 HTTP/1.1\r\nHost: api.example.com\r\n\r\n"),
		"raw/2_s.txt": []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"id\":2}"),
		"raw/3_c.txt": []byte("GET /logo.png HTTP/1.1\r\nHost: www.example.com\r\n\r\n"),
		"raw/3_s.txt": []byte("HTTP/1.1 200 OK\r\nContent-Type: image/png\r\n\r\n\x89PNG\x0d\x0a\x1a\x0a"),
		"raw/4_c.txt": []byte("GET /lost HTTP/1.1\r\n\r\n"),
	}
	order := []string{
		"raw/1_c.txt", "raw/1_s.txt",
		"raw/2_c.txt", "raw/2_s.txt",
		"raw/3_c.txt", "raw/3_s.txt",
		"raw/4_c.txt",
	}

	_, err := d.Store.Load("test.saz", buildArchive(t, entries, order))
	require.NoError(t, err)
	return d
}

func TestToolLoad(t *testing.T) {
	d := emptyDeps()

	path := filepath.Join(t.TempDir(), "capture.saz")
	data := buildArchive(t, map[string][]byte{
		"raw/1_c.txt": []byte("GET / HTTP/1.1\r\n\r\n"),
		"raw/1_s.txt": []byte("HTTP/1.1 200 OK\r\n\r\n"),
		"raw/2_c.txt": []byte("GET /x HTTP/1.1\r\n\r\n"),
	}, []string{"raw/1_c.txt", "raw/1_s.txt", "raw/2_c.txt"})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, out, err := ToolLoad(d)(context.Background(), nil, LoadInput{Path: path})
	require.NoError(t, err)

	assert.Equal(t, path, out.Path)
	assert.Equal(t, 1, out.Sessions)
	assert.Equal(t, 2, out.References)
	assert.Equal(t, 1, out.Dropped)
}

func TestToolLoadErrors(t *testing.T) {
	d := emptyDeps()

	_, _, err := ToolLoad(d)(context.Background(), nil, LoadInput{})
	assertCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolLoad(d)(context.Background(), nil, LoadInput{Path: "/nonexistent/x.saz"})
	assertCode(t, err, ErrCodeArchiveError)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, code, coded.Code)
}

func TestToolListSessions(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolListSessions(d)(context.Background(), nil, ListSessionsInput{})
	require.NoError(t, err)

	require.Len(t, out.Sessions, 3)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "1", out.Sessions[0].SessionID)
	assert.Equal(t, "https://api.example.com/api/users/1", out.Sessions[0].URL)
	assert.Equal(t, "json", out.Sessions[0].ContentCategory)
	// The request-only id "4" is reported, not hidden.
	assert.Equal(t, []string{"4"}, out.IncompleteIDs)

	_, page, err := ToolListSessions(d)(context.Background(), nil, ListSessionsInput{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page.Sessions, 1)
	assert.Equal(t, "3", page.Sessions[0].SessionID)
	assert.Equal(t, []string{"4"}, page.IncompleteIDs)
}

func TestToolGetSession(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolGetSession(d)(context.Background(), nil, GetSessionInput{SessionID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "GET /api/users/1 HTTP/1.1", out.Request.StartLine)
	assert.Equal(t, "HTTP/1.1 200 OK", out.Response.StartLine)
	assert.Equal(t, "json", out.DefaultView)
	require.NotEmpty(t, out.Response.Headers)
	assert.Equal(t, "content-type", out.Response.Headers[0].Name)

	_, _, err = ToolGetSession(d)(context.Background(), nil, GetSessionInput{SessionID: "99"})
	assertCode(t, err, ErrCodeNotFound)
}

func TestToolGetBody(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolGetBody(d)(context.Background(), nil, GetBodyInput{SessionID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "text", out.Encoding)
	assert.Equal(t, `{"id":1,"name":"ada"}`, out.Body)
	assert.False(t, out.Truncated)

	_, hexOut, err := ToolGetBody(d)(context.Background(), nil, GetBodyInput{SessionID: "3"})
	require.NoError(t, err)
	assert.Equal(t, "hex", hexOut.Encoding)
	assert.Contains(t, hexOut.Body, "89 50 4e 47")
	assert.Equal(t, "binary", hexOut.Category)

	_, trunc, err := ToolGetBody(d)(context.Background(), nil, GetBodyInput{SessionID: "1", MaxBytes: 4})
	require.NoError(t, err)
	assert.True(t, trunc.Truncated)
	assert.Equal(t, 21, trunc.TotalBytes)
	assert.Equal(t, `{"id`, trunc.Body)

	_, _, err = ToolGetBody(d)(context.Background(), nil, GetBodyInput{SessionID: "1", Target: "bogus"})
	assertCode(t, err, ErrCodeInvalidInput)
}

func TestToolSearchSessions(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolSearchSessions(d)(context.Background(), nil, SearchSessionsInput{
		Filters: &SearchSessionsFilters{Host: "api.example.com"},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "1", out.Results[0].Summary.SessionID)

	_, byQuery, err := ToolSearchSessions(d)(context.Background(), nil, SearchSessionsInput{Query: "logo"})
	require.NoError(t, err)
	require.Len(t, byQuery.Results, 1)
	assert.Equal(t, "3", byQuery.Results[0].Summary.SessionID)
}

func TestToolQueryBody(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{Expression: ".id"})
	require.NoError(t, err)
	require.Len(t, out.Values, 2)
	assert.Equal(t, 1, out.Skipped) // the PNG session
	assert.Equal(t, 1, out.SessionCounts["1"])

	_, scoped, err := ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{
		SessionIDs: []string{"1"},
		Expression: ".name",
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"ada"}, scoped.Values)

	_, _, err = ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{Expression: ""})
	assertCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{Expression: ".users[“"})
	assertCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{
		SessionIDs: []string{"99"}, Expression: ".id",
	})
	assertCode(t, err, ErrCodeNotFound)
}

func TestToolQueryBodyAfterReload(t *testing.T) {
	d := emptyDeps()

	entries := map[string][]byte{
		"raw/1_c.txt": []byte("GET /v HTTP/1.1\r\nHost: api.example.com\r\n\r\n"),
		"raw/1_s.txt": []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"v\":\"old\"}"),
	}
	order := []string{"raw/1_c.txt", "raw/1_s.txt"}
	_, err := d.Store.Load("old.saz", buildArchive(t, entries, order))
	require.NoError(t, err)

	// A handler keeps the first snapshot across the reload.
	stale, ok := d.Store.Current()
	require.True(t, ok)

	entries["raw/1_s.txt"] = []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"v\":\"new\"}")
	_, err = d.Store.Load("new.saz", buildArchive(t, entries, order))
	require.NoError(t, err)

	// The stale snapshot caches its own body after the swap; session ids
	// collide ("1" exists in both archives).
	_, cached, err := d.ParsedJSONBody(stale, stale.Archive.Get("1"), TargetResponse)
	require.NoError(t, err)
	require.True(t, cached)

	_, out, err := ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{Expression: ".v"})
	require.NoError(t, err)
	assert.Equal(t, []any{"new"}, out.Values)
}

func TestParsedJSONBodySharesResponseSlot(t *testing.T) {
	d := testDeps(t)
	loaded, err := d.CurrentArchive()
	require.NoError(t, err)
	session, err := d.Session(loaded, "1")
	require.NoError(t, err)

	// "" and "response" are the same side and must share one cache entry.
	_, ok, err := d.ParsedJSONBody(loaded, session, "")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = d.ParsedJSONBody(loaded, session, TargetResponse)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, loaded.Bodies.Len())
}

func TestToolInferSchema(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolInferSchema(d)(context.Background(), nil, InferSchemaInput{
		SessionIDs: []string{"1", "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.SampleCount)
	assert.False(t, out.AllMatch)

	schema, ok := out.Schema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
	// "name" appears in only one sample, so only "id" is required.
	assert.Equal(t, []any{"id"}, schema["required"])
}

func TestToolInferSchemaNoJSONBodies(t *testing.T) {
	d := testDeps(t)

	_, out, err := ToolInferSchema(d)(context.Background(), nil, InferSchemaInput{
		SessionIDs: []string{"3"},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Schema)
	assert.Equal(t, 1, out.Skipped)
}

func TestToolValidateBody(t *testing.T) {
	d := testDeps(t)

	schema := `{"type":"object","properties":{"id":{"type":"integer"},"name":{"type":"string"}},"required":["id","name"]}`
	_, out, err := ToolValidateBody(d)(context.Background(), nil, ValidateBodyInput{Schema: schema})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Valid)   // session 1 has id+name
	assert.Equal(t, 1, out.Invalid) // session 2 misses name
	assert.Equal(t, 1, out.Skipped) // session 3 is binary
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].Valid)
	assert.False(t, out.Results[1].Valid)
	assert.NotEmpty(t, out.Results[1].Errors)

	_, _, err = ToolValidateBody(d)(context.Background(), nil, ValidateBodyInput{})
	assertCode(t, err, ErrCodeInvalidInput)
}

func TestToolsRequireArchive(t *testing.T) {
	d := emptyDeps()

	_, _, err := ToolListSessions(d)(context.Background(), nil, ListSessionsInput{})
	assertCode(t, err, ErrCodeNoArchive)

	_, _, err = ToolQueryBody(d)(context.Background(), nil, QueryBodyInput{Expression: "."})
	assertCode(t, err, ErrCodeNoArchive)
}
