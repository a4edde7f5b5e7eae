// Package saz assembles Fiddler-style .saz capture archives into an ordered,
// immutable collection of parsed HTTP sessions.
//
// A .saz file is a zip container whose raw/ directory holds one text
// fragment per side of each captured exchange: <id>_c.txt for the client
// request and <id>_s.txt for the server response. Assemble pairs the
// fragments by id, parses them with pkg/rawhttp, and returns the sessions
// in numeric id order.
package saz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/saz-mcp/pkg/rawhttp"
)

// fragmentPattern matches session fragment paths under the fixed raw/
// directory. The digits are the session id; the letter selects the side.
var fragmentPattern = regexp.MustCompile(`^raw/(\d+)_([a-z])\.txt$`)

const defaultWorkers = 8

// Option configures Assemble.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers bounds the number of fragments decompressed concurrently.
// Parallelism is a pure optimization: grouping and ordering of the result
// never depend on decompression order.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// fragmentPair is the two-slot accumulator for one session id. A side is
// present only when its fragment was found and decompressed.
type fragmentPair struct {
	client    []byte
	server    []byte
	hasClient bool
	hasServer bool
}

// fragmentRef is a matched zip entry awaiting decompression.
type fragmentRef struct {
	id   string
	side byte
	file *zip.File
	data []byte
}

// Assemble reconstructs sessions from raw archive bytes.
//
// Every id observed in a matching fragment name lands in Archive.Order;
// only ids with both sides present produce a Session. The sole failure
// mode is ErrInvalidStructure: the container is not a zip, no fragment
// names matched, or no id had both sides. Malformed fragment content never
// fails the archive; the parser's defaulting rules absorb it.
func Assemble(archive []byte, opts ...Option) (*Archive, error) {
	o := options{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading zip container: %v", ErrInvalidStructure, err)
	}

	refs := discoverFragments(zr)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no session fragments under raw/", ErrInvalidStructure)
	}

	if err := decompressFragments(refs, o.workers); err != nil {
		return nil, err
	}

	pairs := make(map[string]*fragmentPair)
	for _, ref := range refs {
		pair := pairs[ref.id]
		if pair == nil {
			pair = &fragmentPair{}
			pairs[ref.id] = pair
		}
		switch ref.side {
		case 'c':
			pair.client = ref.data
			pair.hasClient = ref.data != nil
		case 's':
			pair.server = ref.data
			pair.hasServer = ref.data != nil
		}
	}

	order := make([]string, 0, len(pairs))
	for id := range pairs {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		return numericLess(order[i], order[j])
	})

	sessions := make(map[string]*Session, len(pairs))
	for _, id := range order {
		pair := pairs[id]
		if !pair.hasClient || !pair.hasServer {
			// Partial session: the id stays in Order but produces nothing.
			continue
		}
		sessions[id] = buildSession(id, pair.client, pair.server)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: no id has both a client and a server fragment", ErrInvalidStructure)
	}

	return &Archive{Sessions: sessions, Order: order}, nil
}

// discoverFragments collects zip entries matching the fragment pattern.
// Directory placeholders, metadata files, and anything outside raw/ are
// ignored without error. Letters other than c/s still register the id so
// it appears in Order.
func discoverFragments(zr *zip.Reader) []*fragmentRef {
	var refs []*fragmentRef
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			continue
		}
		m := fragmentPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		refs = append(refs, &fragmentRef{id: m[1], side: m[2][0], file: f})
	}
	return refs
}

// decompressFragments reads fragment contents with a bounded worker pool.
// Each worker writes only its own slot, so the result is deterministic
// regardless of scheduling. A fragment that fails to decompress is treated
// as absent rather than failing the archive.
func decompressFragments(refs []*fragmentRef, workers int) error {
	var g errgroup.Group
	g.SetLimit(workers)

	for _, ref := range refs {
		g.Go(func() error {
			rc, err := ref.file.Open()
			if err != nil {
				slog.Debug("skipping unreadable fragment",
					slog.String("path", ref.file.Name),
					slog.String("error", err.Error()),
				)
				return nil
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				slog.Debug("skipping truncated fragment",
					slog.String("path", ref.file.Name),
					slog.String("error", err.Error()),
				)
				return nil
			}
			if data == nil {
				data = []byte{}
			}
			ref.data = data
			return nil
		})
	}
	return g.Wait()
}

// buildSession parses both fragment sides and synthesizes the session URL.
func buildSession(id string, client, server []byte) *Session {
	rawClient := rawhttp.DecodeLatin1(client)
	rawServer := rawhttp.DecodeLatin1(server)

	req := rawhttp.ParseRequest(rawClient)
	resp := rawhttp.ParseResponse(rawServer)

	url := req.URL
	if host := req.Headers.Get("host"); host != "" {
		url = "https://" + host + req.URL
	}

	return &Session{
		ID:        id,
		RawClient: rawClient,
		RawServer: rawServer,
		Request:   req,
		Response:  resp,
		URL:       url,
		Method:    req.Method,
	}
}

// numericLess compares two digit strings by numeric value without parsing,
// so ids of any length sort correctly ("10" before "100", after "2").
func numericLess(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
