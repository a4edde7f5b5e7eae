package rawhttp

import "strings"

// Headers is an order-preserving header map with case-insensitive keys.
// Names are lower-cased on insertion. Setting a name that already exists
// replaces its value but keeps the original insertion position, so repeated
// header lines collapse to the last value seen (a known limitation for
// headers like Set-Cookie where multiple values are meaningful).
type Headers struct {
	names  []string
	values map[string]string
}

// NewHeaders returns an empty header map.
func NewHeaders() *Headers {
	return &Headers{values: make(map[string]string)}
}

// Set stores a header value under the lower-cased name. The value is kept
// as-is: no trimming, no comma splitting.
func (h *Headers) Set(name, value string) {
	key := strings.ToLower(name)
	if _, ok := h.values[key]; !ok {
		h.names = append(h.names, key)
	}
	h.values[key] = value
}

// Get returns the value for a name (any casing), or "" if absent.
func (h *Headers) Get(name string) string {
	return h.values[strings.ToLower(name)]
}

// Has reports whether a header with the given name (any casing) exists.
func (h *Headers) Has(name string) bool {
	_, ok := h.values[strings.ToLower(name)]
	return ok
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.names)
}

// Names returns the lower-cased header names in insertion order.
func (h *Headers) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Pairs returns name/value pairs in insertion order.
func (h *Headers) Pairs() [][2]string {
	out := make([][2]string, 0, len(h.names))
	for _, name := range h.names {
		out = append(out, [2]string{name, h.values[name]})
	}
	return out
}

// Map returns the headers as a plain map, losing insertion order.
func (h *Headers) Map() map[string]string {
	out := make(map[string]string, len(h.names))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}
