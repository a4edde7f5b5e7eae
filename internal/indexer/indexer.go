package indexer

import (
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// Indexer maintains in-memory inverted indexes over an archive's sessions
// using Roaring bitmaps. Document ids are assigned in archive order, so the
// same archive always indexes identically.
type Indexer struct {
	mu sync.RWMutex

	idToDoc   map[string]uint32
	docToMeta []*SessionMeta
	nextDocID uint32

	idxHost        map[string]*roaring.Bitmap
	idxMethod      map[string]*roaring.Bitmap
	idxStatus      map[int]*roaring.Bitmap
	idxHTTPVersion map[string]*roaring.Bitmap
	idxHeaderName  map[string]*roaring.Bitmap
	idxHeaderValue map[string]*roaring.Bitmap // key format: "name:value"
	idxToken       map[string]*roaring.Bitmap

	config *config.Config
}

// New creates an empty Indexer.
func New(cfg *config.Config) *Indexer {
	return &Indexer{
		idToDoc:        make(map[string]uint32),
		docToMeta:      make([]*SessionMeta, 0, 256),
		idxHost:        make(map[string]*roaring.Bitmap),
		idxMethod:      make(map[string]*roaring.Bitmap),
		idxStatus:      make(map[int]*roaring.Bitmap),
		idxHTTPVersion: make(map[string]*roaring.Bitmap),
		idxHeaderName:  make(map[string]*roaring.Bitmap),
		idxHeaderValue: make(map[string]*roaring.Bitmap),
		idxToken:       make(map[string]*roaring.Bitmap),
		config:         cfg,
	}
}

// IndexArchive indexes every complete session, walking Order so document
// ids follow the archive's numeric session order.
func (idx *Indexer) IndexArchive(a *saz.Archive) {
	for _, id := range a.Order {
		if s := a.Get(id); s != nil {
			idx.Index(s)
		}
	}
}

// Index adds a session to the index and returns its document id. Indexing
// the same session id twice returns the existing document.
func (idx *Indexer) Index(s *saz.Session) uint32 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if docID, exists := idx.idToDoc[s.ID]; exists {
		return docID
	}

	docID := idx.nextDocID
	idx.nextDocID++

	meta := FromSession(s)
	meta.DocID = docID

	idx.idToDoc[s.ID] = docID
	idx.docToMeta = append(idx.docToMeta, meta)

	if meta.Host != "" {
		idx.addToBitmap(idx.idxHost, meta.Host, docID)
	}
	if meta.Method != "" {
		idx.addToBitmap(idx.idxMethod, meta.Method, docID)
	}
	if meta.Status != 0 {
		idx.addToIntBitmap(idx.idxStatus, meta.Status, docID)
	}
	if meta.HTTPVersion != "" {
		idx.addToBitmap(idx.idxHTTPVersion, meta.HTTPVersion, docID)
	}

	for _, name := range meta.HeaderNames {
		idx.addToBitmap(idx.idxHeaderName, name, docID)
	}
	if idx.config == nil || idx.config.IndexHeaderValues {
		for _, field := range meta.HeaderFields {
			if name, value, ok := strings.Cut(field, ": "); ok {
				idx.addToBitmap(idx.idxHeaderValue, name+":"+value, docID)
			}
		}
	}

	for _, token := range TokenizeURL(meta.URL) {
		idx.addToBitmap(idx.idxToken, token, docID)
	}
	for _, token := range TokenizeHeaders(meta.HeaderFields) {
		idx.addToBitmap(idx.idxToken, token, docID)
	}

	return docID
}

// GetMeta retrieves metadata by document id.
func (idx *Indexer) GetMeta(docID uint32) *SessionMeta {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if int(docID) >= len(idx.docToMeta) {
		return nil
	}
	return idx.docToMeta[docID]
}

// GetMetaBySessionID retrieves metadata by session id.
func (idx *Indexer) GetMetaBySessionID(sessionID string) *SessionMeta {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	docID, exists := idx.idToDoc[sessionID]
	if !exists {
		return nil
	}
	return idx.docToMeta[docID]
}

// AllDocIDs returns a bitmap of all indexed document ids.
func (idx *Indexer) AllDocIDs() *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bm := roaring.New()
	bm.AddRange(0, uint64(idx.nextDocID))
	return bm
}

// DocCount returns the number of indexed sessions.
func (idx *Indexer) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docToMeta)
}

// GetBitmapForHost returns the bitmap for a host pattern. The "*.domain"
// form matches the bare domain and every subdomain; otherwise the match is
// exact. Matching ignores case on both sides, like header names.
func (idx *Indexer) GetBitmapForHost(host string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	host = strings.ToLower(host)
	if !strings.HasPrefix(host, "*.") {
		return idx.idxHost[host]
	}

	baseDomain := host[2:]
	if baseDomain == "" {
		return nil
	}

	suffix := "." + baseDomain
	result := roaring.New()
	for key, bm := range idx.idxHost {
		if key == baseDomain || strings.HasSuffix(key, suffix) {
			result.Or(bm)
		}
	}
	if result.IsEmpty() {
		return nil
	}
	return result
}

// GetBitmapForMethod returns the bitmap for an HTTP method.
func (idx *Indexer) GetBitmapForMethod(method string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.idxMethod[method]
}

// GetBitmapForStatus returns the bitmap for a status code.
func (idx *Indexer) GetBitmapForStatus(status int) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.idxStatus[status]
}

// GetBitmapForHTTPVersion returns the bitmap for an HTTP version.
func (idx *Indexer) GetBitmapForHTTPVersion(version string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.idxHTTPVersion[version]
}

// GetBitmapForHeaderName returns the bitmap for a header name.
func (idx *Indexer) GetBitmapForHeaderName(name string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.idxHeaderName[strings.ToLower(name)]
}

// GetBitmapForToken returns the bitmap for a free-text token.
func (idx *Indexer) GetBitmapForToken(token string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.idxToken[token]
}

func (idx *Indexer) addToBitmap(index map[string]*roaring.Bitmap, key string, docID uint32) {
	bm, exists := index[key]
	if !exists {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(docID)
}

func (idx *Indexer) addToIntBitmap(index map[int]*roaring.Bitmap, key int, docID uint32) {
	bm, exists := index[key]
	if !exists {
		bm = roaring.New()
		index[key] = bm
	}
	bm.Add(docID)
}
