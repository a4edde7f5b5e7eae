// Package store holds the currently loaded archive and its derived indexes.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/internal/search"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// Store is the single mutable piece of server state: the archive loaded by
// the most recent load call, plus the indexes built from it. Tools read
// through Current; a new load atomically replaces everything.
type Store struct {
	mu     sync.RWMutex
	cfg    *config.Config
	loaded *Loaded
}

// Loaded bundles an archive with its derived state. The body cache lives
// here rather than on the Store: session ids restart at "1" in every
// archive, so a cache shared across loads would serve one archive's body
// for another's session. A handler still holding an old snapshot can only
// ever touch that snapshot's cache.
type Loaded struct {
	Archive  *saz.Archive
	Indexer  *indexer.Indexer
	Search   *search.Engine
	Bodies   *cache.BodyCache
	Path     string
	LoadedAt time.Time
}

// New creates an empty store.
func New(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Load reads, assembles, and indexes an archive from raw zip bytes. The
// path is descriptive only and is echoed back in summaries.
func (s *Store) Load(path string, data []byte) (*Loaded, error) {
	archive, err := saz.Assemble(data, saz.WithWorkers(s.cfg.UnzipWorkers))
	if err != nil {
		return nil, fmt.Errorf("assembling archive %q: %w", path, err)
	}

	idx := indexer.New(s.cfg)
	idx.IndexArchive(archive)

	bodies, err := cache.NewBodyCache(s.cfg.BodyCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("creating body cache: %w", err)
	}

	loaded := &Loaded{
		Archive:  archive,
		Indexer:  idx,
		Search:   search.New(idx),
		Bodies:   bodies,
		Path:     path,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.loaded = loaded
	s.mu.Unlock()

	slog.Info("archive loaded",
		"path", path,
		"sessions", archive.Len(),
		"references", len(archive.Order))
	return loaded, nil
}

// Current returns the loaded archive state, or false when nothing has been
// loaded yet.
func (s *Store) Current() (*Loaded, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, s.loaded != nil
}
