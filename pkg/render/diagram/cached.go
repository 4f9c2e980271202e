package diagram

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fadiagram/pkg/cache"
)

// CachedBackend serves repeated renders of the same diagram from a cache.
// Cache failures are treated as misses and never fail a render; they are
// logged instead.
type CachedBackend struct {
	backend Backend
	cache   cache.Cache
	ttl     time.Duration
	logger  *log.Logger
}

// NewCachedBackend wraps b with c. Entries expire after ttl; zero keeps
// them until evicted.
func NewCachedBackend(b Backend, c cache.Cache, ttl time.Duration) *CachedBackend {
	return &CachedBackend{backend: b, cache: c, ttl: ttl, logger: log.New(io.Discard)}
}

// WithLogger sets the logger for cache failures and returns b.
func (b *CachedBackend) WithLogger(l *log.Logger) *CachedBackend {
	if l != nil {
		b.logger = l
	}
	return b
}

// Available reports the wrapped backend's availability.
func (b *CachedBackend) Available(ctx context.Context) error {
	return b.backend.Available(ctx)
}

// Render returns the cached artifact for g and format, rendering and
// storing it on a miss.
func (b *CachedBackend) Render(ctx context.Context, g *Graph, format Format) ([]byte, error) {
	key := cache.ArtifactKey(string(format), g.canonical().DOT())
	data, hit, err := b.cache.Get(ctx, key)
	switch {
	case err != nil:
		b.logger.Warn("artifact cache read failed", "key", key, "err", err)
	case hit:
		b.logger.Debug("artifact cache hit", "key", key)
		return data, nil
	}

	data, err = b.backend.Render(ctx, g, format)
	if err != nil {
		return nil, err
	}
	if err := b.cache.Set(ctx, key, data, b.ttl); err != nil {
		b.logger.Warn("artifact cache write failed", "key", key, "err", err)
	}
	return data, nil
}

// canonical returns a copy of g whose entry node IDs are numbered by
// position. Entry IDs are random per build, so two builds of the same
// automaton only share a DOT encoding after this renaming.
func (g *Graph) canonical() *Graph {
	rename := make(map[string]string)
	c := *g
	c.Nodes = make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.Kind == NodeKindEntry {
			id := EntryPrefix + strconv.Itoa(len(rename))
			rename[n.ID] = id
			n.ID = id
		}
		c.Nodes[i] = n
	}
	c.Edges = make([]Edge, len(g.Edges))
	for i, e := range g.Edges {
		if id, ok := rename[e.From]; ok {
			e.From = id
		}
		c.Edges[i] = e
	}
	return &c
}
