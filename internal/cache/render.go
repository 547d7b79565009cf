package cache

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru"

	"union-generator/internal/gen"
	"union-generator/internal/model"
)

// DefaultSize is the number of unions whose renders are kept.
const DefaultSize = 512

// RenderCache maps union model content to rendered artifacts. Identical
// models skip rendering entirely. A nil *RenderCache never hits.
type RenderCache struct {
	entries  *lru.Cache
	buildTag string
}

// NewRenderCache creates a cache of size entries for artifacts rendered
// with buildTag.
func NewRenderCache(size int, buildTag string) (*RenderCache, error) {
	if size <= 0 {
		size = DefaultSize
	}

	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &RenderCache{entries: entries, buildTag: buildTag}, nil
}

// Key returns the cache key of u: the template version, the build tag and
// the model hash.
func (c *RenderCache) Key(u *model.Union) string {
	return gen.Version + "/" + c.buildTag + "/" + strconv.FormatUint(u.Hash(), 16)
}

// Get returns the artifacts previously rendered for a model equal to u.
// The returned slice is shared and must not be modified.
func (c *RenderCache) Get(u *model.Union) ([]gen.Artifact, bool) {
	if c == nil {
		return nil, false
	}

	v, ok := c.entries.Get(c.Key(u))
	if !ok {
		return nil, false
	}

	return v.([]gen.Artifact), true
}

// Add records the artifacts rendered for u.
func (c *RenderCache) Add(u *model.Union, artifacts []gen.Artifact) {
	if c == nil {
		return
	}

	c.entries.Add(c.Key(u), artifacts)
}

// Len returns the number of cached renders.
func (c *RenderCache) Len() int {
	if c == nil {
		return 0
	}

	return c.entries.Len()
}
