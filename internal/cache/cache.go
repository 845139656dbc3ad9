// Package cache keeps recent split results in memory so unchanged files
// are not split again in watch mode.
package cache

import (
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// DefaultCapacity is the number of split results kept when none is configured.
const DefaultCapacity = 10_000

// SplitCache holds split results keyed by filename and content hash, plus
// the last content hash seen for every filename.
type SplitCache struct {
	results otter.Cache[string, []processor.VirtualDocument]
	latest  otter.Cache[string, string]
}

// New creates a SplitCache holding up to capacity entries.
// If capacity is not positive, DefaultCapacity is used.
func New(capacity int) (*SplitCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	results, err := otter.MustBuilder[string, []processor.VirtualDocument](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}

	latest, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		results.Close()
		return nil, fmt.Errorf("failed to build hash cache: %w", err)
	}

	return &SplitCache{results: results, latest: latest}, nil
}

// Get returns the cached split result for this version of the file.
func (c *SplitCache) Get(filename, content string) ([]processor.VirtualDocument, bool) {
	return c.results.Get(Key(filename, content))
}

// Put stores a split result for this version of the file.
func (c *SplitCache) Put(filename, content string, docs []processor.VirtualDocument) {
	c.results.Set(Key(filename, content), docs)
}

// Changed reports whether content differs from the last content recorded
// for filename, and records it.
func (c *SplitCache) Changed(filename, content string) bool {
	digest := hashString(content)
	if prev, ok := c.latest.Get(filename); ok && prev == digest {
		return false
	}
	c.latest.Set(filename, digest)
	return true
}

// Forget drops the recorded hash for filename, e.g. after it was removed.
func (c *SplitCache) Forget(filename string) {
	c.latest.Delete(filename)
}

// Split returns the cached result for this version of the file or computes
// it with split. Errors are never cached.
func (c *SplitCache) Split(filename, content string, split func(text, filename string) ([]processor.VirtualDocument, error)) ([]processor.VirtualDocument, error) {
	if docs, ok := c.Get(filename, content); ok {
		return docs, nil
	}

	docs, err := split(content, filename)
	if err != nil {
		return nil, err
	}

	c.Put(filename, content, docs)
	return docs, nil
}

// Stats reports result cache hits and misses.
func (c *SplitCache) Stats() (hits, misses int64) {
	s := c.results.Stats()
	return s.Hits(), s.Misses()
}

// Close releases the underlying caches.
func (c *SplitCache) Close() {
	c.results.Close()
	c.latest.Close()
}
