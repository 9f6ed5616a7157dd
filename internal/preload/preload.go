// Package preload checks ahead of time that upcoming files can be read.
// It holds two slots: the file playing now and the next one.
package preload

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// headSize is how much of a file is read to verify it.
const headSize = 4096

// Verifier checks that a file can be played.
type Verifier func(ctx context.Context, path string) error

// Cache is safe for concurrent use; preloads run on background goroutines.
type Cache struct {
	mu      sync.Mutex
	current string
	next    string
	verify  Verifier
}

// New creates a cache verifying files with verify, or by reading their
// first bytes when verify is nil.
func New(verify Verifier) *Cache {
	if verify == nil {
		verify = ReadHead
	}
	return &Cache{verify: verify}
}

// ReadHead opens path and reads its first bytes.
func ReadHead(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, headSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if n == 0 {
		return errors.New("empty file")
	}
	return nil
}

// IsCached reports whether t occupies either slot.
func (c *Cache) IsCached(t dancetree.TrackRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return t.Path != "" && (t.Path == c.current || t.Path == c.next)
}

// Preload verifies t and stores it in the next slot. Returns false if the
// file is not accessible; the slot is then left empty.
func (c *Cache) Preload(ctx context.Context, t dancetree.TrackRef) (bool, error) {
	if c.IsCached(t) {
		return true, nil
	}
	if err := c.verify(ctx, t.Path); err != nil {
		c.mu.Lock()
		if c.next == t.Path {
			c.next = ""
		}
		c.mu.Unlock()
		return false, err
	}
	c.mu.Lock()
	c.next = t.Path
	c.mu.Unlock()
	return true, nil
}

// PromoteNextToCurrent moves the next slot into the current one.
func (c *Cache) PromoteNextToCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.next
	c.next = ""
}

// Clear empties both slots.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = ""
	c.next = ""
}
