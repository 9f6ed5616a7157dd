package preload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

func writeFile(t *testing.T, name string, data []byte) dancetree.TrackRef {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return dancetree.TrackRef{Path: path}
}

func TestPreload_Slots(t *testing.T) {
	c := New(nil)
	a := writeFile(t, "a.mp3", []byte("ID3 data"))
	b := writeFile(t, "b.mp3", []byte("ID3 data"))

	ok, err := c.Preload(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.IsCached(a))

	c.PromoteNextToCurrent()
	assert.True(t, c.IsCached(a), "promoted track stays cached")

	ok, _ = c.Preload(context.Background(), b)
	assert.True(t, ok)
	assert.True(t, c.IsCached(a))
	assert.True(t, c.IsCached(b))

	c.PromoteNextToCurrent()
	assert.False(t, c.IsCached(a), "only two slots are kept")
	assert.True(t, c.IsCached(b))

	c.Clear()
	assert.False(t, c.IsCached(b))
}

func TestPreload_Failures(t *testing.T) {
	c := New(nil)

	ok, err := c.Preload(context.Background(), dancetree.TrackRef{Path: "/does/not/exist.mp3"})
	assert.False(t, ok)
	assert.Error(t, err)

	empty := writeFile(t, "empty.mp3", nil)
	ok, err = c.Preload(context.Background(), empty)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.False(t, c.IsCached(empty))
}

func TestPreload_CancelledContext(t *testing.T) {
	c := New(nil)
	a := writeFile(t, "a.mp3", []byte("x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Preload(ctx, a)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreload_CustomVerifier(t *testing.T) {
	var seen []string
	c := New(func(_ context.Context, path string) error {
		seen = append(seen, path)
		return nil
	})

	tr := dancetree.TrackRef{Path: "/virtual.mp3"}
	ok, _ := c.Preload(context.Background(), tr)
	assert.True(t, ok)
	ok, _ = c.Preload(context.Background(), tr)
	assert.True(t, ok)
	assert.Equal(t, []string{"/virtual.mp3"}, seen, "cached tracks are not verified again")
}
