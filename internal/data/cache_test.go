package data

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCache_KeyStableAcrossOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "x\n")
	b := writeFile(t, dir, "b.csv", "y\n")

	c := NewLoadCache()
	k1, err := c.Key([]string{a, b})
	require.NoError(t, err)
	k2, err := c.Key([]string{b, a})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestLoadCache_KeyChangesOnRewrite(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "x\n")

	c := NewLoadCache()
	k1, err := c.Key([]string{a})
	require.NoError(t, err)

	// Same size, different mtime.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(a, future, future))
	k2, err := c.Key([]string{a})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestLoadCache_GetSetClear(t *testing.T) {
	c := NewLoadCache()
	snap := &Snapshot{Loaded: time.Now()}

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", snap)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, snap, got)

	c.Clear()
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestLoadCache_NilReceiverIsNoop(t *testing.T) {
	var c *LoadCache
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Set("k", &Snapshot{})
	c.Clear()
}
