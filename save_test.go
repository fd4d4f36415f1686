// FILE: conftree/save_test.go
package conftree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeSnapshot is a cycle-free copy of a subtree. Sections carry parent
// pointers, so the live structs cannot be diffed directly.
type treeSnapshot struct {
	Name string
	Tags [][2]string
	Subs []treeSnapshot
}

func snapshot(s *Section) treeSnapshot {
	snap := treeSnapshot{Name: s.name}
	for _, tv := range s.values {
		snap.Tags = append(snap.Tags, [2]string{tv.tag, tv.value})
	}
	for _, sub := range s.subsections {
		snap.Subs = append(snap.Subs, snapshot(sub))
	}
	return snap
}

// requireSameTree fails the test when the two trees differ in structure,
// tag names or values.
func requireSameTree(t *testing.T, want, got *Section) {
	t.Helper()
	if diff := cmp.Diff(snapshot(want), snapshot(got)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

// TestSaveRoundTrip tests that a saved store loads back equivalent
func TestSaveRoundTrip(t *testing.T) {
	c := New()
	c.StoreString("top", "value")
	c.StoreString("server/host", "localhost")
	c.StoreInt("server/port", 8080)
	c.StoreString("server/net/proto", "tcp")
	c.StoreString("logging/level", "info")
	c.StoreString("flag", "")
	c.CreateSection("empty")

	path := filepath.Join(t.TempDir(), "app.cfg")
	require.NoError(t, c.SaveAs(path))
	assert.False(t, c.IsDirty())

	loaded, err := Open(path)
	require.NoError(t, err)
	requireSameTree(t, c.Root(), loaded.Root())
}

// TestSaveFormat tests the exact text layout of a full dump
func TestSaveFormat(t *testing.T) {
	c := New()
	c.StoreString("top", "value")
	c.StoreInt("server/port", 8080)
	c.StoreString("server/net/proto", "tcp")
	c.StoreString("bare", "")

	var b strings.Builder
	_, err := c.WriteTo(&b)
	require.NoError(t, err)

	expected := "top value\n" +
		"bare\n" +
		"server {\n" +
		"\tport 8080\n" +
		"\tnet {\n" +
		"\t\tproto tcp\n" +
		"\t}\n" +
		"}\n"
	assert.Equal(t, expected, b.String())
}

// TestSaveDirtySelection tests that Save writes only dirty subtrees
func TestSaveDirtySelection(t *testing.T) {
	content := "shared 1\n" +
		"a {\n" +
		"\tx 1\n" +
		"}\n" +
		"b {\n" +
		"\ty 1\n" +
		"\tz 2\n" +
		"}\n"

	t.Run("CleanStoreDoesNotWrite", func(t *testing.T) {
		path := writeConfigFile(t, content)
		c, err := Open(path)
		require.NoError(t, err)

		// Remove the file: an idempotent clean save must not recreate it
		require.NoError(t, os.Remove(path))
		require.NoError(t, c.Save())
		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("OnlyDirtySubtreesWritten", func(t *testing.T) {
		path := writeConfigFile(t, content)
		c, err := Open(path)
		require.NoError(t, err)

		// Touch one tag inside b; a stays clean
		c.StoreInt("b/y", 9)
		require.NoError(t, c.Save())

		saved, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(saved)

		// The dirty section is written whole, its clean sibling not at all.
		// Root tags always accompany a write.
		assert.NotContains(t, text, "a {")
		assert.Contains(t, text, "shared 1")
		assert.Contains(t, text, "y 9")
		assert.Contains(t, text, "z 2")
	})

	t.Run("SavedOverlayMergesBack", func(t *testing.T) {
		base := writeConfigFile(t, content)
		c, err := Open(base)
		require.NoError(t, err)
		c.StoreInt("b/y", 9)

		overlay := filepath.Join(t.TempDir(), "overlay.cfg")
		c.fileName = overlay
		require.NoError(t, c.Save())

		// Base plus overlay reproduces the effective tree
		merged, err := Open(base)
		require.NoError(t, err)
		require.NoError(t, merged.Merge(overlay))
		requireSameTree(t, c.Root(), merged.Root())
	})

	t.Run("DirtyFlagsClearAfterSave", func(t *testing.T) {
		path := writeConfigFile(t, content)
		c, err := Open(path)
		require.NoError(t, err)

		c.StoreInt("b/y", 9)
		require.NoError(t, c.Save())
		assert.False(t, c.IsDirty())

		// A second save with nothing dirty leaves the file alone
		require.NoError(t, os.Remove(path))
		require.NoError(t, c.Save())
		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("FreshTreeIsFullyDirty", func(t *testing.T) {
		c := New()
		c.StoreString("a/x", "1")
		c.StoreString("b/y", "2")
		path := filepath.Join(t.TempDir(), "fresh.cfg")
		c.fileName = path
		require.NoError(t, c.Save())

		loaded, err := Open(path)
		require.NoError(t, err)
		requireSameTree(t, c.Root(), loaded.Root())
	})
}

// TestSaveAs tests full dumps and rebinding
func TestSaveAs(t *testing.T) {
	path := writeConfigFile(t, "a {\nx 1\n}\nb {\ny 2\n}\n")
	c, err := Open(path)
	require.NoError(t, err)
	require.False(t, c.IsDirty())

	// SaveAs writes everything, clean sections included
	other := filepath.Join(t.TempDir(), "copy.cfg")
	require.NoError(t, c.SaveAs(other))
	assert.Equal(t, other, c.FileName())

	copied, err := Open(other)
	require.NoError(t, err)
	requireSameTree(t, c.Root(), copied.Root())
}

// TestWriteTo tests that dumping does not disturb dirty state
func TestWriteTo(t *testing.T) {
	c := New()
	c.StoreString("t", "v")
	require.True(t, c.IsDirty())

	var b strings.Builder
	n, err := c.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, int64(len(b.String())), n)
	assert.Equal(t, "t v\n", b.String())
	assert.True(t, c.IsDirty())
}

// TestSaveUnbound tests saving a store with no file
func TestSaveUnbound(t *testing.T) {
	c := New()
	c.StoreString("t", "v")
	assert.Error(t, c.Save())
}
