package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_RoundTrip(t *testing.T) {
	t.Run("put then get returns the same bytes", func(t *testing.T) {
		s := NewFS(t.TempDir())
		doc := json.RawMessage(`{"id":42,"title":"v1","issues":[]}`)

		require.NoError(t, s.Put(KindMilestone, "42", doc))

		got, ok, err := s.Get(KindMilestone, "42")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(doc), []byte(got))
	})

	t.Run("miss on unknown id", func(t *testing.T) {
		s := NewFS(t.TempDir())

		_, ok, err := s.Get(KindIssue, "999")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("kinds do not collide", func(t *testing.T) {
		s := NewFS(t.TempDir())

		require.NoError(t, s.Put(KindMilestone, "1", json.RawMessage(`{"kind":"m"}`)))
		require.NoError(t, s.Put(KindIssue, "1", json.RawMessage(`{"kind":"i"}`)))

		m, ok, err := s.Get(KindMilestone, "1")
		require.NoError(t, err)
		require.True(t, ok)
		i, ok, err := s.Get(KindIssue, "1")
		require.NoError(t, err)
		require.True(t, ok)

		assert.NotEqual(t, []byte(m), []byte(i))
	})

	t.Run("put overwrites prior content", func(t *testing.T) {
		s := NewFS(t.TempDir())

		require.NoError(t, s.Put(KindIssue, "7", json.RawMessage(`{"v":1}`)))
		require.NoError(t, s.Put(KindIssue, "7", json.RawMessage(`{"v":2}`)))

		got, ok, err := s.Get(KindIssue, "7")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("entry files follow the kind-id naming", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFS(dir)

		require.NoError(t, s.Put(KindMilestone, "101", json.RawMessage(`{}`)))

		_, err := os.Stat(filepath.Join(dir, "milestone-101.json"))
		assert.NoError(t, err)
	})
}

func TestFS_Clear(t *testing.T) {
	t.Run("removes all json entries", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFS(dir)

		require.NoError(t, s.Put(KindMilestone, "1", json.RawMessage(`{}`)))
		require.NoError(t, s.Put(KindIssue, "2", json.RawMessage(`{}`)))

		require.NoError(t, s.Clear())

		_, ok, err := s.Get(KindMilestone, "1")
		require.NoError(t, err)
		assert.False(t, ok)

		stats, err := s.Stats()
		require.NoError(t, err)
		assert.Zero(t, stats.Entries)
	})

	t.Run("leaves non-json files alone", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFS(dir)

		require.NoError(t, s.Put(KindIssue, "1", json.RawMessage(`{}`)))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

		require.NoError(t, s.Clear())

		_, err := os.Stat(filepath.Join(dir, "notes.txt"))
		assert.NoError(t, err)
	})

	t.Run("clear on a missing directory is a no-op", func(t *testing.T) {
		s := NewFS(filepath.Join(t.TempDir(), "never-created"))

		assert.NoError(t, s.Clear())
	})
}

func TestFS_Stats(t *testing.T) {
	t.Run("counts entries and bytes", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFS(dir)

		require.NoError(t, s.Put(KindMilestone, "1", json.RawMessage(`{"a":1}`)))
		require.NoError(t, s.Put(KindIssue, "2", json.RawMessage(`{"b":2}`)))

		stats, err := s.Stats()

		require.NoError(t, err)
		assert.Equal(t, dir, stats.Location)
		assert.Equal(t, 2, stats.Entries)
		assert.Equal(t, int64(len(`{"a":1}`)+len(`{"b":2}`)), stats.TotalBytes)
	})
}

func TestDisabled(t *testing.T) {
	t.Run("always misses and drops writes", func(t *testing.T) {
		s := Disabled()

		require.NoError(t, s.Put(KindIssue, "1", json.RawMessage(`{}`)))

		_, ok, err := s.Get(KindIssue, "1")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, s.Clear())
		assert.NoError(t, s.Close())
	})
}

func TestDefaultDir(t *testing.T) {
	t.Run("scopes by owner and repo", func(t *testing.T) {
		dir := DefaultDir("octo", "hello")

		assert.Contains(t, dir, filepath.Join("ghexport", "octo", "hello"))
	})
}
