package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "vendorctl")
		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Root())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := Open(path)
		require.Error(t, err)
	})
}

func TestSessionFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is an empty session", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		sf, err := s.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", sf.Token)
		assert.False(t, sf.IsAuthenticated)
	})

	t.Run("save then load", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		now := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, s.SaveSession(ctx, &SessionFile{Token: "abc", IsAuthenticated: true, SavedAt: now}))

		sf, err := s.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", sf.Token)
		assert.True(t, sf.IsAuthenticated)
		assert.True(t, now.Equal(sf.SavedAt))

		info, err := os.Stat(s.SessionPath())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("delete clears and tolerates missing file", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.SaveSession(ctx, &SessionFile{Token: "abc", IsAuthenticated: true}))
		require.NoError(t, s.DeleteSession(ctx))
		require.NoError(t, s.DeleteSession(ctx))

		sf, err := s.LoadSession(ctx)
		require.NoError(t, err)
		assert.Empty(t, sf.Token)
	})

	t.Run("corrupt file is reported", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(s.SessionPath(), []byte("token: [unclosed"), 0o600))

		_, err = s.LoadSession(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.yaml")
	})
}
