package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesAndReturnsPath(t *testing.T) {
	parent := t.TempDir()

	dir, err := EnsureSubDir(parent, "photos")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(parent, "photos"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	parent := t.TempDir()

	first, err := EnsureSubDir(parent, "photos")
	require.NoError(t, err)

	second, err := EnsureSubDir(parent, "photos")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDataDir_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := EnsureDataDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".todokeeper"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
