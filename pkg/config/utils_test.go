package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEnvFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("X=1\n"), 0o600))
	t.Chdir(nested)

	got, err := findEnvFile("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(root, ".env"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestFindEnvFile_SkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".env.local"), 0o755))
	t.Chdir(root)

	_, err := findEnvFile(".env.local")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindEnvFile_Absolute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("X=1\n"), 0o600))

	got, err := findEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = findEnvFile(filepath.Join(filepath.Dir(path), "missing.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
