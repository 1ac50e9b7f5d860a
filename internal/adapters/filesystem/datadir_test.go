package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/easel/internal/adapters/filesystem"
	"github.com/example/easel/internal/core/datadir"
)

func TestDataDirAdapter_Stat(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewDataDirAdapter(filepath.Join(tmpDir, "Data"))
	require.NoError(t, err)
	ctx := context.Background()

	exists, isDir, err := adapter.Stat(ctx, adapter.DataDir())
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, isDir)

	file := filepath.Join(tmpDir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	exists, isDir, err = adapter.Stat(ctx, file)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.False(t, isDir)

	exists, _, err = adapter.Stat(ctx, filepath.Join(tmpDir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDataDirAdapter_ListTreeAndCopy(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "clients"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "clients", "a.json"), []byte(`{"id":"a"}`), 0644))

	adapter, err := filesystem.NewDataDirAdapter(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	entries, err := adapter.ListTree(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []datadir.Entry{
		{RelPath: "clients", IsDir: true},
		{RelPath: "clients/a.json"},
	}, entries)

	dst := filepath.Join(adapter.DataDir(), "clients", "a.json")
	require.NoError(t, adapter.CopyFile(ctx, filepath.Join(src, "clients", "a.json"), dst, 0644))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`, string(data))
}
