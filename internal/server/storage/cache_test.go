package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vitibrasil/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileCache_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets", "nested")

	c, err := NewFileCache(dir, logging.NewDiscardLogger())
	require.NoError(t, err)

	info, err := os.Stat(c.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, filepath.IsAbs(c.Dir()))
}

func TestFileCache_PutOverwrites(t *testing.T) {
	c, err := NewFileCache(t.TempDir(), logging.NewDiscardLogger())
	require.NoError(t, err)
	ctx := context.Background()

	path, err := c.Put(ctx, "Producao.csv", []byte("a much longer first version\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Dir(), "Producao.csv"), path)

	_, err = c.Put(ctx, "Producao.csv", []byte("v2\n"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2\n", string(got))

	entries, err := os.ReadDir(c.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileCache_ConcurrentPut(t *testing.T) {
	c, err := NewFileCache(t.TempDir(), logging.NewDiscardLogger())
	require.NoError(t, err)

	versions := []string{"aaaa\n", "bbbbbbbb\n", "cc\n", "dddddd\n"}

	var wg sync.WaitGroup
	for _, v := range versions {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_, err := c.Put(context.Background(), "Exportacao.csv", []byte(v))
			assert.NoError(t, err)
		}(v)
	}
	wg.Wait()

	got, err := os.ReadFile(filepath.Join(c.Dir(), "Exportacao.csv"))
	require.NoError(t, err)
	assert.Contains(t, versions, string(got))
}

func TestFileCache_PutRejectsPaths(t *testing.T) {
	c, err := NewFileCache(t.TempDir(), logging.NewDiscardLogger())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.csv", "sub/dir.csv"} {
		_, err := c.Put(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}
