package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/statnl/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirWriteAndRead(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	s, err := Open(root)
	require.NoError(t, err)
	d, err := s.AsDir()
	require.NoError(t, err)
	assert.Equal(t, root, d.Path())

	sub, err := d.Dir(ctx, "embeddings")
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(root, "embeddings"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	f, err := sub.File("custom_catalog.yaml")
	require.NoError(t, err)
	require.NoError(t, f.Write(ctx, []byte("first")))
	require.NoError(t, f.Write(ctx, []byte("second")))

	data, err := f.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, filepath.Join(root, "embeddings", "custom_catalog.yaml"), f.Path())
}

func TestNestedFileCreatesParents(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "does", "not", "exist")

	s, err := Open(root)
	require.NoError(t, err)
	d, err := s.AsDir()
	require.NoError(t, err)

	f, err := d.File("a/b/c.txt")
	require.NoError(t, err)
	require.NoError(t, f.Write(ctx, []byte("x")))

	_, err = os.Stat(filepath.Join(root, "a", "b", "c.txt"))
	require.NoError(t, err)
}

func TestAsFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.AsDir()
	require.Error(t, err)

	f, err := s.AsFile()
	require.NoError(t, err)
	data, err := f.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	d, err := s.AsDir()
	require.NoError(t, err)
	f, err := d.File("sentences.csv")
	require.NoError(t, err)

	require.NoError(t, s.Close())

	err = f.Write(ctx, []byte("x"))
	assert.ErrorIs(t, err, store.ErrClosed)
	_, err = d.Dir(ctx, "embeddings")
	assert.ErrorIs(t, err, store.ErrClosed)
	_, err = s.AsDir()
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestWriteFailureCarriesPath(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), []byte("x"), 0o644))

	s, err := Open(root)
	require.NoError(t, err)
	d, err := s.AsDir()
	require.NoError(t, err)

	f, err := d.File("blocker/sentences.csv")
	require.NoError(t, err)
	err = f.Write(ctx, []byte("x"))
	require.Error(t, err)

	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Contains(t, storeErr.Path, "blocker")
}

func TestInvalidNames(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	d, err := s.AsDir()
	require.NoError(t, err)

	_, err = d.File("../escape.csv")
	assert.Error(t, err)
	_, err = d.Dir(context.Background(), "/abs")
	assert.Error(t, err)
}
