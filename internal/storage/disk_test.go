package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err, "base dir is created on demand")

	path, err := store.Save(context.Background(), "abc.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "uploads", "abc.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 0x50}, data)
}

func TestDiskStoreSaveCustomDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "attachments"))
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "abc.png", []byte{0x89})
	require.NoError(t, err)

	// The stored path always points at the written file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89}, data)
}
