package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: baseURL})
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	store := newLocal(t, "")
	ctx := context.Background()
	content := []byte("%PDF fake resume")

	require.NoError(t, store.Save(ctx, "123-abc.pdf", bytes.NewReader(content), "application/pdf"))

	fullPath := filepath.Join(store.BasePath(), "123-abc.pdf")
	got, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, "123-abc.pdf"))
	_, err = os.Stat(fullPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_SaveCreatesSubdirectories(t *testing.T) {
	store := newLocal(t, "")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "2026/08/cv.pdf", bytes.NewReader([]byte("x")), "application/pdf"))

	_, err := os.Stat(filepath.Join(store.BasePath(), "2026", "08", "cv.pdf"))
	assert.NoError(t, err)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	store := newLocal(t, "")
	assert.NoError(t, store.Delete(context.Background(), "never-existed.pdf"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()

	store := newLocal(t, "")
	url, err := store.GetURL(ctx, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/cv.pdf", url)

	store = newLocal(t, "https://cdn.example.com/files")
	url, err = store.GetURL(ctx, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/cv.pdf", url)
}
