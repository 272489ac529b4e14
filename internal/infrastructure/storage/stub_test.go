package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBlobStore_UploadAndDownload(t *testing.T) {
	store := NewInMemoryBlobStore()
	ctx := context.Background()

	url, err := store.Upload(ctx, "jobs/1/logo_dark.png", []byte("dark-logo"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/jobs/1/logo_dark.png", url)
	assert.Equal(t, 1, store.Len())

	data, err := store.Download(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("dark-logo"), data)
}

func TestInMemoryBlobStore_DownloadUnknownURL(t *testing.T) {
	store := NewInMemoryBlobStore()

	_, err := store.Download(context.Background(), "https://storage.example.com/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object not found")
}

func TestInMemoryBlobStore_UploadRequiresPath(t *testing.T) {
	store := NewInMemoryBlobStore()

	_, err := store.Upload(context.Background(), "", []byte("x"), "image/png")
	require.Error(t, err)
}

func TestInMemoryBlobStore_ReturnsCopies(t *testing.T) {
	store := NewInMemoryBlobStore()
	ctx := context.Background()

	original := []byte("abc")
	url, err := store.Upload(ctx, "file.bin", original, "application/octet-stream")
	require.NoError(t, err)

	original[0] = 'z'

	data, err := store.Download(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data[1] = 'z'

	again, err := store.Download(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
