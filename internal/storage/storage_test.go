package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/polibest/kp-api/internal/config"
	"github.com/polibest/kp-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("save and open round-trip", func(t *testing.T) {
		payload := []byte("image bytes")
		size, err := store.Save(ctx, "photos/abc.png", "image/png", bytes.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, int64(len(payload)), size)

		reader, err := store.Open(ctx, "photos/abc.png")
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("save overwrites an existing key", func(t *testing.T) {
		_, err := store.Save(ctx, "photos/dup.png", "image/png", bytes.NewReader([]byte("first")))
		require.NoError(t, err)
		_, err = store.Save(ctx, "photos/dup.png", "image/png", bytes.NewReader([]byte("second")))
		require.NoError(t, err)

		reader, err := store.Open(ctx, "photos/dup.png")
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)
	})

	t.Run("open missing key", func(t *testing.T) {
		_, err := store.Open(ctx, "photos/missing.png")
		assert.Error(t, err)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		_, err := store.Save(ctx, "thumbs/x.jpg", "image/jpeg", bytes.NewReader([]byte("t")))
		require.NoError(t, err)

		require.NoError(t, store.Remove(ctx, "thumbs/x.jpg"))
		require.NoError(t, store.Remove(ctx, "thumbs/x.jpg"))

		_, err = store.Open(ctx, "thumbs/x.jpg")
		assert.Error(t, err)
	})
}

func TestNewStorage(t *testing.T) {
	logger := zap.NewNop()

	t.Run("local mode", func(t *testing.T) {
		store, err := storage.NewStorage(&config.StorageConfig{
			Mode:          "local",
			LocalBasePath: t.TempDir(),
		}, logger)
		require.NoError(t, err)
		assert.IsType(t, &storage.LocalStorage{}, store)
	})

	t.Run("cloud mode requires a connection string", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
		assert.Error(t, err)
	})
}
