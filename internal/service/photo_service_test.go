package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/service"
	"github.com/polibest/kp-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testMaxUploadSize = 5 * 1024 * 1024

func newPhotoService(t *testing.T, db *gorm.DB) *service.PhotoService {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return service.NewPhotoService(
		repository.NewPhotoRepository(db),
		store,
		testMaxUploadSize,
		zap.NewNop(),
	)
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngUpload(t *testing.T, name string, width, height int) service.UploadFile {
	data := encodeTestPNG(t, width, height)
	return service.UploadFile{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        bytes.NewReader(data),
	}
}

func TestPhotoService_Upload(t *testing.T) {
	db := setupTestDB(t)
	svc := newPhotoService(t, db)
	ctx := context.Background()

	t.Run("accepts a valid image", func(t *testing.T) {
		result, err := svc.Upload(ctx, []service.UploadFile{pngUpload(t, "floor.png", 400, 300)})
		require.NoError(t, err)
		require.Len(t, result.Uploaded, 1)
		assert.Empty(t, result.Rejected)

		photo := result.Uploaded[0]
		assert.Equal(t, "floor.png", photo.Name)
		assert.Equal(t, "image/png", photo.ContentType)
		assert.Contains(t, photo.URL, photo.ID.String())
		assert.Contains(t, photo.ThumbnailURL, "/thumbnail")
	})

	t.Run("a rejected file does not abort the batch", func(t *testing.T) {
		files := []service.UploadFile{
			{
				Name:        "notes.txt",
				ContentType: "text/plain",
				Size:        10,
				Data:        bytes.NewReader([]byte("not image")),
			},
			pngUpload(t, "ok.png", 100, 100),
			{
				Name:        "huge.png",
				ContentType: "image/png",
				Size:        testMaxUploadSize + 1,
				Data:        bytes.NewReader(nil),
			},
			{
				Name:        "broken.png",
				ContentType: "image/png",
				Size:        12,
				Data:        bytes.NewReader([]byte("garbage data")),
			},
		}

		result, err := svc.Upload(ctx, files)
		require.NoError(t, err)
		require.Len(t, result.Uploaded, 1)
		assert.Equal(t, "ok.png", result.Uploaded[0].Name)

		require.Len(t, result.Rejected, 3)
		assert.Equal(t, "notes.txt", result.Rejected[0].Name)
		assert.Equal(t, "not an image", result.Rejected[0].Reason)
		assert.Equal(t, "huge.png", result.Rejected[1].Name)
		assert.Contains(t, result.Rejected[1].Reason, "limit")
		assert.Equal(t, "broken.png", result.Rejected[2].Name)
		assert.Equal(t, "unsupported image format", result.Rejected[2].Reason)
	})
}

func TestPhotoService_DownloadAndThumbnail(t *testing.T) {
	db := setupTestDB(t)
	svc := newPhotoService(t, db)
	ctx := context.Background()

	original := encodeTestPNG(t, 640, 480)
	result, err := svc.Upload(ctx, []service.UploadFile{{
		Name:        "hall.png",
		ContentType: "image/png",
		Size:        int64(len(original)),
		Data:        bytes.NewReader(original),
	}})
	require.NoError(t, err)
	require.Len(t, result.Uploaded, 1)
	id := result.Uploaded[0].ID

	t.Run("download returns the original bytes", func(t *testing.T) {
		reader, contentType, err := svc.Download(ctx, id)
		require.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, "image/png", contentType)
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, original, data)
	})

	t.Run("thumbnail is a bounded jpeg", func(t *testing.T) {
		reader, contentType, err := svc.Thumbnail(ctx, id)
		require.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, "image/jpeg", contentType)
		cfg, err := jpeg.DecodeConfig(reader)
		require.NoError(t, err)
		assert.LessOrEqual(t, cfg.Width, service.ThumbnailMaxDimension)
		assert.LessOrEqual(t, cfg.Height, service.ThumbnailMaxDimension)
	})
}

func TestPhotoService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newPhotoService(t, db)
	ctx := context.Background()

	result, err := svc.Upload(ctx, []service.UploadFile{pngUpload(t, "old.png", 50, 50)})
	require.NoError(t, err)
	require.Len(t, result.Uploaded, 1)
	id := result.Uploaded[0].ID

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, service.ErrPhotoNotFound)

	_, _, err = svc.Download(ctx, id)
	assert.ErrorIs(t, err, service.ErrPhotoNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), service.ErrPhotoNotFound)
}

// A proposal keeps its photo ids after the photo is deleted; the
// composed document just skips the dangling reference.
func TestPhotoService_DeleteLeavesProposalReferences(t *testing.T) {
	db := setupTestDB(t)
	photoSvc := newPhotoService(t, db)
	proposalSvc := newProposalService(db)
	ctx := context.Background()

	result, err := photoSvc.Upload(ctx, []service.UploadFile{
		pngUpload(t, "keep.png", 50, 50),
		pngUpload(t, "drop.png", 50, 50),
	})
	require.NoError(t, err)
	require.Len(t, result.Uploaded, 2)
	keepID := result.Uploaded[0].ID
	dropID := result.Uploaded[1].ID

	created, err := proposalSvc.Create(ctx, &domain.CreateProposalRequest{})
	require.NoError(t, err)
	_, err = proposalSvc.Update(ctx, created.ID, &domain.UpdateProposalRequest{
		VATEnabled: true,
		Rooms: []domain.RoomInput{
			{
				Name: "Цех",
				Area: 50,
				Materials: []domain.MaterialInput{
					{Name: domain.MaterialNameEmal, Consumption: 0.30, Layers: 3, PricePerKg: 1512},
				},
			},
		},
		PhotoIDs: []uuid.UUID{keepID, dropID},
	})
	require.NoError(t, err)

	require.NoError(t, photoSvc.Delete(ctx, dropID))

	proposal, err := proposalSvc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, proposal.PhotoIDs, 2)

	layout, err := proposalSvc.Preview(ctx, created.ID, nil)
	require.NoError(t, err)
	require.Len(t, layout.Photos, 1)
	assert.Equal(t, keepID, layout.Photos[0].ID)
}
