package services

import (
	"context"
	"testing"
	"time"

	"github.com/emrekaraca/family-portal/internal/authz"
	"github.com/emrekaraca/family-portal/internal/dto"
	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoInput() *dto.UploadPhotoInput {
	return &dto.UploadPhotoInput{
		Name:     "Beach Day",
		Caption:  "Summer in Bodrum",
		Tags:     "summer, beach",
		FileName: "beach.jpg",
		MimeType: "image/jpeg",
		Size:     1024,
		Data:     []byte("jpegbytes"),
	}
}

func TestPhotoUpload(t *testing.T) {
	db := newTestDB(t)
	blobs := &fakeBlobStore{}
	svc := NewPhotoService(db, blobs)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	photo, err := svc.Upload(context.Background(), user, photoInput())
	require.NoError(t, err)

	assert.Equal(t, "Beach Day", photo.Name)
	assert.NotEmpty(t, photo.ImageURL)
	assert.NotEmpty(t, photo.ThumbnailURL)
	assert.Equal(t, family.ID, photo.FamilyID)
	assert.Nil(t, photo.AlbumID)
	assert.Equal(t, []string{"summer", "beach"}, photo.TagList())
	assert.Equal(t, 1, blobs.photoUploads)
}

func TestPhotoUploadDefaultsNameToFileName(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db, &fakeBlobStore{})

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	in := photoInput()
	in.Name = "  "
	photo, err := svc.Upload(context.Background(), user, in)
	require.NoError(t, err)
	assert.Equal(t, "beach.jpg", photo.Name)
}

func TestPhotoUploadValidation(t *testing.T) {
	db := newTestDB(t)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	cases := []struct {
		name   string
		mutate func(*dto.UploadPhotoInput)
	}{
		{"empty file", func(in *dto.UploadPhotoInput) { in.Data = nil }},
		{"oversized", func(in *dto.UploadPhotoInput) { in.Size = maxPhotoSize + 1 }},
		{"non-image mime type", func(in *dto.UploadPhotoInput) { in.MimeType = "application/pdf" }},
		{"malformed album id", func(in *dto.UploadPhotoInput) { in.AlbumID = "not-a-uuid" }},
		{"bad dateTaken", func(in *dto.UploadPhotoInput) { in.DateTaken = "yesterday" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := &fakeBlobStore{}
			svc := NewPhotoService(db, blobs)
			in := photoInput()
			tc.mutate(in)

			_, err := svc.Upload(context.Background(), user, in)
			assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
			assert.Zero(t, blobs.photoUploads, "nothing may reach the blob store")
		})
	}
}

func TestPhotoUploadDateTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db, &fakeBlobStore{})

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	in := photoInput()
	in.DateTaken = "2025-07-14"
	photo, err := svc.Upload(context.Background(), user, in)
	require.NoError(t, err)
	require.NotNil(t, photo.DateTaken)
	assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), photo.DateTaken.UTC())
}

func TestPhotoUploadIntoAlbum(t *testing.T) {
	db := newTestDB(t)
	blobs := &fakeBlobStore{}
	svc := NewPhotoService(db, blobs)
	albums := NewAlbumService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	album, err := albums.Create(user, &dto.CreateAlbumRequest{Name: "Summer 2025"})
	require.NoError(t, err)

	t.Run("photo links to the album", func(t *testing.T) {
		in := photoInput()
		in.AlbumID = album.ID.String()
		photo, err := svc.Upload(context.Background(), user, in)
		require.NoError(t, err)
		require.NotNil(t, photo.AlbumID)
		assert.Equal(t, album.ID, *photo.AlbumID)
	})

	t.Run("unknown album rejected before upload", func(t *testing.T) {
		fresh := &fakeBlobStore{}
		svc := NewPhotoService(db, fresh)
		in := photoInput()
		in.AlbumID = uuid.NewString()

		_, err := svc.Upload(context.Background(), user, in)
		assert.ErrorIs(t, err, ErrAlbumNotFound)
		assert.Zero(t, fresh.photoUploads)
	})

	t.Run("foreign album rejected before upload", func(t *testing.T) {
		other := seedFamily(t, db, "Demir Family", "DEMIR123")
		stranger := seedUser(t, db, &other.ID, models.RoleMember, "Ali Demir", "ali@example.com", "ali")

		fresh := &fakeBlobStore{}
		svc := NewPhotoService(db, fresh)
		in := photoInput()
		in.AlbumID = album.ID.String()

		_, err := svc.Upload(context.Background(), stranger, in)
		assert.ErrorIs(t, err, authz.ErrWrongFamily)
		assert.Zero(t, fresh.photoUploads)
	})
}

func TestPhotoList(t *testing.T) {
	db := newTestDB(t)
	svc := NewPhotoService(db, &fakeBlobStore{})
	albums := NewAlbumService(db)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	album, err := albums.Create(user, &dto.CreateAlbumRequest{Name: "Summer 2025"})
	require.NoError(t, err)

	upload := func(name, albumID, tags string) {
		in := photoInput()
		in.Name = name
		in.AlbumID = albumID
		in.Tags = tags
		_, err := svc.Upload(context.Background(), user, in)
		require.NoError(t, err)
	}
	upload("Beach Day", album.ID.String(), "beach")
	upload("Birthday Cake", "", "party, cake")

	t.Run("all photos", func(t *testing.T) {
		photos, err := svc.List(user, "", "")
		require.NoError(t, err)
		assert.Len(t, photos, 2)
	})

	t.Run("album filter", func(t *testing.T) {
		photos, err := svc.List(user, album.ID.String(), "")
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "Beach Day", photos[0].Name)
	})

	t.Run("search by tag", func(t *testing.T) {
		photos, err := svc.List(user, "", "cake")
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "Birthday Cake", photos[0].Name)
	})

	t.Run("malformed album id", func(t *testing.T) {
		_, err := svc.List(user, "not-a-uuid", "")
		assert.True(t, IsValidation(err))
	})
}

func TestPhotoDelete(t *testing.T) {
	db := newTestDB(t)
	blobs := &fakeBlobStore{}
	svc := NewPhotoService(db, blobs)

	family := seedFamily(t, db, "Kaya Family", "KAYA1234")
	user := seedUser(t, db, &family.ID, models.RoleMember, "Mehmet Kaya", "mehmet@example.com", "mehmet")

	other := seedFamily(t, db, "Demir Family", "DEMIR123")
	stranger := seedUser(t, db, &other.ID, models.RoleMember, "Ali Demir", "ali@example.com", "ali")

	photo, err := svc.Upload(context.Background(), user, photoInput())
	require.NoError(t, err)

	t.Run("other family is denied", func(t *testing.T) {
		err := svc.Delete(context.Background(), stranger, photo.ID)
		assert.ErrorIs(t, err, authz.ErrWrongFamily)
	})

	t.Run("delete removes image and thumbnail", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), user, photo.ID))
		assert.Contains(t, blobs.deletes, photo.ImageURL)
		assert.Contains(t, blobs.deletes, photo.ThumbnailURL)

		_, err := svc.Get(user, photo.ID)
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), user, uuid.New()), ErrPhotoNotFound)
	})
}
