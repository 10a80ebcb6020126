package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotos_CreateInlinesPayload(t *testing.T) {
	st := openTestStore(t)
	photos := NewPhotos(st)
	ctx := context.Background()

	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	created, err := photos.Create(ctx, NewPhoto{
		Filename:   "housewarming.png",
		Bytes:      raw,
		Caption:    "first night",
		UploadedBy: "Sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "memories", created.Category, "category defaults to memories")
	assert.NotEmpty(t, created.Payload)

	// The payload survives the store round trip byte for byte.
	fetched, err := photos.Get(ctx, created.ID)
	require.NoError(t, err)
	decoded, err := photos.Bytes(fetched)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestPhotos_ToggleLike(t *testing.T) {
	st := openTestStore(t)
	photos := NewPhotos(st)
	ctx := context.Background()

	created, err := photos.Create(ctx, NewPhoto{Filename: "x.jpg", UploadedBy: "Sam"})
	require.NoError(t, err)

	liked, err := photos.ToggleLike(ctx, created.ID, "Alex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex"}, liked.Likes)

	// Same author again: like set returns to original membership.
	unliked, err := photos.ToggleLike(ctx, created.ID, "Alex")
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestPhotos_LikeSetHoldsAuthorAtMostOnce(t *testing.T) {
	st := openTestStore(t)
	photos := NewPhotos(st)
	ctx := context.Background()

	created, err := photos.Create(ctx, NewPhoto{Filename: "x.jpg", UploadedBy: "Sam"})
	require.NoError(t, err)

	_, err = photos.ToggleLike(ctx, created.ID, "Alex")
	require.NoError(t, err)
	_, err = photos.ToggleLike(ctx, created.ID, "Sam")
	require.NoError(t, err)
	_, err = photos.ToggleLike(ctx, created.ID, "Alex")
	require.NoError(t, err)
	after, err := photos.ToggleLike(ctx, created.ID, "Alex")
	require.NoError(t, err)

	count := 0
	for _, like := range after.Likes {
		if like == "Alex" {
			count++
		}
	}
	assert.Equal(t, 1, count, "an author appears at most once in the like set")
}

func TestPhotos_Delete(t *testing.T) {
	st := openTestStore(t)
	photos := NewPhotos(st)
	ctx := context.Background()

	created, err := photos.Create(ctx, NewPhoto{Filename: "x.jpg", UploadedBy: "Sam"})
	require.NoError(t, err)

	require.NoError(t, photos.Delete(ctx, created.ID))

	listed, err := photos.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
