package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite_LikeUnlikeKeepsCountInStep(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	product := createProduct(t, r, "WOODSLABS-200", 800)
	userID := uuid.New()

	liked, err := r.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, isLiked, err := r.FavoriteStatus(ctx, &userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, isLiked)

	liked, err = r.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, isLiked, err = r.FavoriteStatus(ctx, &userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, isLiked)
}

func TestToggleFavorite_CountNeverGoesNegative(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	product := createProduct(t, r, "WOODSLABS-201", 800)

	// Simulate drift: a favorite row exists but the counter was never bumped.
	userID := uuid.New()
	_, err := r.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)
	require.NoError(t, r.DB.Model(product).Update("favorite_count", 0).Error)

	_, err = r.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)

	count, _, err := r.FavoriteStatus(ctx, nil, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestFavoriteStatus_AnonymousSeesCountOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	product := createProduct(t, r, "WOODSLABS-202", 800)

	userID := uuid.New()
	_, err := r.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)

	count, liked, err := r.FavoriteStatus(ctx, nil, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, liked)
}

func TestListFavorites_OnlyOwnRows(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	product := createProduct(t, r, "WOODSLABS-203", 800)
	me := uuid.New()
	other := uuid.New()

	_, err := r.ToggleFavorite(ctx, me, product.ID)
	require.NoError(t, err)
	_, err = r.ToggleFavorite(ctx, other, product.ID)
	require.NoError(t, err)

	mine, err := r.ListFavorites(ctx, me)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, me, mine[0].UserID)
	assert.Equal(t, product.ID, mine[0].Product.ID)
}
