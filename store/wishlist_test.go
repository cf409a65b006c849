package store

import (
	"context"
	"testing"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddAndRemove(t *testing.T) {
	env := newTestEnv()
	s := hydrated(t, env, "sess_a")
	product := models.Product{ID: 1, Name: "Mug", Price: 10, Image: "mug.jpg", Stock: 5}

	require.NoError(t, s.AddToWishlist(context.Background(), product))
	assert.True(t, s.IsInWishlist(1))
	assert.Equal(t, 1, s.WishlistCount())

	require.NoError(t, s.RemoveFromWishlist(context.Background(), 1))
	assert.False(t, s.IsInWishlist(1))
	assert.Equal(t, 0, s.WishlistCount())
}

func TestWishlistRejectsDuplicates(t *testing.T) {
	env := newTestEnv()
	s := hydrated(t, env, "sess_a")
	product := models.Product{ID: 1, Name: "Mug", Price: 10, Stock: 5}

	require.NoError(t, s.AddToWishlist(context.Background(), product))
	require.ErrorIs(t, s.AddToWishlist(context.Background(), product), ErrAlreadyInWishlist)
	assert.Equal(t, 1, s.WishlistCount())
}

func TestWishlistSnapshotFields(t *testing.T) {
	env := newTestEnv()
	s := hydrated(t, env, "sess_a")

	require.NoError(t, s.AddToWishlist(context.Background(), models.Product{
		ID: 1, Name: "Mug", Price: 10, SalePrice: 7, OnSale: true,
		Image: "mug.jpg", Category: "kitchen", Stock: 5,
	}))

	items := s.Wishlist()
	require.Len(t, items, 1)
	assert.Equal(t, 7.0, items[0].Price)
	assert.Equal(t, []string{"mug.jpg"}, []string(items[0].Images))
	assert.Equal(t, "kitchen", items[0].Category)
	assert.False(t, items[0].AddedAt.IsZero())
}

func TestRemoveFromWishlistAbsentIsNoOp(t *testing.T) {
	env := newTestEnv()
	s := hydrated(t, env, "sess_a")

	require.NoError(t, s.RemoveFromWishlist(context.Background(), 42))
	assert.Equal(t, 0, s.WishlistCount())
}

func TestWishlistPersists(t *testing.T) {
	env := newTestEnv()
	s := hydrated(t, env, "sess_a")
	require.NoError(t, s.AddToWishlist(context.Background(), models.Product{ID: 1, Name: "Mug", Price: 10}))

	fresh := hydrated(t, env, "sess_a")
	assert.True(t, fresh.IsInWishlist(1))
}
