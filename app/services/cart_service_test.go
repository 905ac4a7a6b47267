package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddTwiceMergesQuantity(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewCartService(db, repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	user := testutil.CreateUser(t, db, "Nila", "nila@example.com")
	p := testutil.CreateProduct(t, db, "Serum", 499, 20, nil)

	_, err := svc.Add(ctx, user.ID, p.ID, 1)
	require.NoError(t, err)
	item, err := svc.Add(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "Serum", item.Name)

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartMutationsAreOwnerScoped(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewCartService(db, repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com")
	other := testutil.CreateUser(t, db, "Other", "other@example.com")
	p := testutil.CreateProduct(t, db, "Toner", 299, 20, nil)

	item, err := svc.Add(ctx, owner.ID, p.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, other.ID, item.ID, 5)
	assertKind(t, err, apperr.KindNotFound, "Cart item not found")
	_, err = svc.SetSelected(ctx, other.ID, item.ID, false)
	assertKind(t, err, apperr.KindNotFound, "Cart item not found")
	assertKind(t, svc.Remove(ctx, other.ID, item.ID), apperr.KindNotFound, "Cart item not found")

	updated, err := svc.UpdateQuantity(ctx, owner.ID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.UpdateQuantity(ctx, owner.ID, item.ID, 0)
	assertKind(t, err, apperr.KindValidation, "Quantity must be at least 1")

	_, err = svc.Add(ctx, owner.ID, "missing", 1)
	assertKind(t, err, apperr.KindNotFound, "Product not found")

	require.NoError(t, svc.Clear(ctx, owner.ID))
	items, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepeatedIdenticalUpdatesSucceed(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewCartService(db, repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com")
	p := testutil.CreateProduct(t, db, "Toner", 299, 20, nil)

	item, err := svc.Add(ctx, owner.ID, p.ID, 2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		updated, err := svc.UpdateQuantity(ctx, owner.ID, item.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Quantity)

		selected, err := svc.SetSelected(ctx, owner.ID, item.ID, true)
		require.NoError(t, err)
		assert.True(t, selected.Selected)
	}
}

func TestWishlist(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewWishlistService(repositories.NewWishlistRepository(db), repositories.NewProductRepository(db))
	user := testutil.CreateUser(t, db, "Ira", "ira@example.com")
	p := testutil.CreateProduct(t, db, "Balm", 199, 20, nil)

	_, err := svc.Add(ctx, user.ID, p.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, user.ID, p.ID)
	assertKind(t, err, apperr.KindConflict, "Item already in wishlist")

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Balm", items[0].Product.Name)

	require.NoError(t, svc.Remove(ctx, user.ID, p.ID))
	assertKind(t, svc.Remove(ctx, user.ID, p.ID), apperr.KindNotFound, "Item not found in wishlist")
}
