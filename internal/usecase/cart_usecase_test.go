package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pearlify/internal/domain/model"
	"pearlify/internal/infra/kv"
	infrarepo "pearlify/internal/infra/repository"
	"pearlify/internal/logging"
	"pearlify/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCart() *usecase.CartUsecase {
	carts := infrarepo.NewCartKVRepository(kv.NewMemoryStore(), logging.Discard("cart"))
	clock := &fixedClock{t: time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC)}
	return usecase.NewCartUsecase(carts, newProducts(), clock)
}

func TestCart_Add_MergesSameConfig(t *testing.T) {
	ctx := context.Background()
	uc := newCart()
	in := usecase.QuoteInput{ProductID: "pearly-milk-tea", Size: "Large", Addons: []string{"Pearl"}}

	_, err := uc.Add(ctx, "sid", in)
	require.NoError(t, err)
	v, err := uc.Add(ctx, "sid", in)
	require.NoError(t, err)

	require.Len(t, v.Items, 1)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, 150.0, v.Items[0].UnitPrice)
	assert.Equal(t, 300.0, v.Items[0].LineTotal)
	assert.Equal(t, 300.0, v.Total)
	assert.Equal(t, 2, v.ItemCount)

	v, err = uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "pearly-milk-tea"})
	require.NoError(t, err)
	assert.Len(t, v.Items, 2)
	assert.Equal(t, 410.0, v.Total)

	// carts are per session
	assert.Empty(t, uc.Get(ctx, "other").Items)
}

func TestCart_Add_Limits(t *testing.T) {
	ctx := context.Background()
	uc := newCart()
	in := usecase.QuoteInput{ProductID: "thai-milk-tea"}

	for i := 0; i < model.MaxQuantityPerLine; i++ {
		_, err := uc.Add(ctx, "sid", in)
		require.NoError(t, err)
	}
	_, err := uc.Add(ctx, "sid", in)
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assertErrContains(t, err, "Maximum quantity (10)")

	for i := 0; i < 10; i++ {
		_, err := uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "matcha-milk-tea"})
		require.NoError(t, err)
	}
	v := uc.Get(ctx, "sid")
	assert.True(t, v.AtLimit)

	_, err = uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "okinawa-milk-tea"})
	assertErrContains(t, err, "only order 20 items")
}

func TestCart_Adjust(t *testing.T) {
	ctx := context.Background()
	uc := newCart()
	_, err := uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "oreo-milk-tea"})
	require.NoError(t, err)

	v, err := uc.Decrease(ctx, "sid", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Items[0].Quantity)

	v, err = uc.Increase(ctx, "sid", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, 260.0, v.Total)

	v, err = uc.Decrease(ctx, "sid", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Items[0].Quantity)

	_, err = uc.Increase(ctx, "sid", 3)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = uc.Adjust(ctx, "sid", 0, 5)
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestCart_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	uc := newCart()
	_, err := uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "oreo-milk-tea"})
	require.NoError(t, err)
	_, err = uc.Add(ctx, "sid", usecase.QuoteInput{ProductID: "mango-green-tea"})
	require.NoError(t, err)

	v, err := uc.Remove(ctx, "sid", 0)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "mango-green-tea", v.Items[0].ProductID)

	_, err = uc.Remove(ctx, "sid", -1)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	require.NoError(t, uc.Clear(ctx, "sid"))
	assert.Empty(t, uc.Get(ctx, "sid").Items)
}

func TestCart_SaveFailure(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("Load", mock.Anything, "sid").Return([]model.CartLine{})
	carts.On("Save", mock.Anything, "sid", mock.Anything).Return(errors.New("quota"))
	uc := usecase.NewCartUsecase(carts, newProducts(), &fixedClock{t: time.Now()})

	_, err := uc.Add(context.Background(), "sid", usecase.QuoteInput{ProductID: "oreo-milk-tea"})
	assert.ErrorIs(t, err, usecase.ErrStorage)
}
