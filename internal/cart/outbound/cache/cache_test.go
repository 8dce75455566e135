package cache

import (
	"context"
	"testing"

	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/testinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	client := testinfra.Redis(t)
	c := New(client, instrument.NewNoop())
	ctx := context.Background()

	t.Run("missing cart is empty", func(t *testing.T) {
		cart, err := c.CartFor(ctx, "nobody")
		require.NoError(t, err)
		assert.Equal(t, "nobody", cart.CustomerID)
		assert.Zero(t, cart.Len())
	})

	t.Run("round trip keeps order and duplicates", func(t *testing.T) {
		require.NoError(t, c.SaveCart(ctx, entity.NewCart("1", "101", "102", "101")))

		cart, err := c.CartFor(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "102", "101"}, cart.GetAll())
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, c.SaveCart(ctx, entity.NewCart("2", "101", "102")))
		require.NoError(t, c.SaveCart(ctx, entity.NewCart("2", "103")))

		cart, err := c.CartFor(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, []string{"103"}, cart.GetAll())
	})

	t.Run("saving an empty cart clears it", func(t *testing.T) {
		require.NoError(t, c.SaveCart(ctx, entity.NewCart("3", "101")))
		require.NoError(t, c.SaveCart(ctx, entity.NewCart("3")))

		exists, err := client.Exists(ctx, "cart:3").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}
