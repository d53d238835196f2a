//go:build unit

package cart_test

import (
	"context"
	"errors"
	"testing"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/logger"
	"zaylux-store/internal/storefront/cart"
	"zaylux-store/internal/storefront/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails writes while failing is set.
type flakyStore struct {
	*kvstore.MemoryStore
	failing bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failing {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func oud() domcart.Snapshot {
	return domcart.Snapshot{NameEN: "Oud Royal", NameAR: "عود ملكي", Price: money.MustParse("350.00"), Image: "oud.jpg"}
}

func falcon() domcart.Snapshot {
	return domcart.Snapshot{NameEN: "Falcon X", NameAR: "فالكون", Price: money.MustParse("1299.99")}
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	first := cart.NewManager(ctx, store, logger.Discard())
	require.NoError(t, first.AddItem(ctx, "p1", oud(), 2))
	require.NoError(t, first.AddItem(ctx, "p2", falcon(), 1))
	require.NoError(t, first.AddItem(ctx, "p1", oud(), 1))

	second := cart.NewManager(ctx, store, logger.Discard())
	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 4, second.TotalCount())
	assert.True(t, second.Subtotal().Equal(money.MustParse("2349.99")))
}

func TestManager_RehydrateFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	for name, stored := range map[string]string{
		"corrupted json":    `{{{`,
		"negative quantity": `[{"productId":"p1","quantity":-2,"price":1}]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := kvstore.NewMemoryStore()
			require.NoError(t, store.Set(ctx, kvstore.KeyCart, []byte(stored)))

			m := cart.NewManager(ctx, store, logger.Discard())

			assert.Empty(t, m.Items())
			assert.True(t, m.Subtotal().IsZero())
		})
	}

	t.Run("nothing stored", func(t *testing.T) {
		m := cart.NewManager(ctx, kvstore.NewMemoryStore(), logger.Discard())
		assert.Zero(t, m.TotalCount())
	})
}

func TestManager_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(ctx, kvstore.NewMemoryStore(), logger.Discard())
	require.NoError(t, m.AddItem(ctx, "p1", oud(), 1))
	require.NoError(t, m.AddItem(ctx, "p2", falcon(), 1))

	require.NoError(t, m.UpdateQuantity(ctx, "p1", 5))
	assert.Equal(t, 6, m.TotalCount())

	require.NoError(t, m.UpdateQuantity(ctx, "p1", 0))
	require.Len(t, m.Items(), 1)

	require.NoError(t, m.RemoveItem(ctx, "p2"))
	assert.Empty(t, m.Items())
}

func TestManager_ClearOverwritesStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	m := cart.NewManager(ctx, store, logger.Discard())
	require.NoError(t, m.AddItem(ctx, "p1", oud(), 1))

	require.NoError(t, m.Clear(ctx))

	data, err := store.Get(ctx, kvstore.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(ctx, kvstore.NewMemoryStore(), logger.Discard())

	var seen [][]domcart.LineItem
	unsubscribe := m.Subscribe(func(items []domcart.LineItem) {
		seen = append(seen, items)
	})

	require.NoError(t, m.AddItem(ctx, "p1", oud(), 1))
	require.NoError(t, m.AddItem(ctx, "p1", oud(), 0))
	require.NoError(t, m.RemoveItem(ctx, "missing"))
	require.NoError(t, m.UpdateQuantity(ctx, "p1", 3))

	require.Len(t, seen, 2, "no-op changes do not notify")
	assert.Equal(t, 1, seen[0][0].Quantity)
	assert.Equal(t, 3, seen[1][0].Quantity)

	seen[1][0].Quantity = 99
	assert.Equal(t, 3, m.Items()[0].Quantity, "listeners get a copy")

	unsubscribe()
	require.NoError(t, m.Clear(ctx))
	assert.Len(t, seen, 2)
}

func TestManager_PersistFailureKeepsInMemoryChange(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{MemoryStore: kvstore.NewMemoryStore()}
	m := cart.NewManager(ctx, store, logger.Discard())

	notified := 0
	m.Subscribe(func([]domcart.LineItem) { notified++ })

	store.failing = true
	err := m.AddItem(ctx, "p1", oud(), 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist cart")
	assert.Equal(t, 2, m.TotalCount())
	assert.Equal(t, 1, notified)

	_, getErr := store.Get(ctx, kvstore.KeyCart)
	assert.ErrorIs(t, getErr, kvstore.ErrNotFound)
}
