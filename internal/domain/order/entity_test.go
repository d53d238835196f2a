//go:build unit

package order_test

import (
	"testing"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func item(price string, qty int) order.Item {
	return order.Item{
		ProductID: uuid.New(),
		Name:      catalog.LocalizedText{EN: "Item", AR: "Item"},
		UnitPrice: money.MustParse(price),
		Quantity:  qty,
	}
}

func totals(sub, disc, total string) order.Totals {
	return order.Totals{Subtotal: money.MustParse(sub), Discount: money.MustParse(disc), Total: money.MustParse(total)}
}

func customer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Sara", "0551234567", "Riyadh", "Olaya St")
	require.NoError(t, err)
	return c
}

func TestPlace(t *testing.T) {
	t.Run("creates a pending cash on delivery order", func(t *testing.T) {
		o, err := order.Place("ZAY-100001", order.PlaceParams{
			Customer: customer(t),
			Items:    []order.Item{item("100", 2), item("50.50", 1)},
			Totals:   totals("250.50", "25.05", "225.45"),
		}, now)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentCashOnDelivery, o.PaymentMethod())
		assert.Equal(t, now, o.CreatedAt())
		assert.Len(t, o.Items(), 2)
	})

	tests := []struct {
		name    string
		items   []order.Item
		totals  order.Totals
		wantErr error
	}{
		{name: "no items", items: nil, totals: totals("0", "0", "0"), wantErr: order.ErrNoItems},
		{name: "zero quantity", items: []order.Item{item("10", 0)}, totals: totals("0", "0", "0"), wantErr: order.ErrInvalidQuantity},
		{name: "negative price", items: []order.Item{item("-1", 1)}, totals: totals("-1", "0", "0"), wantErr: order.ErrInvalidItemPrice},
		{name: "subtotal mismatch", items: []order.Item{item("10", 2)}, totals: totals("25", "0", "25"), wantErr: order.ErrSubtotalMismatch},
		{name: "discount above subtotal", items: []order.Item{item("10", 1)}, totals: totals("10", "11", "0"), wantErr: order.ErrInvalidDiscount},
		{name: "negative discount", items: []order.Item{item("10", 1)}, totals: totals("10", "-1", "11"), wantErr: order.ErrInvalidDiscount},
		{name: "total mismatch", items: []order.Item{item("10", 1)}, totals: totals("10", "2", "9"), wantErr: order.ErrTotalMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := order.Place("ZAY-100001", order.PlaceParams{
				Customer: customer(t),
				Items:    tt.items,
				Totals:   tt.totals,
			}, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("duplicate product lines", func(t *testing.T) {
		it := item("10", 1)
		_, err := order.Place("ZAY-100001", order.PlaceParams{
			Customer: customer(t),
			Items:    []order.Item{it, it},
			Totals:   totals("20", "0", "20"),
		}, now)
		assert.ErrorIs(t, err, order.ErrDuplicateItem)
	})
}

func TestNewCustomer(t *testing.T) {
	_, err := order.NewCustomer("  ", "055", "", "street")
	var missing *order.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"customer_name", "city"}, missing.Fields)
}

func TestMatchesTracking(t *testing.T) {
	o, err := order.Place("ZAY-100042", order.PlaceParams{
		Customer: customer(t),
		Items:    []order.Item{item("10", 1)},
		Totals:   totals("10", "0", "10"),
	}, now)
	require.NoError(t, err)

	assert.True(t, o.MatchesTracking(" ZAY-100042 ", "0551234567 "))
	assert.False(t, o.MatchesTracking("ZAY-100042", "0550000000"))
	assert.False(t, o.MatchesTracking("ZAY-100043", "0551234567"))
	assert.False(t, o.MatchesTracking("zay-100042", "0551234567"))
}

func TestChangeStatus(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("updates status and timestamp", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed, order.StrictPolicy{}, later))
		assert.Equal(t, order.StatusConfirmed, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("same status keeps timestamp", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusPending, order.StrictPolicy{}, later))
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("rejected transition leaves the order alone", func(t *testing.T) {
		o := pendingOrder(t)
		err := o.ChangeStatus(order.StatusDelivered, order.StrictPolicy{}, later)
		assert.ErrorIs(t, err, order.ErrTransitionNotAllowed)
		assert.Equal(t, order.StatusPending, o.Status())
	})
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.Place("ZAY-100001", order.PlaceParams{
		Customer: customer(t),
		Items:    []order.Item{item("10", 1)},
		Totals:   totals("10", "0", "10"),
	}, now)
	require.NoError(t, err)
	return o
}
