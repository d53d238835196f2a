//go:build unit

package cart_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/money"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(name, price string) cart.Snapshot {
	return cart.Snapshot{NameEN: name, NameAR: name, Price: money.MustParse(price), Image: name + ".jpg"}
}

func TestCartAdd(t *testing.T) {
	t.Run("merges repeated product into one line", func(t *testing.T) {
		c := cart.New()
		c.Add("p1", snap("Oud", "100"), 1)
		c.Add("p1", snap("Oud", "100"), 2)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("keeps the first snapshot when the price changes later", func(t *testing.T) {
		c := cart.New()
		c.Add("p1", snap("Oud", "100"), 1)
		c.Add("p1", snap("Oud", "120"), 1)

		assert.Equal(t, "100.00", c.Items()[0].Price.String())
		assert.Equal(t, "200.00", c.Subtotal().String())
	})

	t.Run("ignores quantities below one", func(t *testing.T) {
		c := cart.New()
		assert.False(t, c.Add("p1", snap("Oud", "100"), 0))
		assert.False(t, c.Add("p1", snap("Oud", "100"), -3))
		assert.True(t, c.IsEmpty())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := cart.New()
		c.Add("b", snap("B", "1"), 1)
		c.Add("a", snap("A", "1"), 1)
		c.Add("c", snap("C", "1"), 1)
		c.Add("a", snap("A", "1"), 1)

		var ids []string
		for _, it := range c.Items() {
			ids = append(ids, it.ProductID)
		}
		assert.Equal(t, []string{"b", "a", "c"}, ids)
	})
}

func TestCartSetQuantity(t *testing.T) {
	c := cart.New()
	c.Add("p1", snap("Oud", "100"), 1)
	c.Add("p2", snap("Watch", "900"), 1)

	assert.True(t, c.SetQuantity("p1", 4))
	assert.Equal(t, 5, c.TotalCount())

	assert.True(t, c.SetQuantity("p2", 0))
	assert.Equal(t, 1, c.Len())

	assert.False(t, c.SetQuantity("missing", 2))
	assert.False(t, c.Remove("missing"))
}

func TestCartTotals(t *testing.T) {
	c := cart.New()
	c.Add("p1", snap("Oud", "199.99"), 3)
	c.Add("p2", snap("Drone", "0.01"), 1)

	assert.Equal(t, 4, c.TotalCount())
	assert.Equal(t, "600.98", c.Subtotal().String())

	c.Clear()
	assert.True(t, c.Subtotal().IsZero())
	assert.Equal(t, 0, c.TotalCount())
}

func TestItemsIsACopy(t *testing.T) {
	c := cart.New()
	c.Add("p1", snap("Oud", "100"), 1)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCodec(t *testing.T) {
	t.Run("round trip keeps order and snapshots", func(t *testing.T) {
		c := cart.New()
		c.Add("p2", snap("Watch", "900"), 1)
		c.Add("p1", snap("Oud", "100.5"), 2)

		data, err := cart.Encode(c)
		require.NoError(t, err)

		decoded, err := cart.Decode(data)
		require.NoError(t, err)
		if diff := cmp.Diff(c.Items(), decoded.Items(), cmp.Comparer(func(a, b money.Money) bool { return a.Equal(b) })); diff != "" {
			t.Errorf("decoded cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("uses the stored field names", func(t *testing.T) {
		c := cart.New()
		c.Add("p1", snap("Oud", "10"), 1)
		data, err := cart.Encode(c)
		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"productId":"p1","quantity":1,"name_en":"Oud","name_ar":"Oud","price":10.00,"image":"Oud.jpg"}]`,
			string(data))
	})

	t.Run("empty cart encodes as an empty array", func(t *testing.T) {
		data, err := cart.Encode(cart.New())
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	corrupted := map[string]string{
		"not json":           `{{{`,
		"object not array":   `{"productId":"p1"}`,
		"zero quantity":      `[{"productId":"p1","quantity":0,"price":1}]`,
		"missing product id": `[{"quantity":1,"price":1}]`,
		"negative price":     `[{"productId":"p1","quantity":1,"price":-1}]`,
		"duplicate product":  `[{"productId":"p1","quantity":1,"price":1},{"productId":"p1","quantity":2,"price":1}]`,
		"price not a number": `[{"productId":"p1","quantity":1,"price":"abc"}]`,
	}
	for name, raw := range corrupted {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := cart.Decode([]byte(raw))
			assert.ErrorIs(t, err, cart.ErrCorrupted)
		})
	}
}

func TestCartInvariantsHoldForRandomSequences(t *testing.T) {
	ids := []string{"p1", "p2", "p3", "p4"}

	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed))
			c := cart.New()
			want := map[string]int{}

			for step := 0; step < 200; step++ {
				id := ids[rng.IntN(len(ids))]
				qty := rng.IntN(7) - 2
				var op string
				switch rng.IntN(3) {
				case 0:
					op = "add"
					c.Add(id, snap(id, "10"), qty)
					if qty >= 1 {
						want[id] += qty
					}
				case 1:
					op = "update"
					c.SetQuantity(id, qty)
					if qty < 1 {
						delete(want, id)
					} else if _, ok := want[id]; ok {
						want[id] = qty
					}
				default:
					op = "remove"
					c.Remove(id)
					delete(want, id)
				}

				seen := map[string]bool{}
				got := map[string]int{}
				for _, it := range c.Items() {
					require.False(t, seen[it.ProductID], "step %d %s %s: duplicate line", step, op, id)
					seen[it.ProductID] = true
					require.GreaterOrEqual(t, it.Quantity, 1, "step %d %s %s", step, op, id)
					got[it.ProductID] = it.Quantity
				}
				require.Equal(t, want, got, "step %d %s %s x%d", step, op, id, qty)
			}
		})
	}
}
