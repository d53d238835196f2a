// Package cart models the customer's in-progress selection. It is a plain
// value with no I/O; persistence and change notification live in the
// storefront cart manager.
package cart

import (
	"zaylux-store/internal/domain/money"
)

// Snapshot is the product data captured when a line is first added.
// Later catalog price changes do not touch it.
type Snapshot struct {
	NameEN string
	NameAR string
	Price  money.Money
	Image  string
}

type LineItem struct {
	ProductID string
	Quantity  int
	Snapshot
}

func (l LineItem) LineTotal() money.Money {
	return l.Price.Mul(l.Quantity)
}

// Cart keeps lines in insertion order with at most one line per product.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges into an existing line or appends a new one. A quantity below 1
// is ignored. Reports whether the cart changed.
func (c *Cart) Add(productID string, snap Snapshot, quantity int) bool {
	if quantity < 1 || productID == "" {
		return false
	}
	if i := c.indexOf(productID); i >= 0 {
		c.items[i].Quantity += quantity
		return true
	}
	c.items = append(c.items, LineItem{ProductID: productID, Quantity: quantity, Snapshot: snap})
	return true
}

// SetQuantity overwrites a line's quantity; below 1 removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	if quantity < 1 {
		return c.Remove(productID)
	}
	i := c.indexOf(productID)
	if i < 0 || c.items[i].Quantity == quantity {
		return false
	}
	c.items[i].Quantity = quantity
	return true
}

func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) TotalCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Subtotal() money.Money {
	total := money.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}
