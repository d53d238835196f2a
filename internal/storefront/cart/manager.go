// Package cart persists the customer's cart through a key-value store and
// notifies subscribers when it changes.
package cart

import (
	"context"
	"log/slog"
	"sync"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/kvstore"
)

// Listener receives a copy of the items after every change.
type Listener func(items []domcart.LineItem)

type Manager struct {
	mu        sync.Mutex
	cart      *domcart.Cart
	store     kvstore.Store
	logger    *slog.Logger
	listeners map[int]Listener
	nextID    int
}

// NewManager rehydrates the cart from the store. Anything missing or
// unreadable yields an empty cart.
func NewManager(ctx context.Context, store kvstore.Store, logger *slog.Logger) *Manager {
	m := &Manager{
		cart:      domcart.New(),
		store:     store,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
	m.rehydrate(ctx)
	return m
}

func (m *Manager) rehydrate(ctx context.Context) {
	data, err := m.store.Get(ctx, kvstore.KeyCart)
	if err != nil {
		if !errs.Is(err, kvstore.ErrNotFound) {
			m.logger.Warn("failed to load stored cart, starting empty", "error", err)
		}
		return
	}
	c, err := domcart.Decode(data)
	if err != nil {
		m.logger.Warn("discarding corrupted stored cart", "error", err)
		return
	}
	m.cart = c
}

// AddItem merges quantity into the product's line or appends a snapshot line.
// A quantity below 1 is ignored.
func (m *Manager) AddItem(ctx context.Context, productID string, snap domcart.Snapshot, quantity int) error {
	return m.mutate(ctx, func(c *domcart.Cart) bool {
		return c.Add(productID, snap, quantity)
	})
}

// UpdateQuantity sets the line's quantity; below 1 removes it.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return m.mutate(ctx, func(c *domcart.Cart) bool {
		return c.SetQuantity(productID, quantity)
	})
}

func (m *Manager) RemoveItem(ctx context.Context, productID string) error {
	return m.mutate(ctx, func(c *domcart.Cart) bool {
		return c.Remove(productID)
	})
}

// Clear empties the cart and always overwrites the stored value.
func (m *Manager) Clear(ctx context.Context) error {
	return m.mutate(ctx, func(c *domcart.Cart) bool {
		c.Clear()
		return true
	})
}

func (m *Manager) Items() []domcart.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Items()
}

func (m *Manager) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.TotalCount()
}

func (m *Manager) Subtotal() money.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Subtotal()
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// mutate applies fn, persists the whole cart and notifies listeners outside
// the lock. The in-memory change is kept when persisting fails.
func (m *Manager) mutate(ctx context.Context, fn func(c *domcart.Cart) bool) error {
	m.mu.Lock()
	if !fn(m.cart) {
		m.mu.Unlock()
		return nil
	}
	items := m.cart.Items()
	data, encErr := domcart.Encode(m.cart)
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}

	var err error
	if encErr != nil {
		err = errs.Wrap(encErr, "encode cart")
	} else if setErr := m.store.Set(ctx, kvstore.KeyCart, data); setErr != nil {
		err = errs.Wrap(setErr, "persist cart")
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("cart change not persisted", "error", err)
	}
	for _, l := range listeners {
		l(append([]domcart.LineItem(nil), items...))
	}
	return err
}
