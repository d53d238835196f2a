// Package session assembles the storefront core for one customer: cart,
// checkout, tracking and language preference over a single store.
package session

import (
	"context"
	"log/slog"
	"strings"

	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/cart"
	"zaylux-store/internal/storefront/checkout"
	"zaylux-store/internal/storefront/kvstore"
	"zaylux-store/internal/storefront/preferences"
	"zaylux-store/internal/storefront/remote"
	"zaylux-store/internal/storefront/tracking"
)

var (
	ErrOutOfStock = errs.New("product is out of stock")
	ErrInvalidQty = errs.New("quantity must be at least 1")
	ErrNoPhone    = errs.New("phone is required")
)

type Session struct {
	Cart     *cart.Manager
	Checkout *checkout.Checkout
	Tracker  *tracking.Tracker
	Prefs    *preferences.Preferences
	Catalog  *remote.Client

	store  kvstore.Store
	logger *slog.Logger
}

func Open(ctx context.Context, cfg config.StorefrontConfig, logger *slog.Logger) (*Session, error) {
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, errs.Wrap(err, "open storefront store")
	}
	return New(ctx, store, remote.NewClient(cfg, logger), logger), nil
}

func New(ctx context.Context, store kvstore.Store, client *remote.Client, logger *slog.Logger) *Session {
	manager := cart.NewManager(ctx, store, logger)
	return &Session{
		Cart:     manager,
		Checkout: checkout.New(manager, checkout.NewCouponValidator(client), client, logger),
		Tracker:  tracking.NewTracker(client),
		Prefs:    preferences.Load(ctx, store, logger),
		Catalog:  client,
		store:    store,
		logger:   logger,
	}
}

// AddProduct fetches the product and snapshots it into the cart.
func (s *Session) AddProduct(ctx context.Context, productID string, quantity int) (*remote.Product, error) {
	if quantity < 1 {
		return nil, ErrInvalidQty
	}
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, errs.Wrap(err, "load product")
	}
	if !p.InStock() {
		return p, ErrOutOfStock
	}
	if err := s.Cart.AddItem(ctx, p.ID, p.CartSnapshot(), quantity); err != nil {
		return p, err
	}
	return p, nil
}

// NotifyWhenBack registers phone for a back-in-stock message on a sold out
// product.
func (s *Session) NotifyWhenBack(ctx context.Context, productID, phone, name string) (*remote.RestockRequest, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrNoPhone
	}
	return s.Catalog.RequestRestock(ctx, productID, phone, strings.TrimSpace(name))
}

func (s *Session) Close() error {
	return s.store.Close()
}
