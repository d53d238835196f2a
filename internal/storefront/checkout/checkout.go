// Package checkout turns the storefront cart into a placed order: coupon
// application, totals and a deduplicated submission to the order service.
package checkout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/ptr"
	"zaylux-store/internal/storefront/remote"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Cart interface {
	Items() []domcart.LineItem
	Subtotal() money.Money
	Clear(ctx context.Context) error
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req remote.OrderRequest, idempotencyKey string) (*remote.Placement, error)
}

type CustomerInfo struct {
	Name    string
	Phone   string
	City    string
	Address string
}

func (c CustomerInfo) trimmed() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		City:    strings.TrimSpace(c.City),
		Address: strings.TrimSpace(c.Address),
	}
}

func (c CustomerInfo) missing() []string {
	var fields []string
	for _, f := range []struct{ name, value string }{
		{"customer_name", c.Name},
		{"phone", c.Phone},
		{"city", c.City},
		{"address", c.Address},
	} {
		if f.value == "" {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// attempt ties an idempotency key to the payload it was issued for.
type attempt struct {
	key  string
	hash string
}

type Checkout struct {
	cart      Cart
	validator *CouponValidator
	orders    OrderPlacer
	logger    *slog.Logger
	newKey    func() string

	mu      sync.Mutex
	applied *AppliedCoupon
	attempt attempt
	flight  singleflight.Group
}

func New(cart Cart, validator *CouponValidator, orders OrderPlacer, logger *slog.Logger) *Checkout {
	return &Checkout{
		cart:      cart,
		validator: validator,
		orders:    orders,
		logger:    logger,
		newKey:    uuid.NewString,
	}
}

// ApplyCoupon validates raw against the current subtotal. A valid code
// replaces the applied one and an invalid code drops it. An empty code or a
// failed request leaves the applied coupon alone.
func (c *Checkout) ApplyCoupon(ctx context.Context, raw string) (Validation, error) {
	subtotal := c.cart.Subtotal()
	v, err := c.validator.Validate(ctx, raw, subtotal)
	if err != nil {
		return Validation{}, err
	}
	if v.Code == "" {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v.Valid {
		c.applied = &AppliedCoupon{
			Code:           v.Code,
			Percentage:     v.DiscountPercentage,
			DiscountAmount: v.DiscountAmount,
			Subtotal:       subtotal,
		}
	} else {
		c.applied = nil
	}
	return v, nil
}

func (c *Checkout) RemoveCoupon() {
	c.mu.Lock()
	c.applied = nil
	c.mu.Unlock()
}

func (c *Checkout) Applied() *AppliedCoupon {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.applied == nil {
		return nil
	}
	cp := *c.applied
	return &cp
}

func (c *Checkout) Totals() Totals {
	return ComputeTotals(c.cart.Subtotal(), c.Applied())
}

// Submit places the order. The same idempotency key is sent until the
// payload changes or an order succeeds, and concurrent calls for the same
// attempt share one request.
func (c *Checkout) Submit(ctx context.Context, info CustomerInfo) (*remote.Placement, error) {
	info = info.trimmed()
	if missing := info.missing(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := buildRequest(info, items, c.Totals(), c.Applied())
	hash, err := payloadHash(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.attempt.hash != hash {
		c.attempt = attempt{key: c.newKey(), hash: hash}
	}
	key := c.attempt.key
	c.mu.Unlock()

	v, err, _ := c.flight.Do(key, func() (any, error) {
		placement, err := c.orders.PlaceOrder(ctx, req, key)
		if err != nil {
			c.logger.Warn("order submission failed", "idempotency_key", key, "error", err)
			return nil, err
		}
		c.complete(ctx, key)
		c.logger.Info("order placed",
			"public_order_id", placement.PublicOrderID,
			"replayed", placement.Replayed,
		)
		return placement, nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "place order")
	}
	return v.(*remote.Placement), nil
}

// complete resets local state after a successful placement. The order is
// already placed, so a cart persistence failure is only logged.
func (c *Checkout) complete(ctx context.Context, key string) {
	if err := c.cart.Clear(ctx); err != nil {
		c.logger.Error("failed to clear cart after order", "error", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = nil
	if c.attempt.key == key {
		c.attempt = attempt{}
	}
}

func buildRequest(info CustomerInfo, items []domcart.LineItem, totals Totals, applied *AppliedCoupon) remote.OrderRequest {
	req := remote.OrderRequest{
		CustomerName: info.Name,
		Phone:        info.Phone,
		City:         info.City,
		Address:      info.Address,
		Items:        make([]remote.OrderItem, 0, len(items)),
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Total:        totals.Total,
	}
	for _, it := range items {
		req.Items = append(req.Items, remote.OrderItem{
			ProductID: it.ProductID,
			NameEN:    it.NameEN,
			NameAR:    it.NameAR,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	if applied != nil {
		req.CouponCode = ptr.NilIfZero(applied.Code)
	}
	return req
}

func payloadHash(req remote.OrderRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errs.Wrap(err, "encode order payload")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
