package coupon

import (
	"errors"
	"fmt"
	"time"

	"zaylux-store/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive = errors.New("coupon is not active")
	ErrCouponExpired  = errors.New("coupon has expired")
	ErrBelowMinimum   = errors.New("order below coupon minimum")
)

// MinimumOrderError carries the threshold that the subtotal failed to reach.
type MinimumOrderError struct {
	Threshold money.Money
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("subtotal below minimum order value %s", e.Threshold.Format())
}

func (e *MinimumOrderError) Unwrap() error { return ErrBelowMinimum }

type Coupon struct {
	id            uuid.UUID
	code          Code
	percentage    Percentage
	minOrderValue *money.Money
	expiresAt     *time.Time
	active        bool
	usageCount    int
	createdAt     time.Time
}

type Params struct {
	Code          Code
	Percentage    Percentage
	MinOrderValue *money.Money
	ExpiresAt     *time.Time
	Active        bool
}

func NewCoupon(p Params, now time.Time) (*Coupon, error) {
	if _, err := NewCouponCode(p.Code.String()); err != nil {
		return nil, err
	}
	if p.MinOrderValue != nil && p.MinOrderValue.IsNegative() {
		return nil, ErrInvalidMinOrderValue
	}
	return &Coupon{
		id:            uuid.New(),
		code:          p.Code,
		percentage:    p.Percentage,
		minOrderValue: p.MinOrderValue,
		expiresAt:     p.ExpiresAt,
		active:        p.Active,
		createdAt:     now,
	}, nil
}

func ReconstructCoupon(id uuid.UUID, p Params, usageCount int, createdAt time.Time) *Coupon {
	return &Coupon{
		id:            id,
		code:          p.Code,
		percentage:    p.Percentage,
		minOrderValue: p.MinOrderValue,
		expiresAt:     p.ExpiresAt,
		active:        p.Active,
		usageCount:    usageCount,
		createdAt:     createdAt,
	}
}

// Evaluation is the outcome of a successful eligibility check.
type Evaluation struct {
	Code           Code
	Percentage     Percentage
	DiscountAmount money.Money
}

// Evaluate checks eligibility in order: active, not expired, minimum met.
// An expiry equal to now is still valid.
func (c *Coupon) Evaluate(subtotal money.Money, now time.Time) (Evaluation, error) {
	if !c.active {
		return Evaluation{}, ErrCouponInactive
	}
	if c.expiresAt != nil && now.After(*c.expiresAt) {
		return Evaluation{}, ErrCouponExpired
	}
	if c.minOrderValue != nil && subtotal.LessThan(*c.minOrderValue) {
		return Evaluation{}, &MinimumOrderError{Threshold: *c.minOrderValue}
	}
	return Evaluation{
		Code:           c.code,
		Percentage:     c.percentage,
		DiscountAmount: subtotal.Percent(c.percentage.Decimal()),
	}, nil
}

func (c *Coupon) RecordUsage() {
	c.usageCount++
}

func (c *Coupon) Update(p Params) error {
	if _, err := NewCouponCode(p.Code.String()); err != nil {
		return err
	}
	if p.MinOrderValue != nil && p.MinOrderValue.IsNegative() {
		return ErrInvalidMinOrderValue
	}
	c.code = p.Code
	c.percentage = p.Percentage
	c.minOrderValue = p.MinOrderValue
	c.expiresAt = p.ExpiresAt
	c.active = p.Active
	return nil
}

func (c *Coupon) ID() uuid.UUID               { return c.id }
func (c *Coupon) Code() Code                  { return c.code }
func (c *Coupon) Percentage() Percentage      { return c.percentage }
func (c *Coupon) MinOrderValue() *money.Money { return c.minOrderValue }
func (c *Coupon) ExpiresAt() *time.Time       { return c.expiresAt }
func (c *Coupon) Active() bool                { return c.active }
func (c *Coupon) UsageCount() int             { return c.usageCount }
func (c *Coupon) CreatedAt() time.Time        { return c.createdAt }
