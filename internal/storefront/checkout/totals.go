package checkout

import (
	"zaylux-store/internal/domain/money"

	"github.com/shopspring/decimal"
)

// AppliedCoupon remembers the subtotal the discount was computed for.
type AppliedCoupon struct {
	Code           string
	Percentage     decimal.Decimal
	DiscountAmount money.Money
	Subtotal       money.Money
}

type Totals struct {
	Subtotal money.Money
	Discount money.Money
	Total    money.Money
	// CouponStale reports that the cart changed after the coupon was applied.
	CouponStale bool
}

// ComputeTotals keeps the discount returned at validation time. A cart that
// shrank below it gets the discount capped at the subtotal, the most the
// order service accepts.
func ComputeTotals(subtotal money.Money, applied *AppliedCoupon) Totals {
	t := Totals{Subtotal: subtotal, Discount: money.Zero}
	if applied != nil {
		t.Discount = money.Min(applied.DiscountAmount, subtotal)
		t.CouponStale = !applied.Subtotal.Equal(subtotal)
	}
	t.Total = subtotal.SubFloor(t.Discount)
	return t
}
