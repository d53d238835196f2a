package request

import (
	"time"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/patch"
	"zaylux-store/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type ValidateCouponRequest struct {
	Code       string      `json:"code"`
	OrderTotal money.Money `json:"order_total"`
}

type CouponRequest struct {
	Code               string          `json:"code" binding:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	MinOrderValue      *money.Money    `json:"min_order_value"`
	ExpiryDate         *time.Time      `json:"expiry_date"`
	IsActive           *bool           `json:"is_active"`
}

// ToInput defaults is_active to true, matching coupons created from the console.
func (r *CouponRequest) ToInput() commands.CouponInput {
	return commands.CouponInput{
		Code:               r.Code,
		DiscountPercentage: r.DiscountPercentage,
		MinOrderValue:      r.MinOrderValue,
		ExpiryDate:         r.ExpiryDate,
		IsActive:           patch.Coalesce(r.IsActive, true),
	}
}
