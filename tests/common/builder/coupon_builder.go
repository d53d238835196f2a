//go:build unit || e2e

package builder

import (
	"time"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	reqdto "zaylux-store/internal/handler/dto/request"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	ID            uuid.UUID
	Code          string
	Percentage    decimal.Decimal
	MinOrderValue *money.Money
	ExpiresAt     *time.Time
	Active        bool
	UsageCount    int
	CreatedAt     time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:         uuid.New(),
		Code:       "SAVE10",
		Percentage: decimal.NewFromInt(10),
		Active:     true,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithPercentage(pct int64) *CouponBuilder {
	b.Percentage = decimal.NewFromInt(pct)
	return b
}

func (b *CouponBuilder) WithMinOrderValue(v string) *CouponBuilder {
	m := money.MustParse(v)
	b.MinOrderValue = &m
	return b
}

func (b *CouponBuilder) WithExpiry(t time.Time) *CouponBuilder {
	b.ExpiresAt = &t
	return b
}

func (b *CouponBuilder) Inactive() *CouponBuilder {
	b.Active = false
	return b
}

func (b *CouponBuilder) BuildParams() coupon.Params {
	pct, err := coupon.NewPercentage(b.Percentage)
	if err != nil {
		panic(err)
	}
	return coupon.Params{
		Code:          coupon.NormalizeCode(b.Code),
		Percentage:    pct,
		MinOrderValue: b.MinOrderValue,
		ExpiresAt:     b.ExpiresAt,
		Active:        b.Active,
	}
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.BuildParams(), b.CreatedAt)
}

func (b *CouponBuilder) BuildStored() *coupon.Coupon {
	return coupon.ReconstructCoupon(b.ID, b.BuildParams(), b.UsageCount, b.CreatedAt)
}

func (b *CouponBuilder) BuildView() *queries.CouponView {
	return &queries.CouponView{
		ID:                 b.ID,
		Code:               coupon.NormalizeCode(b.Code).String(),
		DiscountPercentage: b.Percentage.InexactFloat64(),
		MinOrderValue:      b.MinOrderValue,
		ExpiryDate:         b.ExpiresAt,
		IsActive:           b.Active,
		UsageCount:         b.UsageCount,
		CreatedAt:          b.CreatedAt,
	}
}

func (b *CouponBuilder) BuildRequestDTO() reqdto.CouponRequest {
	active := b.Active
	return reqdto.CouponRequest{
		Code:               b.Code,
		DiscountPercentage: b.Percentage,
		MinOrderValue:      b.MinOrderValue,
		ExpiryDate:         b.ExpiresAt,
		IsActive:           &active,
	}
}
