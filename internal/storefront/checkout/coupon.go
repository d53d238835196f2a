package checkout

import (
	"context"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/remote"

	"github.com/shopspring/decimal"
)

type CouponClient interface {
	ValidateCoupon(ctx context.Context, code string, orderTotal money.Money) (*remote.CouponResult, error)
}

// Validation is the outcome shown to the customer. Invalid codes are a
// normal result, not an error.
type Validation struct {
	Valid              bool
	Code               string
	DiscountPercentage decimal.Decimal
	DiscountAmount     money.Money
	Message            string
}

type CouponValidator struct {
	client CouponClient
}

func NewCouponValidator(client CouponClient) *CouponValidator {
	return &CouponValidator{client: client}
}

// Validate normalizes the code and asks the order service to evaluate it
// against subtotal. An empty code never reaches the network.
func (v *CouponValidator) Validate(ctx context.Context, raw string, subtotal money.Money) (Validation, error) {
	code := coupon.NormalizeCode(raw)
	if code.IsEmpty() {
		return Validation{Message: coupon.MsgEmptyCode}, nil
	}

	res, err := v.client.ValidateCoupon(ctx, code.String(), subtotal)
	if err != nil {
		return Validation{}, errs.Wrap(err, "validate coupon")
	}
	if !res.Valid {
		return Validation{Code: code.String(), Message: res.Message}, nil
	}
	return Validation{
		Valid:              true,
		Code:               code.String(),
		DiscountPercentage: res.DiscountPercentage,
		DiscountAmount:     res.DiscountAmount,
		Message:            res.Message,
	}, nil
}
