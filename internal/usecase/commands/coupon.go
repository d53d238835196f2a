package commands

import (
	"context"
	"time"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/queries"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound   = errs.New("coupon not found")
	ErrDuplicateCoupon  = errs.New("coupon code already exists")
	ErrInvalidCouponArg = errs.New("invalid coupon")
)

// CouponValidation is the customer-facing outcome of a coupon check.
// Rejections are results, not errors.
type CouponValidation struct {
	Valid              bool
	Code               string
	DiscountPercentage decimal.Decimal
	DiscountAmount     money.Money
	Message            string
}

type CouponInput struct {
	Code               string
	DiscountPercentage decimal.Decimal
	MinOrderValue      *money.Money
	ExpiryDate         *time.Time
	IsActive           bool
}

type CouponCommands interface {
	// Validate evaluates the code against the order total and counts a use
	// when the coupon applies.
	Validate(ctx context.Context, code string, orderTotal money.Money) (*CouponValidation, error)
	Create(ctx context.Context, in CouponInput) (*queries.CouponView, error)
	Update(ctx context.Context, id uuid.UUID, in CouponInput) (*queries.CouponView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponCommandsImpl struct {
	uow           shared.UnitOfWork
	couponQueries queries.CouponQueries
	clock         clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, couponQueries queries.CouponQueries, clk clock.Clock) CouponCommands {
	return &couponCommandsImpl{uow: uow, couponQueries: couponQueries, clock: clk}
}

func (c *couponCommandsImpl) Validate(ctx context.Context, code string, orderTotal money.Money) (*CouponValidation, error) {
	normalized := coupon.NormalizeCode(code)
	if normalized.IsEmpty() {
		return &CouponValidation{Message: coupon.MsgEmptyCode}, nil
	}

	result := &CouponValidation{Code: normalized.String()}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cp, err := tx.Coupons().FindByCodeForUpdate(ctx, normalized)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				result.Message = coupon.MsgNotFound
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		eval, err := cp.Evaluate(orderTotal, c.clock.Now())
		if err != nil {
			result.Message = coupon.RejectionMessage(err)
			return nil
		}

		cp.RecordUsage()
		if err := tx.Coupons().SaveUsage(ctx, cp); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result.Valid = true
		result.DiscountPercentage = eval.Percentage.Decimal()
		result.DiscountAmount = eval.DiscountAmount
		result.Message = coupon.MsgApplied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *couponCommandsImpl) Create(ctx context.Context, in CouponInput) (*queries.CouponView, error) {
	params, err := in.toParams()
	if err != nil {
		return nil, err
	}
	cp, err := coupon.NewCoupon(params, c.clock.Now())
	if err != nil {
		return nil, errs.WithMessage(errs.Mark(err, ErrInvalidCouponArg), err.Error())
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().Create(ctx, cp)
	})
	if err != nil {
		return nil, mapCouponWriteErr(err)
	}
	return c.couponQueries.GetByID(ctx, cp.ID())
}

func (c *couponCommandsImpl) Update(ctx context.Context, id uuid.UUID, in CouponInput) (*queries.CouponView, error) {
	params, err := in.toParams()
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cp, err := tx.Coupons().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := cp.Update(params); err != nil {
			return errs.WithMessage(errs.Mark(err, ErrInvalidCouponArg), err.Error())
		}
		return tx.Coupons().Update(ctx, cp)
	})
	if err != nil {
		return nil, mapCouponWriteErr(err)
	}
	return c.couponQueries.GetByID(ctx, id)
}

func (c *couponCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Coupons().Delete(ctx, id)
	})
	if err != nil {
		return mapCouponWriteErr(err)
	}
	return nil
}

func (in CouponInput) toParams() (coupon.Params, error) {
	code, err := coupon.NewCouponCode(in.Code)
	if err != nil {
		return coupon.Params{}, errs.WithMessage(errs.Mark(err, ErrInvalidCouponArg), err.Error())
	}
	pct, err := coupon.NewPercentage(in.DiscountPercentage)
	if err != nil {
		return coupon.Params{}, errs.WithMessage(errs.Mark(err, ErrInvalidCouponArg), err.Error())
	}
	return coupon.Params{
		Code:          code,
		Percentage:    pct,
		MinOrderValue: in.MinOrderValue,
		ExpiresAt:     in.ExpiryDate,
		Active:        in.IsActive,
	}, nil
}

func mapCouponWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrCouponNotFound
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.WithMessage(ErrDuplicateCoupon, "Coupon code already exists")
	case errs.Is(err, ErrInvalidCouponArg):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
