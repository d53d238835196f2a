package repository

import (
	"context"
	"time"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const (
	couponColumns = `id, code, discount_percentage, min_order_value, expiry_date, is_active, usage_count, created_at`

	insertCouponSQL = `
INSERT INTO coupons (id, code, discount_percentage, min_order_value, expiry_date, is_active, usage_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateCouponSQL = `
UPDATE coupons
SET code = $2, discount_percentage = $3, min_order_value = $4, expiry_date = $5, is_active = $6
WHERE id = $1`

	deleteCouponSQL = `DELETE FROM coupons WHERE id = $1`

	selectCouponByIDSQL = `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	selectCouponByCodeForUpdateSQL = `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 FOR UPDATE`

	updateCouponUsageSQL = `UPDATE coupons SET usage_count = $2 WHERE id = $1`
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	_, err := r.db.Exec(ctx, insertCouponSQL,
		c.ID(), c.Code().String(), pgconv.DecimalToNumeric(c.Percentage().Decimal()),
		moneyPtrToNumeric(c.MinOrderValue()), pgconv.TimePtrToPgtype(c.ExpiresAt()),
		c.Active(), c.UsageCount(), c.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert coupon", err)
	}
	return nil
}

func (r *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	tag, err := r.db.Exec(ctx, updateCouponSQL,
		c.ID(), c.Code().String(), pgconv.DecimalToNumeric(c.Percentage().Decimal()),
		moneyPtrToNumeric(c.MinOrderValue()), pgconv.TimePtrToPgtype(c.ExpiresAt()), c.Active(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("coupon not found")
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCouponSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("coupon not found")
	}
	return nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(ctx, selectCouponByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return c, nil
}

func (r *CouponRepository) FindByCodeForUpdate(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(ctx, selectCouponByCodeForUpdateSQL, code.String()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return c, nil
}

func (r *CouponRepository) SaveUsage(ctx context.Context, c *coupon.Coupon) error {
	if _, err := r.db.Exec(ctx, updateCouponUsageSQL, c.ID(), c.UsageCount()); err != nil {
		return infra.WrapRepoErr("failed to save coupon usage", err)
	}
	return nil
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		id         uuid.UUID
		code       string
		percentage pgtype.Numeric
		minOrder   pgtype.Numeric
		expiry     pgtype.Timestamptz
		active     bool
		usage      int
		createdAt  time.Time
	)
	if err := row.Scan(&id, &code, &percentage, &minOrder, &expiry, &active, &usage, &createdAt); err != nil {
		return nil, err
	}

	pct, err := pgconv.DecimalFromNumeric(percentage)
	if err != nil {
		return nil, err
	}
	minValue, err := moneyPtrFromNumeric(minOrder)
	if err != nil {
		return nil, err
	}

	return coupon.ReconstructCoupon(id, coupon.Params{
		Code:          coupon.Code(code),
		Percentage:    percentageOf(pct),
		MinOrderValue: minValue,
		ExpiresAt:     pgconv.TimePtrFromPgtype(expiry),
		Active:        active,
	}, usage, createdAt), nil
}

// percentageOf trusts the column's CHECK constraint for the 0..100 range.
func percentageOf(d decimal.Decimal) coupon.Percentage {
	p, err := coupon.NewPercentage(d)
	if err != nil {
		return coupon.Percentage{}
	}
	return p
}
