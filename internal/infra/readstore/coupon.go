package readstore

import (
	"context"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	couponViewColumns = `id, code, discount_percentage, min_order_value, expiry_date, is_active, usage_count, created_at`

	listCouponViewsSQL = `SELECT ` + couponViewColumns + ` FROM coupons ORDER BY created_at DESC, id DESC`

	selectCouponViewByIDSQL = `SELECT ` + couponViewColumns + ` FROM coupons WHERE id = $1`
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) List(ctx context.Context) ([]*queries.CouponView, error) {
	rows, err := r.db.Query(ctx, listCouponViewsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	views := []*queries.CouponView{}
	for rows.Next() {
		v, err := scanCouponView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coupons", err)
	}
	return views, nil
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	v, err := scanCouponView(r.db.QueryRow(ctx, selectCouponViewByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return v, nil
}

func scanCouponView(row pgx.Row) (*queries.CouponView, error) {
	var (
		v                    queries.CouponView
		percentage, minOrder pgtype.Numeric
		expiry               pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Code, &percentage, &minOrder, &expiry, &v.IsActive, &v.UsageCount, &v.CreatedAt); err != nil {
		return nil, err
	}

	pct, err := pgconv.DecimalFromNumeric(percentage)
	if err != nil {
		return nil, err
	}
	v.DiscountPercentage = pct.InexactFloat64()

	minValue, err := pgconv.DecimalPtrFromNumeric(minOrder)
	if err != nil {
		return nil, err
	}
	if minValue != nil {
		m := money.New(*minValue)
		v.MinOrderValue = &m
	}
	v.ExpiryDate = pgconv.TimePtrFromPgtype(expiry)
	return &v, nil
}
