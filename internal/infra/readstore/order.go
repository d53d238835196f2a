package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	orderViewColumns = `id, public_id, customer_name, phone, city, address, subtotal, discount, total,
       coupon_code, payment_method, status, created_at, updated_at`

	selectOrderViewByIDSQL = `SELECT ` + orderViewColumns + ` FROM orders WHERE id = $1`

	selectOrderViewByPublicIDSQL = `SELECT ` + orderViewColumns + ` FROM orders WHERE public_id = $1`

	selectOrderItemViewsSQL = `
SELECT order_id, product_id, name_en, name_ar, price, quantity, image
FROM order_items
WHERE order_id = ANY($1::uuid[])
ORDER BY order_id, position`
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	return r.findOne(ctx, selectOrderViewByIDSQL, id)
}

func (r *OrderReadStore) FindByPublicID(ctx context.Context, publicID string) (*queries.OrderView, error) {
	return r.findOne(ctx, selectOrderViewByPublicIDSQL, publicID)
}

func (r *OrderReadStore) ListFirstPage(ctx context.Context, filter queries.OrderListFilter, limit int32) ([]*queries.OrderView, error) {
	where, args := orderFilterClause(filter)
	args = append(args, limit)
	sql := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		orderViewColumns, where, len(args))
	return r.list(ctx, sql, args...)
}

func (r *OrderReadStore) ListKeyset(ctx context.Context, filter queries.OrderListFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	where, args := orderFilterClause(filter)
	args = append(args, lastCreatedAt, lastID)
	keyset := fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	if where == "" {
		where = "WHERE " + keyset
	} else {
		where += " AND " + keyset
	}
	args = append(args, limit)
	sql := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		orderViewColumns, where, len(args))
	return r.list(ctx, sql, args...)
}

func orderFilterClause(filter queries.OrderListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Phone != nil {
		args = append(args, *filter.Phone)
		conds = append(conds, fmt.Sprintf("phone = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *OrderReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.OrderView, error) {
	view, err := scanOrderView(r.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	if err := r.attachItems(ctx, []*queries.OrderView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *OrderReadStore) list(ctx context.Context, sql string, args ...any) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	views := []*queries.OrderView{}
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

// attachItems loads the item snapshots of all given orders in one query.
func (r *OrderReadStore) attachItems(ctx context.Context, views []*queries.OrderView) error {
	if len(views) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*queries.OrderView, len(views))
	ids := make([]string, 0, len(views))
	for _, v := range views {
		v.Items = []queries.OrderItemView{}
		byID[v.ID] = v
		ids = append(ids, v.ID.String())
	}

	rows, err := r.db.Query(ctx, selectOrderItemViewsSQL, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			item    queries.OrderItemView
			price   pgtype.Numeric
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.NameEN, &item.NameAR, &price, &item.Quantity, &item.Image); err != nil {
			return infra.WrapRepoErr("failed to scan order item", err)
		}
		d, err := pgconv.DecimalFromNumeric(price)
		if err != nil {
			return infra.WrapRepoErr("failed to convert item price", err)
		}
		item.Price = money.New(d)
		if v, ok := byID[orderID]; ok {
			v.Items = append(v.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read order items", err)
	}
	return nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var (
		v                         queries.OrderView
		subtotal, discount, total pgtype.Numeric
		couponCode                pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.PublicID, &v.CustomerName, &v.Phone, &v.City, &v.Address,
		&subtotal, &discount, &total, &couponCode, &v.PaymentMethod, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}

	amounts := []*money.Money{&v.Subtotal, &v.Discount, &v.Total}
	for i, n := range []pgtype.Numeric{subtotal, discount, total} {
		d, err := pgconv.DecimalFromNumeric(n)
		if err != nil {
			return nil, err
		}
		*amounts[i] = money.New(d)
	}
	v.CouponCode = pgconv.StringPtrFromPgtype(couponCode)
	return &v, nil
}
