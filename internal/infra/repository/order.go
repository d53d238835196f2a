package repository

import (
	"context"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	nextOrderSequenceSQL = `SELECT nextval('order_public_seq')`

	insertOrderSQL = `
INSERT INTO orders (id, public_id, customer_name, phone, city, address,
                    subtotal, discount, total, coupon_code, payment_method, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	insertOrderItemSQL = `
INSERT INTO order_items (order_id, position, product_id, name_en, name_ar, price, quantity, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectOrderForUpdateSQL = `
SELECT id, public_id, customer_name, phone, city, address, subtotal, discount, total,
       coupon_code, payment_method, status, created_at, updated_at
FROM orders
WHERE id = $1
FOR UPDATE`

	selectOrderItemsSQL = `
SELECT product_id, name_en, name_ar, price, quantity, image
FROM order_items
WHERE order_id = $1
ORDER BY position`

	updateOrderStatusSQL = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, nextOrderSequenceSQL).Scan(&seq); err != nil {
		return 0, infra.WrapRepoErr("failed to allocate order sequence", err, infra.KindDBFailure)
	}
	return seq, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	c := o.Customer()
	t := o.Totals()
	var couponCode *string
	if code := o.CouponCode(); code != nil {
		s := code.String()
		couponCode = &s
	}

	_, err := r.db.Exec(ctx, insertOrderSQL,
		o.ID(), o.PublicID().String(), c.Name, c.Phone, c.City, c.Address,
		pgconv.DecimalToNumeric(t.Subtotal.Decimal()),
		pgconv.DecimalToNumeric(t.Discount.Decimal()),
		pgconv.DecimalToNumeric(t.Total.Decimal()),
		pgconv.StringPtrToPgtype(couponCode),
		o.PaymentMethod(), o.Status().String(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order", err)
	}

	for i, it := range o.Items() {
		_, err := r.db.Exec(ctx, insertOrderItemSQL,
			o.ID(), i, it.ProductID, it.Name.EN, it.Name.AR,
			pgconv.DecimalToNumeric(it.UnitPrice.Decimal()), it.Quantity, it.Image,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var (
		s                         order.Snapshot
		publicID, status          string
		subtotal, discount, total pgtype.Numeric
		couponCode                pgtype.Text
	)
	err := r.db.QueryRow(ctx, selectOrderForUpdateSQL, id).Scan(
		&s.ID, &publicID, &s.Customer.Name, &s.Customer.Phone, &s.Customer.City, &s.Customer.Address,
		&subtotal, &discount, &total, &couponCode, &s.PaymentMethod, &status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	s.PublicID = order.PublicID(publicID)
	s.Status = order.Status(status)
	if s.Totals, err = totalsFromNumeric(subtotal, discount, total); err != nil {
		return nil, infra.WrapRepoErr("failed to convert order totals", err)
	}
	if code := pgconv.StringPtrFromPgtype(couponCode); code != nil {
		cc := coupon.Code(*code)
		s.CouponCode = &cc
	}

	if s.Items, err = r.findItems(ctx, id); err != nil {
		return nil, err
	}
	return order.Reconstruct(s), nil
}

func (r *OrderRepository) findItems(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := r.db.Query(ctx, selectOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var (
			it    order.Item
			price pgtype.Numeric
		)
		if err := rows.Scan(&it.ProductID, &it.Name.EN, &it.Name.AR, &price, &it.Quantity, &it.Image); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		if it.UnitPrice, err = moneyFromNumeric(price); err != nil {
			return nil, infra.WrapRepoErr("failed to convert item price", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	return items, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, updateOrderStatusSQL, o.ID(), o.Status().String(), o.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("order not found")
	}
	return nil
}

func totalsFromNumeric(subtotal, discount, total pgtype.Numeric) (order.Totals, error) {
	var (
		t   order.Totals
		err error
	)
	if t.Subtotal, err = moneyFromNumeric(subtotal); err != nil {
		return order.Totals{}, err
	}
	if t.Discount, err = moneyFromNumeric(discount); err != nil {
		return order.Totals{}, err
	}
	if t.Total, err = moneyFromNumeric(total); err != nil {
		return order.Totals{}, err
	}
	return t, nil
}

func moneyFromNumeric(n pgtype.Numeric) (money.Money, error) {
	d, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return money.Zero, err
	}
	return money.New(d), nil
}

func moneyPtrFromNumeric(n pgtype.Numeric) (*money.Money, error) {
	d, err := pgconv.DecimalPtrFromNumeric(n)
	if err != nil || d == nil {
		return nil, err
	}
	m := money.New(*d)
	return &m, nil
}

func moneyPtrToNumeric(m *money.Money) pgtype.Numeric {
	if m == nil {
		return pgtype.Numeric{}
	}
	return pgconv.DecimalToNumeric(m.Decimal())
}
