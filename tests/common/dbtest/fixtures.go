//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type ProductFixture struct {
	NameEN   string
	NameAR   string
	Category string
	Price    string
	Stock    int
	Visible  bool
}

func CreateProduct(t *testing.T, db DBLike, p ProductFixture) uuid.UUID {
	t.Helper()

	if p.Category == "" {
		p.Category = "perfume"
	}
	if p.NameAR == "" {
		p.NameAR = p.NameEN
	}
	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO products (id, name_en, name_ar, category, price, quantity, images, is_visible)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8)`,
		id, p.NameEN, p.NameAR, p.Category, p.Price, p.Stock, []string{"/images/" + id.String() + ".jpg"}, p.Visible)
	require.NoError(t, err)
	return id
}

func ProductStock(t *testing.T, db DBLike, id uuid.UUID) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT quantity FROM products WHERE id = $1", id).Scan(&stock)
	require.NoError(t, err)
	return stock
}

type CouponFixture struct {
	Code          string
	Percentage    string
	MinOrderValue *string
	ExpiresAt     *time.Time
	Active        bool
}

func CreateCoupon(t *testing.T, db DBLike, c CouponFixture) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO coupons (id, code, discount_percentage, min_order_value, expiry_date, is_active)
		VALUES ($1, $2, $3::text::numeric, $4::text::numeric, $5, $6)`,
		id, strings.ToUpper(c.Code), c.Percentage, c.MinOrderValue, c.ExpiresAt, c.Active)
	require.NoError(t, err)
	return id
}

func CouponUsage(t *testing.T, db DBLike, code string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT usage_count FROM coupons WHERE code = $1", strings.ToUpper(code)).Scan(&n)
	require.NoError(t, err)
	return n
}

func BlockCustomer(t *testing.T, db DBLike, phone, reason string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO blocked_customers (phone, reason) VALUES ($1, $2) ON CONFLICT (phone) DO NOTHING", phone, reason)
	require.NoError(t, err)
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table except migrations and admins, and restarts
// the public order number sequence.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'admins')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	_, err := pool.Exec(ctx, "ALTER SEQUENCE order_public_seq RESTART WITH 100001")
	return err
}
