package readstore

import (
	"context"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"
	"zaylux-store/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// Contact fields come from each phone's most recent order.
	listCustomerSummariesSQL = `
WITH latest AS (
    SELECT DISTINCT ON (phone) phone, customer_name, city, address
    FROM orders
    ORDER BY phone, created_at DESC
), agg AS (
    SELECT phone,
           count(*)                                        AS total_orders,
           count(*) FILTER (WHERE status = $1)             AS cancelled_orders,
           coalesce(sum(total) FILTER (WHERE status <> $1), 0) AS total_spent,
           max(created_at)                                 AS last_order
    FROM orders
    GROUP BY phone
)
SELECT agg.phone, latest.customer_name, latest.city, latest.address,
       agg.total_orders, agg.cancelled_orders, agg.total_spent, agg.last_order,
       EXISTS (SELECT 1 FROM blocked_customers b WHERE b.phone = agg.phone) AS is_blocked
FROM agg
JOIN latest ON latest.phone = agg.phone
ORDER BY agg.last_order DESC`

	dashboardStatsSQL = `
SELECT (SELECT count(*) FROM products),
       (SELECT count(*) FROM orders),
       (SELECT count(*) FROM orders WHERE status = $1),
       (SELECT count(DISTINCT phone) FROM orders),
       (SELECT coalesce(sum(total), 0) FROM orders WHERE status <> $2)`
)

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: dbtx}
}

func (r *CustomerReadStore) ListSummaries(ctx context.Context) ([]*queries.CustomerSummaryView, error) {
	rows, err := r.db.Query(ctx, listCustomerSummariesSQL, order.StatusCancelled.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()

	views := []*queries.CustomerSummaryView{}
	for rows.Next() {
		var (
			v     queries.CustomerSummaryView
			spent pgtype.Numeric
		)
		if err := rows.Scan(&v.Phone, &v.Name, &v.City, &v.Address,
			&v.TotalOrders, &v.CancelledOrders, &spent, &v.LastOrder, &v.IsBlocked); err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer", err)
		}
		d, err := pgconv.DecimalFromNumeric(spent)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert total spent", err)
		}
		v.TotalSpent = money.New(d)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read customers", err)
	}
	return views, nil
}

func (r *CustomerReadStore) DashboardStats(ctx context.Context) (*queries.DashboardStatsView, error) {
	var (
		v       queries.DashboardStatsView
		revenue pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, dashboardStatsSQL, order.StatusPending.String(), order.StatusCancelled.String()).
		Scan(&v.TotalProducts, &v.TotalOrders, &v.PendingOrders, &v.TotalCustomers, &revenue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load dashboard stats", err)
	}
	d, err := pgconv.DecimalFromNumeric(revenue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert revenue", err)
	}
	v.TotalRevenue = money.New(d)
	return &v, nil
}
