package queries

import (
	"context"
	"strings"
)

type CustomerQueries interface {
	ListSummaries(ctx context.Context) ([]*CustomerSummaryView, error)
	// OrdersByPhone lists every order placed from the phone, newest first.
	OrdersByPhone(ctx context.Context, phone string) ([]*OrderView, error)
	DashboardStats(ctx context.Context) (*DashboardStatsView, error)
}

type CustomerReadStore interface {
	ListSummaries(ctx context.Context) ([]*CustomerSummaryView, error)
	DashboardStats(ctx context.Context) (*DashboardStatsView, error)
}

type customerQueriesImpl struct {
	readStore CustomerReadStore
	orders    OrderReadStore
}

func NewCustomerQueries(readStore CustomerReadStore, orders OrderReadStore) CustomerQueries {
	return &customerQueriesImpl{readStore: readStore, orders: orders}
}

func (q *customerQueriesImpl) ListSummaries(ctx context.Context) ([]*CustomerSummaryView, error) {
	return q.readStore.ListSummaries(ctx)
}

func (q *customerQueriesImpl) OrdersByPhone(ctx context.Context, phone string) ([]*OrderView, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return []*OrderView{}, nil
	}
	return q.orders.ListFirstPage(ctx, OrderListFilter{Phone: &phone}, MaxListLimit)
}

func (q *customerQueriesImpl) DashboardStats(ctx context.Context) (*DashboardStatsView, error) {
	return q.readStore.DashboardStats(ctx)
}
