package queries

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
)

type NotifyQueries interface {
	// Demand lists waiting requests grouped per product, most requested first.
	Demand(ctx context.Context) ([]*ProductDemandView, error)
	ByProduct(ctx context.Context, productID uuid.UUID) ([]*NotifyRequestView, error)
}

type NotifyReadStore interface {
	// ListDemand returns one group per product with its requests oldest first.
	ListDemand(ctx context.Context) ([]*ProductDemandView, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*NotifyRequestView, error)
}

type notifyQueriesImpl struct {
	readStore NotifyReadStore
}

func NewNotifyQueries(readStore NotifyReadStore) NotifyQueries {
	return &notifyQueriesImpl{readStore: readStore}
}

func (q *notifyQueriesImpl) Demand(ctx context.Context) ([]*ProductDemandView, error) {
	groups, err := q.readStore.ListDemand(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		g.Count = len(g.Requests)
	}
	slices.SortStableFunc(groups, func(a, b *ProductDemandView) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return groups, nil
}

// ByProduct returns an empty list for a product nobody is waiting on.
func (q *notifyQueriesImpl) ByProduct(ctx context.Context, productID uuid.UUID) ([]*NotifyRequestView, error) {
	views, err := q.readStore.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*NotifyRequestView{}
	}
	return views, nil
}
