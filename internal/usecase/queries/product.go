package queries

import (
	"context"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errs.New("product not found")
	ErrInvalidCategory = errs.New("invalid category")
)

type ProductQueries interface {
	// ListPublic returns visible products, newest first, optionally narrowed to a category.
	ListPublic(ctx context.Context, category string) ([]*ProductView, error)
	// GetPublic hides invisible products behind ErrProductNotFound.
	GetPublic(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListAll(ctx context.Context) ([]*ProductView, error)
}

type ProductReadStore interface {
	List(ctx context.Context, filter ProductFilter) ([]*ProductView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) ListPublic(ctx context.Context, category string) ([]*ProductView, error) {
	filter := ProductFilter{VisibleOnly: true}
	if category != "" {
		c, err := catalog.ParseCategory(category)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidCategory)
		}
		s := c.String()
		filter.Category = &s
	}
	return q.readStore.List(ctx, filter)
}

func (q *productQueriesImpl) GetPublic(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !view.IsVisible {
		return nil, ErrProductNotFound
	}
	return view, nil
}

func (q *productQueriesImpl) ListAll(ctx context.Context) ([]*ProductView, error) {
	return q.readStore.List(ctx, ProductFilter{})
}
