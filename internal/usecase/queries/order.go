package queries

import (
	"context"
	"strings"
	"time"

	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrInvalidCursor = errs.New("invalid cursor")
)

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	// Track returns the order only when both the public id and the phone match.
	Track(ctx context.Context, publicID, phone string) (*TrackingView, error)
	List(ctx context.Context, filter OrderListFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByPublicID(ctx context.Context, publicID string) (*OrderView, error)
	ListFirstPage(ctx context.Context, filter OrderListFilter, limit int32) ([]*OrderView, error)
	ListKeyset(ctx context.Context, filter OrderListFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) Track(ctx context.Context, publicID, phone string) (*TrackingView, error) {
	id, err := order.ParsePublicID(publicID)
	if err != nil || strings.TrimSpace(phone) == "" {
		return nil, ErrOrderNotFound
	}

	view, err := q.readStore.FindByPublicID(ctx, id.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	// a wrong phone must look exactly like an unknown order
	if !order.TrackingMatches(order.PublicID(view.PublicID), view.Phone, id.String(), phone) {
		return nil, ErrOrderNotFound
	}

	return &TrackingView{
		PublicID:      view.PublicID,
		Status:        view.Status,
		Items:         view.Items,
		Subtotal:      view.Subtotal,
		Discount:      view.Discount,
		Total:         view.Total,
		CouponCode:    view.CouponCode,
		PaymentMethod: view.PaymentMethod,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}, nil
}

// List pages newest first. The returned cursor is nil on the last page.
func (q *orderQueriesImpl) List(ctx context.Context, filter OrderListFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*OrderView
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.ListFirstPage(ctx, filter, int32(limit+1))
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(cursor.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrInvalidCursor)
		}
		rows, err = q.readStore.ListKeyset(ctx, filter, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
