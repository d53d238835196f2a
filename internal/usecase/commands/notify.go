package commands

import (
	"context"

	"zaylux-store/internal/domain/notify"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/queries"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductInStock      = errs.New("product is in stock")
	ErrNotifyRequestExists = errs.New("notify request already exists")
)

type NotifyCommands interface {
	// RequestRestock records that phone wants to hear when productID is back.
	RequestRestock(ctx context.Context, productID uuid.UUID, phone string, name *string) (*queries.NotifyRequestView, error)
}

type notifyCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewNotifyCommands(uow shared.UnitOfWork, clk clock.Clock) NotifyCommands {
	return &notifyCommandsImpl{uow: uow, clock: clk}
}

func (c *notifyCommandsImpl) RequestRestock(ctx context.Context, productID uuid.UUID, phone string, name *string) (*queries.NotifyRequestView, error) {
	var req notify.Request
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Products().FindByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		req, err = notify.NewRequest(p.ID(), p.Stock(), phone, name, c.clock.Now())
		if err != nil {
			return err
		}

		created, err := tx.NotifyRequests().Create(ctx, req)
		if err != nil {
			return err
		}
		if !created {
			return ErrNotifyRequestExists
		}
		return nil
	})
	if err != nil {
		return nil, mapNotifyErr(err)
	}

	return &queries.NotifyRequestView{
		ID:        req.ID,
		ProductID: req.ProductID,
		Phone:     req.Phone,
		Name:      req.Name,
		CreatedAt: req.CreatedAt,
	}, nil
}

func mapNotifyErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrProductNotFound
	case errs.Is(err, notify.ErrEmptyPhone):
		return errs.Mark(err, ErrInvalidPhone)
	case errs.Is(err, notify.ErrProductInStock):
		return ErrProductInStock
	case errs.Is(err, ErrNotifyRequestExists):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
