package commands

import (
	"context"

	"zaylux-store/internal/domain/customer"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/shared"
)

var (
	ErrInvalidPhone       = errs.New("invalid phone")
	ErrCustomerNotBlocked = errs.New("customer not blocked")
)

type CustomerCommands interface {
	// Block is idempotent: blocking a blocked phone refreshes the reason.
	Block(ctx context.Context, phone, reason string) error
	Unblock(ctx context.Context, phone string) error
}

type customerCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCustomerCommands(uow shared.UnitOfWork, clk clock.Clock) CustomerCommands {
	return &customerCommandsImpl{uow: uow, clock: clk}
}

func (c *customerCommandsImpl) Block(ctx context.Context, phone, reason string) error {
	entry, err := customer.NewBlocked(phone, reason, c.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrInvalidPhone)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Customers().Block(ctx, entry)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *customerCommandsImpl) Unblock(ctx context.Context, phone string) error {
	entry, err := customer.NewBlocked(phone, "", c.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrInvalidPhone)
	}

	var removed bool
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var txErr error
		removed, txErr = tx.Customers().Unblock(ctx, entry.Phone)
		return txErr
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !removed {
		return ErrCustomerNotBlocked
	}
	return nil
}
