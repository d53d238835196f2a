package repository

import (
	"context"

	"zaylux-store/internal/domain/customer"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
)

const (
	upsertBlockedCustomerSQL = `
INSERT INTO blocked_customers (phone, reason, blocked_at)
VALUES ($1, $2, $3)
ON CONFLICT (phone) DO UPDATE SET reason = EXCLUDED.reason`

	deleteBlockedCustomerSQL = `DELETE FROM blocked_customers WHERE phone = $1`
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: dbtx}
}

func (r *CustomerRepository) Block(ctx context.Context, b customer.Blocked) error {
	if _, err := r.db.Exec(ctx, upsertBlockedCustomerSQL, b.Phone, b.Reason, b.BlockedAt); err != nil {
		return infra.WrapRepoErr("failed to block customer", err)
	}
	return nil
}

func (r *CustomerRepository) Unblock(ctx context.Context, phone string) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteBlockedCustomerSQL, phone)
	if err != nil {
		return false, infra.WrapRepoErr("failed to unblock customer", err)
	}
	return tag.RowsAffected() > 0, nil
}
