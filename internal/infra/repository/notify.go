package repository

import (
	"context"

	"zaylux-store/internal/domain/notify"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
)

const insertNotifyRequestSQL = `
INSERT INTO notify_requests (id, product_id, phone, name, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (product_id, phone) DO NOTHING`

type NotifyRequestRepository struct {
	db db.DBTX
}

func NewNotifyRequestRepository(dbtx db.DBTX) *NotifyRequestRepository {
	return &NotifyRequestRepository{db: dbtx}
}

// Create reports false when the phone already waits for the product.
func (r *NotifyRequestRepository) Create(ctx context.Context, req notify.Request) (bool, error) {
	tag, err := r.db.Exec(ctx, insertNotifyRequestSQL, req.ID, req.ProductID, req.Phone, req.Name, req.CreatedAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to create notify request", err)
	}
	return tag.RowsAffected() == 1, nil
}
