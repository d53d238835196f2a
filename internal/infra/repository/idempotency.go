package repository

import (
	"context"
	"time"

	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"

	"github.com/google/uuid"
)

const (
	tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key, endpoint) DO NOTHING`

	completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_order_id = $3
WHERE key = $1 AND endpoint = $2`

	// Only a record that is still expired can be taken over; of two racing
	// claimers exactly one sees a row affected.
	claimExpiredIdempotencyKeySQL = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', result_order_id = NULL, expires_at = $5, created_at = $4
WHERE key = $1 AND endpoint = $2 AND expires_at < $4`

	releaseIdempotencyKeySQL = `
DELETE FROM idempotency_keys
WHERE key = $1 AND endpoint = $2 AND status = 'processing'`
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key uuid.UUID, endpoint string, orderID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, completeIdempotencyKeySQL, key, endpoint, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("idempotency key not found")
	}
	return nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, claimExpiredIdempotencyKeySQL, key, endpoint, requestHash, now, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID, endpoint string) error {
	if _, err := r.db.Exec(ctx, releaseIdempotencyKeySQL, key, endpoint); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
