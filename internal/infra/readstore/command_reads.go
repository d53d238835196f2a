package readstore

import (
	"context"
	"time"

	"zaylux-store/internal/domain/admin"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectIdempotencyKeySQL = `
SELECT key, endpoint, status, request_hash, result_order_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND endpoint = $2`

	selectAdminByUsernameSQL = `
SELECT id, username, password_hash, last_login, created_at
FROM admins
WHERE username = $1`

	selectCustomerBlockedSQL = `SELECT EXISTS (SELECT 1 FROM blocked_customers WHERE phone = $1)`
)

// IdempotencyReadStore returns the record as stored; expiry is the caller's decision.
type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key uuid.UUID, endpoint string) (*shared.IdempotencyRecord, error) {
	var (
		rec      shared.IdempotencyRecord
		resultID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, selectIdempotencyKeySQL, key, endpoint).
		Scan(&rec.Key, &rec.Endpoint, &rec.Status, &rec.RequestHash, &resultID, &rec.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.ResultOrderID = pgconv.UUIDPtrFromPgtype(resultID)
	return &rec, nil
}

type AdminReadStore struct {
	db db.DBTX
}

func NewAdminReadStore(dbtx db.DBTX) *AdminReadStore {
	return &AdminReadStore{db: dbtx}
}

func (r *AdminReadStore) FindByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	var (
		id        uuid.UUID
		name      string
		hash      string
		lastLogin pgtype.Timestamptz
		createdAt time.Time
	)
	err := r.db.QueryRow(ctx, selectAdminByUsernameSQL, username).Scan(&id, &name, &hash, &lastLogin, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin", err)
	}

	u, err := admin.NewUsername(name)
	if err != nil {
		return nil, infra.WrapRepoErr("stored admin username is invalid", err)
	}
	return admin.ReconstructAdmin(id, u, hash, pgconv.TimePtrFromPgtype(lastLogin), createdAt), nil
}

type BlockListReadStore struct {
	db db.DBTX
}

func NewBlockListReadStore(dbtx db.DBTX) *BlockListReadStore {
	return &BlockListReadStore{db: dbtx}
}

func (r *BlockListReadStore) IsBlocked(ctx context.Context, phone string) (bool, error) {
	var blocked bool
	if err := r.db.QueryRow(ctx, selectCustomerBlockedSQL, phone).Scan(&blocked); err != nil {
		return false, infra.WrapRepoErr("failed to check block list", err)
	}
	return blocked, nil
}
