package repository

import (
	"context"

	"zaylux-store/internal/domain/admin"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"
)

const (
	insertAdminSQL = `
INSERT INTO admins (id, username, password_hash, last_login, created_at)
VALUES ($1, $2, $3, $4, $5)`

	updateAdminLastLoginSQL = `UPDATE admins SET last_login = $2 WHERE id = $1`
)

type AdminRepository struct {
	db db.DBTX
}

func NewAdminRepository(dbtx db.DBTX) *AdminRepository {
	return &AdminRepository{db: dbtx}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	_, err := r.db.Exec(ctx, insertAdminSQL,
		a.ID(), a.Username().Value(), a.PasswordHash(), pgconv.TimePtrToPgtype(a.LastLogin()), a.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert admin", err)
	}
	return nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, a *admin.Admin) error {
	tag, err := r.db.Exec(ctx, updateAdminLastLoginSQL, a.ID(), pgconv.TimePtrToPgtype(a.LastLogin()))
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("admin not found")
	}
	return nil
}
