package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a console operator. Only admins may move orders through their
// lifecycle or manage coupons and the customer block list.
type Admin struct {
	id           uuid.UUID
	username     Username
	passwordHash string
	lastLogin    *time.Time
	createdAt    time.Time
}

func NewAdmin(username Username, passwordHash string, now time.Time) *Admin {
	return &Admin{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    now,
	}
}

func ReconstructAdmin(id uuid.UUID, username Username, passwordHash string, lastLogin *time.Time, createdAt time.Time) *Admin {
	return &Admin{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
	}
}

func (a *Admin) RecordLogin(at time.Time) {
	a.lastLogin = &at
}

func (a *Admin) ID() uuid.UUID         { return a.id }
func (a *Admin) Username() Username    { return a.username }
func (a *Admin) PasswordHash() string  { return a.passwordHash }
func (a *Admin) LastLogin() *time.Time { return a.lastLogin }
func (a *Admin) CreatedAt() time.Time  { return a.createdAt }
