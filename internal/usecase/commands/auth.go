package commands

import (
	"context"
	"log/slog"
	"time"

	"zaylux-store/internal/domain/admin"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/jwt"
	"zaylux-store/internal/pkg/password"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrAdminSeedFailed    = errs.New("admin seed failed")
)

type LoginResult struct {
	AdminID   uuid.UUID
	Username  string
	Token     string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	GenerateToken(adminID uuid.UUID, username string) (string, time.Time, error)
}

type AuthCommands interface {
	Login(ctx context.Context, username, plainPassword string) (*LoginResult, error)
	// EnsureAdmin creates the account when the username is not taken yet.
	EnsureAdmin(ctx context.Context, username, plainPassword string) error
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	clock  clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, tokens: jwtService, clock: clk}
}

func (a *authCommandsImpl) Login(ctx context.Context, username, plainPassword string) (*LoginResult, error) {
	name, err := admin.NewUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := a.uow.CommandReads().AdminByUsername(ctx, name.Value())
	if err != nil {
		// Same error as a password mismatch to prevent username enumeration
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(account.PasswordHash(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.GenerateToken(account.ID(), name.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	account.RecordLogin(a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().UpdateLastLogin(ctx, account)
	})
	if err != nil {
		// login succeeded; only the last_login bookkeeping failed
		slog.Warn("failed to update last login", "admin_id", account.ID(), "error", err.Error())
	}

	return &LoginResult{
		AdminID:   account.ID(),
		Username:  name.Value(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *authCommandsImpl) EnsureAdmin(ctx context.Context, username, plainPassword string) error {
	name, err := admin.NewUsername(username)
	if err != nil {
		return errs.Mark(err, ErrAdminSeedFailed)
	}
	pw, err := admin.NewPassword(plainPassword)
	if err != nil {
		return errs.Mark(err, ErrAdminSeedFailed)
	}

	_, err = a.uow.CommandReads().AdminByUsername(ctx, name.Value())
	if err == nil {
		return nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrAdminSeedFailed)
	}

	hash, err := password.Hash(pw.Value())
	if err != nil {
		return errs.Mark(err, ErrAdminSeedFailed)
	}
	account := admin.NewAdmin(name, hash, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().Create(ctx, account)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil
		}
		return errs.Mark(err, ErrAdminSeedFailed)
	}
	slog.Info("admin account created", "username", name.Value())
	return nil
}
