package usecase

import (
	"zaylux-store/internal/pkg/jwt"

	"github.com/google/uuid"
)

// AdminPrincipal is the authenticated console operator.
type AdminPrincipal struct {
	ID       uuid.UUID
	Username string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (AdminPrincipal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (AdminPrincipal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return AdminPrincipal{}, err
	}
	return AdminPrincipal{ID: claims.AdminID, Username: claims.Username}, nil
}
