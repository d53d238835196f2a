//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"
	"time"

	"zaylux-store/internal/handler/dto/request"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/jwt"
	"zaylux-store/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, adminID uuid.UUID, username string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, clock.New())
	token, _, err := service.GenerateToken(adminID, username)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose lifetime ended an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, adminID uuid.UUID, username string) string {
	t.Helper()
	issuedAt := time.Now().Add(-h.cfg.Duration - time.Hour)
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration, clock.NewFixed(issuedAt))
	token, _, err := service.GenerateToken(adminID, username)
	require.NoError(t, err)
	return token
}

// LoginAdmin logs in through the API and returns the bearer token.
func LoginAdmin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/admin/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
	require.NotEmpty(t, body.AccessToken, "access token missing from login response")
	return body.AccessToken
}
