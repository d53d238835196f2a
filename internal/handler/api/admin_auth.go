package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "zaylux-store/internal/handler/dto/request"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/handler/middleware"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/cookie"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var errNoAdminInContext = errors.New("admin principal missing from context")

type AdminAuthHandler struct {
	cmds      commands.AuthCommands
	cookieCfg config.CookieConfig
}

func NewAdminAuthHandler(cmds commands.AuthCommands, cfg config.Config) *AdminAuthHandler {
	return &AdminAuthHandler{cmds: cmds, cookieCfg: cfg.Cookie}
}

// @Summary Admin login
// @Description Exchange console credentials for a bearer token; the token is also set as an HttpOnly cookie
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/login [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetAdminToken(c, h.cookieCfg, result.Token, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Admin logout
// @Description Clear the console cookie. Bearer tokens expire on their own.
// @Tags admin
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /admin/logout [post]
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	cookie.ClearAdminToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.Response
// @Router /admin/me [get]
func (h *AdminAuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetAdmin(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoAdminInContext, "Unauthorized", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       principal.ID.String(),
		"username": principal.Username,
	})
}
