package api

import (
	"net/http"
	"strings"

	reqdto "zaylux-store/internal/handler/dto/request"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminCustomerHandler struct {
	cmds commands.CustomerCommands
	q    queries.CustomerQueries
}

func NewAdminCustomerHandler(cmds commands.CustomerCommands, q queries.CustomerQueries) *AdminCustomerHandler {
	return &AdminCustomerHandler{cmds: cmds, q: q}
}

// @Summary List customers
// @Description One row per phone number with order statistics and block status
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.CustomerSummaryResponse
// @Router /admin/customers [get]
func (h *AdminCustomerHandler) List(c *gin.Context) {
	views, err := h.q.ListSummaries(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromCustomerSummaries, views)
}

// @Summary Customer orders
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {array} resdto.OrderResponse
// @Router /admin/customers/{phone}/orders [get]
func (h *AdminCustomerHandler) Orders(c *gin.Context) {
	views, err := h.q.OrdersByPhone(c.Request.Context(), strings.TrimSpace(c.Param("phone")))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromOrderViews, views)
}

// @Summary Block customer
// @Description Orders from a blocked phone are refused
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param phone path string true "Phone number"
// @Param request body reqdto.BlockCustomerRequest false "Optional reason"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/customers/{phone}/block [post]
func (h *AdminCustomerHandler) Block(c *gin.Context) {
	var req reqdto.BlockCustomerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if err := h.cmds.Block(c.Request.Context(), c.Param("phone"), req.Reason); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Customer blocked successfully"})
}

// @Summary Unblock customer
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/customers/{phone}/block [delete]
func (h *AdminCustomerHandler) Unblock(c *gin.Context) {
	if err := h.cmds.Unblock(c.Request.Context(), c.Param("phone")); err != nil {
		h.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Customer unblocked successfully"})
}

// @Summary Dashboard statistics
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.DashboardStatsResponse
// @Router /admin/dashboard/stats [get]
func (h *AdminCustomerHandler) DashboardStats(c *gin.Context) {
	stats, err := h.q.DashboardStats(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromDashboardStats, stats)
}

func (h *AdminCustomerHandler) abortError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidPhone):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
	case errs.Is(err, commands.ErrCustomerNotBlocked):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Customer is not blocked", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
