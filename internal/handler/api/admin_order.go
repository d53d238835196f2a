package api

import (
	"net/http"
	"strconv"

	reqdto "zaylux-store/internal/handler/dto/request"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminOrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewAdminOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *AdminOrderHandler {
	return &AdminOrderHandler{cmds: cmds, q: q}
}

// @Summary List orders
// @Description List orders newest first with keyset pagination
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/orders [get]
func (h *AdminOrderHandler) List(c *gin.Context) {
	var filter queries.OrderListFilter
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	resp, err := resdto.FromOrderPage(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get order
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/orders/{id} [get]
func (h *AdminOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid order id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromOrderView, view)
}

// @Summary Update order status
// @Description Move an order to Pending, Confirmed, Shipped, Delivered or Cancelled
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/status [put]
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid order id")
	if !ok {
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
		case errs.Is(err, commands.ErrOrderNotFound), errs.Is(err, queries.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errs.Is(err, commands.ErrTransitionNotAllowed):
			abortWithMessage(c, http.StatusConflict, err, "Status change not allowed")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	render(c, http.StatusOK, resdto.FromOrderView, view)
}
