package api

import (
	"net/http"

	reqdto "zaylux-store/internal/handler/dto/request"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NotifyHandler struct {
	cmds commands.NotifyCommands
	q    queries.NotifyQueries
}

func NewNotifyHandler(cmds commands.NotifyCommands, q queries.NotifyQueries) *NotifyHandler {
	return &NotifyHandler{cmds: cmds, q: q}
}

// @Summary Request a back-in-stock notification
// @Description Only out-of-stock products accept requests, one per phone
// @Tags notify
// @Accept json
// @Produce json
// @Param request body reqdto.NotifyMeRequest true "Product and contact"
// @Success 201 {object} resdto.NotifyRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /notify-me [post]
func (h *NotifyHandler) Create(c *gin.Context) {
	var req reqdto.NotifyMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.RequestRestock(c.Request.Context(), req.ProductID, req.Phone, req.Name)
	if err != nil {
		h.abortError(c, err)
		return
	}
	render(c, http.StatusCreated, resdto.FromNotifyRequestView, view)
}

// @Summary Back-in-stock demand
// @Description Waiting requests grouped per product, most requested first
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ProductDemandResponse
// @Router /admin/notify-requests [get]
func (h *NotifyHandler) Demand(c *gin.Context) {
	views, err := h.q.Demand(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromProductDemandViews, views)
}

// @Summary Back-in-stock requests for one product
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {array} resdto.NotifyRequestResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/notify-requests/{product_id} [get]
func (h *NotifyHandler) ByProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "product_id", "Invalid product ID")
	if !ok {
		return
	}
	views, err := h.q.ByProduct(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromNotifyRequestViews, views)
}

func (h *NotifyHandler) abortError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errs.Is(err, commands.ErrProductInStock):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Product is in stock", nil)
	case errs.Is(err, commands.ErrNotifyRequestExists):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "You have already requested notification for this product", nil)
	case errs.Is(err, commands.ErrInvalidPhone):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
