package api

import (
	"errors"
	"net/http"

	reqdto "zaylux-store/internal/handler/dto/request"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/handler/middleware"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerIdempotentReplayed = "Idempotent-Replayed"

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Place order
// @Description Place a cash-on-delivery order from a cart snapshot. An Idempotency-Key makes retries safe.
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID reused across retries of one checkout attempt"
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.CreateOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.PlaceOrder(c.Request.Context(), cmd, idempotencyKey)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrCustomerBlocked):
			abortWithMessage(c, http.StatusForbidden, err, commands.MsgCustomerBlocked)
		case errs.Is(err, commands.ErrProductNotFound):
			abortWithMessage(c, http.StatusNotFound, err, "Product not found")
		case errs.Is(err, commands.ErrMissingCustomerFields),
			errs.Is(err, commands.ErrInsufficientStock),
			errs.Is(err, commands.ErrInvalidOrder):
			abortWithMessage(c, http.StatusBadRequest, err, "Invalid order")
		case errs.Is(err, commands.ErrIdempotencyKeyReused):
			httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency-Key was already used for a different order", nil)
		case errs.Is(err, commands.ErrIdempotencyInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order request is currently being processed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to place order", nil)
		}
		return
	}

	if result.IsReplayed {
		c.Header(headerIdempotentReplayed, "true")
	}
	render(c, http.StatusCreated, resdto.FromPlaceOrderResult, result)
}

// @Summary Track order
// @Description Look up an order by public id and the phone number used at checkout
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.TrackOrderRequest true "Public order id and phone"
// @Success 200 {object} resdto.TrackingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/track [post]
func (h *OrderHandler) Track(c *gin.Context) {
	var req reqdto.TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.Track(c.Request.Context(), req.OrderID, req.Phone)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromTrackingView, view)
}

// getIdempotencyKey returns nil when the header is absent.
func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader(middleware.HeaderIdempotencyKey)
	if keyStr == "" {
		return nil, nil
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, errors.New("invalid idempotency key format")
	}
	return &key, nil
}
