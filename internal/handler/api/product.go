package api

import (
	"net/http"

	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	q queries.ProductQueries
}

func NewProductHandler(q queries.ProductQueries) *ProductHandler {
	return &ProductHandler{q: q}
}

// @Summary List products
// @Description List visible products, newest first
// @Tags products
// @Produce json
// @Param category query string false "perfume, drone or watch"
// @Success 200 {array} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.q.ListPublic(c.Request.Context(), c.Query("category"))
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCategory) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromProductViews, views)
}

// @Summary Get product
// @Description Get a visible product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		return
	}
	view, err := h.q.GetPublic(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrProductNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromProductView, view)
}
