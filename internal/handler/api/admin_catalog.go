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

// AdminCatalogHandler serves product and coupon management for the console.
type AdminCatalogHandler struct {
	productCmds commands.ProductCommands
	productQ    queries.ProductQueries
	couponCmds  commands.CouponCommands
	couponQ     queries.CouponQueries
}

func NewAdminCatalogHandler(
	productCmds commands.ProductCommands,
	productQ queries.ProductQueries,
	couponCmds commands.CouponCommands,
	couponQ queries.CouponQueries,
) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		productCmds: productCmds,
		productQ:    productQ,
		couponCmds:  couponCmds,
		couponQ:     couponQ,
	}
}

// @Summary List all products
// @Description Includes hidden products
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Router /admin/products [get]
func (h *AdminCatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.productQ.ListAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromProductViews, views)
}

// @Summary Create product
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/products [post]
func (h *AdminCatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.productCmds.Create(c.Request.Context(), in)
	if err != nil {
		h.abortProductError(c, err)
		return
	}
	render(c, http.StatusCreated, resdto.FromProductView, view)
}

// @Summary Update product
// @Description Partial update; an explicit null original_price clears it
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/products/{id} [put]
func (h *AdminCatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid product id")
	if !ok {
		return
	}
	var req reqdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.productCmds.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		h.abortProductError(c, err)
		return
	}
	render(c, http.StatusOK, resdto.FromProductView, view)
}

// @Summary Delete product
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/products/{id} [delete]
func (h *AdminCatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid product id")
	if !ok {
		return
	}
	if err := h.productCmds.Delete(c.Request.Context(), id); err != nil {
		h.abortProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Product deleted successfully"})
}

func (h *AdminCatalogHandler) abortProductError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidProduct):
		abortWithMessage(c, http.StatusBadRequest, err, "Invalid product")
	case errs.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary List coupons
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.CouponResponse
// @Router /admin/coupons [get]
func (h *AdminCatalogHandler) ListCoupons(c *gin.Context) {
	views, err := h.couponQ.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	render(c, http.StatusOK, resdto.FromCouponViews, views)
}

// @Summary Create coupon
// @Description The code is stored upper-cased and must be unique
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CouponRequest true "Coupon"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/coupons [post]
func (h *AdminCatalogHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.couponCmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.abortCouponError(c, err)
		return
	}
	render(c, http.StatusCreated, resdto.FromCouponView, view)
}

// @Summary Update coupon
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body reqdto.CouponRequest true "Coupon"
// @Success 200 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/coupons/{id} [put]
func (h *AdminCatalogHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid coupon id")
	if !ok {
		return
	}
	var req reqdto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.couponCmds.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.abortCouponError(c, err)
		return
	}
	render(c, http.StatusOK, resdto.FromCouponView, view)
}

// @Summary Delete coupon
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/coupons/{id} [delete]
func (h *AdminCatalogHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid coupon id")
	if !ok {
		return
	}
	if err := h.couponCmds.Delete(c.Request.Context(), id); err != nil {
		h.abortCouponError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Coupon deleted successfully"})
}

func (h *AdminCatalogHandler) abortCouponError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidCouponArg):
		abortWithMessage(c, http.StatusBadRequest, err, "Invalid coupon")
	case errs.Is(err, commands.ErrCouponNotFound), errs.Is(err, queries.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errs.Is(err, commands.ErrDuplicateCoupon):
		abortWithMessage(c, http.StatusConflict, err, "Coupon code already exists")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
