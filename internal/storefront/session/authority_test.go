//go:build unit

package session_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/notify"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/logger"
	"zaylux-store/internal/storefront/remote"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authority is an in-memory order service speaking the storefront wire
// format, backed by the domain rules.
type authority struct {
	mu       sync.Mutex
	now      time.Time
	products map[string]remote.Product
	coupons  map[coupon.Code]*coupon.Coupon
	orders   []*order.Order
	restock  map[string]bool
	server   *httptest.Server
}

func newAuthority() *authority {
	gin.SetMode(gin.TestMode)
	a := &authority{
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		products: map[string]remote.Product{},
		coupons:  map[coupon.Code]*coupon.Coupon{},
		restock:  map[string]bool{},
	}
	router := gin.New()
	router.GET("/api/products/:id", a.getProduct)
	router.POST("/api/coupons/validate", a.validateCoupon)
	router.POST("/api/orders", a.placeOrder)
	router.POST("/api/orders/track", a.trackOrder)
	router.POST("/api/notify-me", a.notifyMe)
	a.server = httptest.NewServer(router)
	return a
}

func (a *authority) Close() {
	a.server.Close()
}

func (a *authority) client() *remote.Client {
	return remote.NewClientWithHTTP(config.StorefrontConfig{
		APIURL:  a.server.URL,
		Breaker: config.BreakerConfig{MaxRequests: 1, Timeout: time.Minute},
	}, a.server.Client(), logger.Discard())
}

func (a *authority) addProduct(name string, price money.Money, stock int) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := uuid.NewString()
	a.products[id] = remote.Product{
		ID:        id,
		NameEN:    name,
		NameAR:    name,
		Category:  catalog.CategoryPerfume.String(),
		Price:     price,
		Quantity:  stock,
		Images:    []string{"/images/" + id + ".jpg"},
		IsVisible: true,
	}
	return id
}

func (a *authority) addCoupon(code string, pct int64, minimum *money.Money) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := coupon.ReconstructCoupon(uuid.New(), coupon.Params{
		Code:          coupon.NormalizeCode(code),
		Percentage:    coupon.MustPercentage(pct),
		MinOrderValue: minimum,
		Active:        true,
	}, 0, a.now)
	a.coupons[c.Code()] = c
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": gin.H{"message": msg}})
}

func (a *authority) getProduct(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.products[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *authority) validateCoupon(c *gin.Context) {
	var req struct {
		Code       string      `json:"code"`
		OrderTotal money.Money `json:"order_total"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	cp, ok := a.coupons[coupon.NormalizeCode(req.Code)]
	if !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": coupon.MsgNotFound})
		return
	}
	eval, err := cp.Evaluate(req.OrderTotal, a.now)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": coupon.RejectionMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":               true,
		"discount_percentage": eval.Percentage.Decimal(),
		"discount_amount":     eval.DiscountAmount,
		"message":             coupon.MsgApplied,
	})
}

func (a *authority) placeOrder(c *gin.Context) {
	var req remote.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	customer, err := order.NewCustomer(req.CustomerName, req.Phone, req.City, req.Address)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid request")
			return
		}
		items = append(items, order.Item{
			ProductID: id,
			Name:      catalog.LocalizedText{EN: it.NameEN, AR: it.NameAR},
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	var code *coupon.Code
	if req.CouponCode != nil {
		normalized := coupon.NormalizeCode(*req.CouponCode)
		code = &normalized
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	publicID := order.FormatPublicID("ZAY", order.FirstSequence+int64(len(a.orders)))
	o, err := order.Place(publicID, order.PlaceParams{
		Customer:   customer,
		Items:      items,
		Totals:     order.Totals{Subtotal: req.Subtotal, Discount: req.Discount, Total: req.Total},
		CouponCode: code,
	}, a.now)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	a.orders = append(a.orders, o)
	c.JSON(http.StatusCreated, gin.H{"public_order_id": publicID, "order": orderJSON(o)})
}

func (a *authority) trackOrder(c *gin.Context) {
	var req struct {
		OrderID string `json:"order_id"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.orders {
		if o.MatchesTracking(req.OrderID, req.Phone) {
			c.JSON(http.StatusOK, orderJSON(o))
			return
		}
	}
	fail(c, http.StatusNotFound, "Order not found")
}

func (a *authority) notifyMe(c *gin.Context) {
	var req remote.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.products[req.ProductID]
	if !ok {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	r, err := notify.NewRequest(uuid.MustParse(p.ID), p.Quantity, req.Phone, req.Name, a.now)
	if errors.Is(err, notify.ErrProductInStock) {
		fail(c, http.StatusBadRequest, "Product is in stock")
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	key := p.ID + "/" + r.Phone
	if a.restock[key] {
		fail(c, http.StatusBadRequest, "You have already requested notification for this product")
		return
	}
	a.restock[key] = true
	c.JSON(http.StatusCreated, gin.H{
		"id":         r.ID.String(),
		"product_id": p.ID,
		"phone":      r.Phone,
		"name":       r.Name,
		"created_at": r.CreatedAt,
	})
}

func orderJSON(o *order.Order) gin.H {
	t := o.Totals()
	return gin.H{
		"id":              o.ID().String(),
		"public_order_id": o.PublicID().String(),
		"customer_name":   o.Customer().Name,
		"phone":           o.Customer().Phone,
		"subtotal":        t.Subtotal,
		"discount":        t.Discount,
		"total":           t.Total,
		"payment_method":  o.PaymentMethod(),
		"status":          o.Status().String(),
		"created_at":      o.CreatedAt(),
	}
}

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return m
}
