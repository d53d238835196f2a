package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"zaylux-store/internal/handler/api"
	"zaylux-store/internal/handler/middleware"
	"zaylux-store/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	fx.In

	Product       *api.ProductHandler
	Coupon        *api.CouponHandler
	Order         *api.OrderHandler
	AdminAuth     *api.AdminAuthHandler
	AdminOrder    *api.AdminOrderHandler
	AdminCatalog  *api.AdminCatalogHandler
	AdminCustomer *api.AdminCustomerHandler
	Notify        *api.NotifyHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, requestLogger *middleware.RequestLogger, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, requestLogger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, requestLogger *middleware.RequestLogger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(requestLogger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/products", Handler: h.Product.List},
			{Method: http.MethodGet, Path: "/products/:id", Handler: h.Product.Get},
			{Method: http.MethodPost, Path: "/coupons/validate", Handler: h.Coupon.Validate},
			{Method: http.MethodPost, Path: "/orders", Handler: h.Order.Create},
			{Method: http.MethodPost, Path: "/orders/track", Handler: h.Order.Track},
			{Method: http.MethodPost, Path: "/notify-me", Handler: h.Notify.Create},
		})

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.AdminAuth.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: h.AdminAuth.Logout},
			})

			authRequired := admin.Group("")
			authRequired.Use(authMiddleware.RequireAdmin())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.AdminAuth.Me},

				{Method: http.MethodGet, Path: "/orders", Handler: h.AdminOrder.List},
				{Method: http.MethodGet, Path: "/orders/:id", Handler: h.AdminOrder.Get},
				{Method: http.MethodPut, Path: "/orders/:id/status", Handler: h.AdminOrder.UpdateStatus},

				{Method: http.MethodGet, Path: "/products", Handler: h.AdminCatalog.ListProducts},
				{Method: http.MethodPost, Path: "/products", Handler: h.AdminCatalog.CreateProduct},
				{Method: http.MethodPut, Path: "/products/:id", Handler: h.AdminCatalog.UpdateProduct},
				{Method: http.MethodDelete, Path: "/products/:id", Handler: h.AdminCatalog.DeleteProduct},

				{Method: http.MethodGet, Path: "/coupons", Handler: h.AdminCatalog.ListCoupons},
				{Method: http.MethodPost, Path: "/coupons", Handler: h.AdminCatalog.CreateCoupon},
				{Method: http.MethodPut, Path: "/coupons/:id", Handler: h.AdminCatalog.UpdateCoupon},
				{Method: http.MethodDelete, Path: "/coupons/:id", Handler: h.AdminCatalog.DeleteCoupon},

				{Method: http.MethodGet, Path: "/customers", Handler: h.AdminCustomer.List},
				{Method: http.MethodGet, Path: "/customers/:phone/orders", Handler: h.AdminCustomer.Orders},
				{Method: http.MethodPost, Path: "/customers/:phone/block", Handler: h.AdminCustomer.Block},
				{Method: http.MethodDelete, Path: "/customers/:phone/block", Handler: h.AdminCustomer.Unblock},

				{Method: http.MethodGet, Path: "/notify-requests", Handler: h.Notify.Demand},
				{Method: http.MethodGet, Path: "/notify-requests/:product_id", Handler: h.Notify.ByProduct},

				{Method: http.MethodGet, Path: "/dashboard/stats", Handler: h.AdminCustomer.DashboardStats},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
