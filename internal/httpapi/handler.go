// Package httpapi wires the gin router, middleware, and handlers for
// the storefront REST surface.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/admin"
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpx"
	"storefront/internal/order"
	"storefront/internal/review"
	"storefront/internal/user"
)

// CheckoutRunner is the checkout transaction executor as the handlers
// see it; *order.Checkout implements it.
type CheckoutRunner interface {
	Run(ctx context.Context, userID string, shipping *order.ShippingInfo, payment *order.PaymentInfo) (*order.Order, error)
}

type Deps struct {
	Users    user.Repository
	Catalog  catalog.Repository
	Carts    cart.Repository
	Orders   order.Repository
	Reviews  review.Repository
	Admin    admin.Repository
	Checkout CheckoutRunner
	Tokens   *auth.Tokens
}

type Handler struct {
	users    user.Repository
	catalog  catalog.Repository
	carts    cart.Repository
	orders   order.Repository
	reviews  review.Repository
	admin    admin.Repository
	checkout CheckoutRunner
	tokens   *auth.Tokens
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		users:    d.Users,
		catalog:  d.Catalog,
		carts:    d.Carts,
		orders:   d.Orders,
		reviews:  d.Reviews,
		admin:    d.Admin,
		checkout: d.Checkout,
		tokens:   d.Tokens,
	}
}

func API(cfg config.Config, h *Handler) *gin.Engine {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), gin.Recovery())
	r.Use(httpx.NewMetrics("api").Middleware())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", httpx.MetricsHandler())
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/categories", h.ListCategories)
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/products/:id/reviews", h.ListProductReviews)

		authed := api.Group("")
		authed.Use(h.RequireAuth())
		{
			authed.GET("/auth/me", h.Me)
			authed.GET("/cart", h.GetCart)
			authed.POST("/cart/items", h.AddCartItem)
			authed.PATCH("/cart/items/:itemId", h.UpdateCartItem)
			authed.DELETE("/cart/items/:itemId", h.RemoveCartItem)
			authed.POST("/checkout", h.Checkout)
			authed.GET("/orders", h.ListMyOrders)
			authed.GET("/orders/:orderId", h.GetMyOrder)
			authed.POST("/products/:id/reviews", h.CreateProductReview)
		}

		adm := api.Group("/admin")
		adm.Use(h.RequireAuth(), h.RequireAdmin())
		{
			adm.GET("/summary", h.AdminSummary)
			adm.GET("/orders", h.AdminListOrders)
			adm.GET("/products", h.AdminListProducts)
			adm.POST("/products", h.AdminCreateProduct)
			adm.PUT("/products/:id", h.AdminUpdateProduct)
		}
	}
	return r
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type", "Authorization"}

	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
