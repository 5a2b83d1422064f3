package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/orders"
	"storefront/internal/reviews"
	"storefront/internal/validation"
)

// HandlerConfig bundles the services the HTTP layer depends on.
type HandlerConfig struct {
	Auth     *auth.Service
	Products *catalog.Store
	Carts    *cart.Store
	Checkout *checkout.Service
	Orders   *orders.Store
	Reviews  *reviews.Service

	// PublicBaseURL, when set, overrides the request host for checkout
	// redirect URLs. Needed behind proxies that rewrite Host.
	PublicBaseURL string

	Log *zap.SugaredLogger
}

// RegisterRoutes wires every API route onto the engine.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.Use(Identity(cfg.Auth))

	r.POST("/auth/register", registerUser(cfg, v))
	r.POST("/auth/login", loginUser(cfg, v))
	r.GET("/auth/me", currentUserInfo())

	r.GET("/products", listProducts(cfg))
	r.GET("/products/:product_id", getProduct(cfg))
	r.GET("/categories", listCategories(cfg))

	r.POST("/products/:product_id/reviews", addReview(cfg, v))
	r.GET("/products/:product_id/reviews", listReviews(cfg))

	r.POST("/cart/add", addToCart(cfg, v))
	r.GET("/cart/:session_id", getCart(cfg))
	r.PUT("/cart/update/:item_id", updateCartItem(cfg))
	r.DELETE("/cart/remove/:item_id", removeCartItem(cfg))

	r.POST("/checkout/session", createCheckoutSession(cfg, v))
	r.GET("/checkout/status/:session_id", checkoutStatus(cfg))
	r.POST("/webhook/stripe", stripeWebhook(cfg))

	r.GET("/orders", listOrders(cfg))
}
