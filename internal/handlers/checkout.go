package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"storefront/internal/checkout"
	"storefront/internal/validation"
)

func createCheckoutSession(cfg HandlerConfig, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.CheckoutRequest
		if err := validation.BindQuery(c, &req, v); err != nil {
			return
		}

		redirect, err := cfg.Checkout.CreateSession(c.Request.Context(), req.SessionID, currentUserID(c), requestBaseURL(c, cfg))
		if err != nil {
			var stockErr *checkout.InsufficientStockError
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				detail(c, http.StatusBadRequest, "Cart is empty")
			case errors.As(err, &stockErr):
				detail(c, http.StatusBadRequest, stockErr.Error())
			case errors.Is(err, checkout.ErrInvalidTotal):
				detail(c, http.StatusBadRequest, "Invalid cart total")
			default:
				internalError(c, cfg.Log, "create checkout session", err)
			}
			return
		}
		c.JSON(http.StatusOK, redirect)
	}
}

func checkoutStatus(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := cfg.Checkout.Status(c.Request.Context(), c.Param("session_id"))
		if err != nil {
			internalError(c, cfg.Log, "checkout status", err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func stripeWebhook(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			detail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		err = cfg.Checkout.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			if errors.Is(err, checkout.ErrMissingSignature) {
				detail(c, http.StatusBadRequest, "Missing Stripe signature")
				return
			}
			detail(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// requestBaseURL derives the absolute base URL for checkout redirects.
func requestBaseURL(c *gin.Context, cfg HandlerConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
