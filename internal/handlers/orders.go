package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/orders"
)

func listOrders(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var list []orders.Order
		var err error
		if u := CurrentUser(c); u != nil {
			list, err = cfg.Orders.ListByUser(ctx, u.ID)
		} else if sessionID := c.Query("session_id"); sessionID != "" {
			list, err = cfg.Orders.ListBySession(ctx, sessionID)
		} else {
			detail(c, http.StatusUnauthorized, "Authentication or session_id required")
			return
		}
		if err != nil {
			internalError(c, cfg.Log, "list orders", err)
			return
		}
		if list == nil {
			list = []orders.Order{}
		}
		c.JSON(http.StatusOK, list)
	}
}
