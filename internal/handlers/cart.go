package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront/internal/cart"
	"storefront/internal/validation"
)

func addToCart(cfg HandlerConfig, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.AddToCartRequest
		if err := validation.BindQuery(c, &req, v); err != nil {
			return
		}
		ctx := c.Request.Context()

		p, err := cfg.Products.Get(ctx, req.ProductID)
		if err != nil {
			internalError(c, cfg.Log, "add to cart", err)
			return
		}
		if p == nil {
			detail(c, http.StatusNotFound, "Product not found")
			return
		}
		if p.Stock < req.Quantity {
			detail(c, http.StatusBadRequest, "Not enough stock available")
			return
		}

		existing, err := cfg.Carts.Find(ctx, req.SessionID, req.ProductID)
		if err != nil {
			internalError(c, cfg.Log, "add to cart", err)
			return
		}
		if existing != nil {
			newQuantity := existing.Quantity + req.Quantity
			if p.Stock < newQuantity {
				detail(c, http.StatusBadRequest, "Not enough stock available")
				return
			}
			if err := cfg.Carts.SetQuantity(ctx, existing.ID, newQuantity); err != nil {
				internalError(c, cfg.Log, "add to cart", err)
				return
			}
		} else {
			item := cart.Item{
				ID:        uuid.NewString(),
				UserID:    currentUserID(c),
				SessionID: req.SessionID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				CreatedAt: time.Now().UTC(),
			}
			if err := cfg.Carts.Put(ctx, item); err != nil {
				internalError(c, cfg.Log, "add to cart", err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

func getCart(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		items, err := cfg.Carts.BySession(ctx, c.Param("session_id"))
		if err != nil {
			internalError(c, cfg.Log, "get cart", err)
			return
		}

		view := cart.View{Items: []cart.Line{}}
		for _, item := range items {
			p, err := cfg.Products.Get(ctx, item.ProductID)
			if err != nil {
				internalError(c, cfg.Log, "get cart", err)
				return
			}
			if p == nil {
				// product removed from the catalog; drop the line
				continue
			}
			itemTotal := p.Price * float64(item.Quantity)
			view.Items = append(view.Items, cart.Line{
				Item:      item,
				Product:   *p,
				ItemTotal: itemTotal,
			})
			view.TotalAmount += itemTotal
		}
		view.ItemsCount = len(view.Items)
		c.JSON(http.StatusOK, view)
	}
}

func updateCartItem(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity, err := strconv.Atoi(c.Query("quantity"))
		if err != nil {
			detail(c, http.StatusBadRequest, "invalid quantity")
			return
		}
		ctx := c.Request.Context()
		itemID := c.Param("item_id")

		if quantity <= 0 {
			if err := cfg.Carts.Delete(ctx, itemID); err != nil {
				internalError(c, cfg.Log, "update cart item", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
			return
		}

		item, err := cfg.Carts.Get(ctx, itemID)
		if err != nil {
			internalError(c, cfg.Log, "update cart item", err)
			return
		}
		if item == nil {
			detail(c, http.StatusNotFound, "Cart item not found")
			return
		}

		p, err := cfg.Products.Get(ctx, item.ProductID)
		if err != nil {
			internalError(c, cfg.Log, "update cart item", err)
			return
		}
		if p != nil && p.Stock < quantity {
			detail(c, http.StatusBadRequest, "Not enough stock available")
			return
		}

		if err := cfg.Carts.SetQuantity(ctx, itemID, quantity); err != nil {
			internalError(c, cfg.Log, "update cart item", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

func removeCartItem(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cfg.Carts.Delete(c.Request.Context(), c.Param("item_id")); err != nil {
			internalError(c, cfg.Log, "remove cart item", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}
