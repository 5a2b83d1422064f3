package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

func listProducts(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cfg.Products.List(c.Request.Context(), c.Query("category"), c.Query("search"))
		if err != nil {
			internalError(c, cfg.Log, "list products", err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProduct(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := cfg.Products.Get(c.Request.Context(), c.Param("product_id"))
		if err != nil {
			internalError(c, cfg.Log, "get product", err)
			return
		}
		if p == nil {
			detail(c, http.StatusNotFound, "Product not found")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func listCategories(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := cfg.Products.Categories(c.Request.Context())
		if err != nil {
			internalError(c, cfg.Log, "list categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
