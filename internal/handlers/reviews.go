package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"storefront/internal/reviews"
	"storefront/internal/validation"
)

func addReview(cfg HandlerConfig, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.ReviewRequest
		if err := validation.BindQuery(c, &req, v); err != nil {
			return
		}

		_, err := cfg.Reviews.Add(c.Request.Context(), c.Param("product_id"), req.Rating, req.Comment, req.SessionID, currentUserID(c))
		if err != nil {
			switch {
			case errors.Is(err, reviews.ErrInvalidRating):
				detail(c, http.StatusBadRequest, "Rating must be between 1 and 5")
			case errors.Is(err, reviews.ErrProductNotFound):
				detail(c, http.StatusNotFound, "Product not found")
			default:
				internalError(c, cfg.Log, "add review", err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review added successfully"})
	}
}

func listReviews(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cfg.Reviews.List(c.Request.Context(), c.Param("product_id"))
		if err != nil {
			internalError(c, cfg.Log, "list reviews", err)
			return
		}
		if list == nil {
			list = []reviews.Review{}
		}
		c.JSON(http.StatusOK, list)
	}
}
