package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// detail writes the error body shape used across the API.
func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// internalError logs the cause and answers with a generic 500.
func internalError(c *gin.Context, log *zap.SugaredLogger, op string, err error) {
	log.Errorw(op, "error", err, "path", c.FullPath())
	detail(c, http.StatusInternalServerError, "internal server error")
}
