package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"storefront/internal/auth"
	"storefront/internal/validation"
)

func registerUser(cfg HandlerConfig, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindJSON(c, &req, v); err != nil {
			return
		}

		u, err := cfg.Auth.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				detail(c, http.StatusBadRequest, "Email already registered")
				return
			}
			internalError(c, cfg.Log, "register user", err)
			return
		}
		c.JSON(http.StatusOK, u.Summary())
	}
}

func loginUser(cfg HandlerConfig, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindJSON(c, &req, v); err != nil {
			return
		}

		token, u, err := cfg.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				detail(c, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			internalError(c, cfg.Log, "login user", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"user":         u.Summary(),
		})
	}
}

func currentUserInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		c.JSON(http.StatusOK, u.Summary())
	}
}
