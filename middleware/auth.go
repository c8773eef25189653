package middleware

import (
	"strings"

	"authors-api/helper"
	"authors-api/models"
	"authors-api/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = &helper.HTTPHelper{}

const userKey = "user"

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, models.MsgNotAuthenticated, HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if !authenticate(c, authService, authHeader) {
			return
		}

		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token.
func OptionalAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !authenticate(c, authService, authHeader) {
			return
		}

		c.Next()
	}
}

func authenticate(c *gin.Context, authService services.AuthService, authHeader string) bool {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
		c.Abort()
		return false
	}

	user, err := authService.Authenticate(tokenString)
	if err != nil {
		HTTPHelper.SendServiceError(c, err)
		c.Abort()
		return false
	}

	c.Set(userKey, user)
	return true
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
