package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kirana/backend/internal/infrastructure/auth"
	"github.com/kirana/backend/internal/interfaces/http/dto"
)

const (
	// ContextStoreID is the gin context key holding the authenticated
	// store's ID (the tenant ID).
	ContextStoreID = "store_id"
	// ContextStoreCode is the gin context key holding the store code.
	ContextStoreCode = "store_code"
)

// JWTAuth validates the Authorization bearer token and injects the
// store identity into the request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "malformed authorization header",
			})
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			message := "invalid token"
			if err == auth.ErrExpiredToken {
				message = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: message,
			})
			return
		}

		c.Set(ContextStoreID, claims.StoreID)
		c.Set(ContextStoreCode, claims.StoreCode)
		c.Next()
	}
}

// StoreID extracts the authenticated store ID from the gin context
func StoreID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextStoreID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// StoreCode extracts the authenticated store code from the gin context
func StoreCode(c *gin.Context) string {
	return c.GetString(ContextStoreCode)
}
