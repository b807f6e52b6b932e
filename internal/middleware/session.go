package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
)

// CheckSingleSession validates the JWT's JTI against the active session in
// Redis. A stale JTI means a newer login replaced this session.
func CheckSingleSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		// Only enforce for account tokens.
		if claims.TokenType != service.TokenTypeAccount {
			c.Next()
			return
		}

		if err := authService.ValidateAccountSession(c.Request.Context(), claims.AccountID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
