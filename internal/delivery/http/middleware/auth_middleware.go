package middleware

import (
	"net/http"
	"strings"

	"clinic-portal-backend/config"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token, rejects revoked sessions, and
// loads the fresh account record. Role and activity flags always come from
// the database, never from token claims, so deactivations and role changes
// take effect immediately.
func AuthMiddleware(cfg *config.Config, revoker *auth.Revoker, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if header := c.GetHeader("Authorization"); header != "" {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		if revoker.IsRevoked(c.Request.Context(), claims.ID) {
			response.Error(c, http.StatusUnauthorized, "Token has been revoked", nil)
			c.Abort()
			return
		}

		account, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Account not found", nil)
			c.Abort()
			return
		}
		if !account.IsActive {
			response.Error(c, http.StatusForbidden, "This account has been deactivated", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), account.ID)
		c.Set(string(domain.KeyUserEmail), account.Email)
		c.Set(string(domain.KeyUserRole), string(account.Role))
		c.Set(string(domain.KeyActor), account)
		c.Set(string(domain.KeyTokenJTI), claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(string(domain.KeyTokenExp), claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// Actor returns the account loaded by AuthMiddleware, or nil outside an
// authenticated route.
func Actor(c *gin.Context) *domain.Account {
	v, ok := c.Get(string(domain.KeyActor))
	if !ok {
		return nil
	}
	account, _ := v.(*domain.Account)
	return account
}
