package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/auth"
	"pickme-backend/pkg/logger"
)

// CurrentUser decodes the bearer token into the caller account. A missing, invalid or stale
// token leaves the caller unset; it never aborts, the guard chains decide what a missing caller
// means.
func CurrentUser(tokens *auth.JWTService, accounts domain.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			logger.Log.Debug("Ignoring invalid bearer token", zap.Error(err))
			c.Next()
			return
		}
		id, err := claims.AccountID()
		if err != nil {
			c.Next()
			return
		}

		// Load fresh from the store: the account may have been deleted since the token was issued.
		account, err := accounts.GetByID(c.Request.Context(), id)
		if err == nil {
			c.Set(string(domain.KeyCaller), account)
		}
		c.Next()
	}
}

// Caller returns the account set by CurrentUser, or nil.
func Caller(c *gin.Context) *domain.Account {
	v, ok := c.Get(string(domain.KeyCaller))
	if !ok {
		return nil
	}
	account, _ := v.(*domain.Account)
	return account
}

// RequireRole is the role gate in front of the guarded operations: no caller is 401, a caller
// with another role is 403.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if caller == nil {
			_ = c.Error(apperror.Unauthenticated(domain.MsgUnauthenticated))
			c.Abort()
			return
		}
		if !slices.Contains(roles, caller.Role) {
			_ = c.Error(apperror.Forbidden(domain.MsgForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}
