package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "laundromat/internal/pkg/auth"
)

const (
	// AccountIDContextKey is a gin context key for the gateway-asserted caller account.
	AccountIDContextKey = "accountID"
	authCookieName      = "laundromat_token"
	// OperatorKeyHeader carries the privileged operator secret on admin registration.
	OperatorKeyHeader = "X-Operator-Key"
)

// TokenParser resolves an account identifier from an identity token.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// IdentityRequired resolves the caller's account from the wallet gateway
// token before the handler runs.
func IdentityRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		accountID, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(AccountIDContextKey, accountID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}
