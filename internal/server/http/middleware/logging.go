package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs information about incoming requests using slog. Once the
// identity middleware has resolved the caller, the line carries the account
// so ledger mutations can be traced back to a wallet.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if account := c.GetString(AccountIDContextKey); account != "" {
			attrs = append(attrs, slog.String("account", account))
		}
		logger.Info("http request", attrs...)
	}
}
