package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/server/http/middleware"
)

// CurrentAccountID extracts the gateway-asserted caller account from context.
func CurrentAccountID(c *gin.Context) string {
	val, ok := c.Get(middleware.AccountIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// abortWithError maps a ledger error kind to an HTTP status and writes the
// reason.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
