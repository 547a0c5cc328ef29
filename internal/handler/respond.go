package handler

import (
	"errors"
	"net/http"

	"github.com/MuxN4/linkup/internal/pkg"

	"github.com/gin-gonic/gin"
)

// respondErr maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy was already logged at the service layer and surfaces generically.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkg.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, pkg.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "service temporarily unavailable"})
	}
}
