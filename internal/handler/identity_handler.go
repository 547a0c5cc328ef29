package handler

import (
	"net/http"
	"strings"

	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

type IdentityHandler struct {
	svc *service.IdentityService
}

func NewIdentityHandler(svc *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{svc: svc}
}

// Sync materializes the caller's user record from the presented provider
// token. Idempotent; first sight creates, later calls return the same row.
func (h *IdentityHandler) Sync(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing identity token"})
		return
	}
	claims, err := pkg.ParseIdentityToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid identity token"})
		return
	}

	user, err := h.svc.ResolveOrCreate(c.Request.Context(), claims)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     user.ID,
		"handle": user.Handle,
		"name":   user.Name,
	})
}
