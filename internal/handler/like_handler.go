package handler

import (
	"net/http"
	"strconv"

	"github.com/MuxN4/linkup/internal/middleware"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	svc *service.LikeService
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// Toggle flips the caller's like on a post and reports the final state.
func (h *LikeHandler) Toggle(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	liked, err := h.svc.Toggle(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *LikeHandler) IsLiked(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	liked, err := h.svc.IsLiked(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *LikeHandler) Count(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cnt, err := h.svc.Count(c.Request.Context(), postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}
