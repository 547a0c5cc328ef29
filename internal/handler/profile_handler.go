package handler

import (
	"net/http"
	"strconv"

	"github.com/MuxN4/linkup/internal/middleware"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

type UpdateProfileReq struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.svc.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	viewerID := middleware.UserID(c)
	following := false
	if viewerID != 0 && viewerID != profile.ID {
		following, _ = h.svc.IsFollowing(c.Request.Context(), viewerID, profile.ID)
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "following": following})
}

func (h *ProfileHandler) Posts(c *gin.Context) {
	profile, err := h.svc.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	views, err := h.svc.ListUserPosts(c.Request.Context(), profile.ID, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": views})
}

func (h *ProfileHandler) LikedPosts(c *gin.Context) {
	profile, err := h.svc.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	views, err := h.svc.ListLikedPosts(c.Request.Context(), profile.ID, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": views})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name, req.Bio, req.AvatarURL); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ProfileHandler) Suggested(c *gin.Context) {
	n, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.svc.SuggestUsers(c.Request.Context(), middleware.UserID(c), n)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": users})
}
