package handler

import (
	"net/http"
	"strconv"

	"github.com/MuxN4/linkup/internal/middleware"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc  *service.PostService
	feed *service.FeedService
}

type CreatePostReq struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type CreateCommentReq struct {
	Content string `json:"content"`
}

func NewPostHandler(svc *service.PostService, feed *service.FeedService) *PostHandler {
	return &PostHandler{svc: svc, feed: feed}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), middleware.UserID(c), req.Content, req.ImageURL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.DeletePost(c.Request.Context(), middleware.UserID(c), postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), middleware.UserID(c), postID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	list, err := h.svc.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Feed serves the assembled feed; anonymous callers get liked_by_me=false.
func (h *PostHandler) Feed(c *gin.Context) {
	views, err := h.feed.ListPosts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": views})
}
