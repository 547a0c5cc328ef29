package router

import (
	"github.com/MuxN4/linkup/internal/handler"
	"github.com/MuxN4/linkup/internal/middleware"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"github.com/MuxN4/linkup/internal/repository/redis"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	db := mysql.DB

	// cache wiring is optional; everything degrades to the store
	var likeCache *redis.LikeCache
	var lock *redis.DistLock
	var identityCache *redis.IdentityCache
	if redis.Client != nil {
		likeCache = redis.NewLikeCache()
		lock = &redis.DistLock{RDB: redis.Client}
		identityCache = &redis.IdentityCache{}
	}

	identitySvc := service.NewIdentityService(db, identityCache)

	identity := handler.NewIdentityHandler(identitySvc)
	post := handler.NewPostHandler(service.NewPostService(db, likeCache), service.NewFeedService(db))
	like := handler.NewLikeHandler(service.NewLikeService(db, likeCache, lock))
	follow := handler.NewFollowHandler(service.NewFollowService(db))
	notification := handler.NewNotificationHandler(service.NewNotificationService(db))
	profile := handler.NewProfileHandler(service.NewProfileService(db))

	// identity sync carries its own token handling
	r.POST("/api/identity/sync", identity.Sync)

	// read surfaces work without a session
	readGroup := r.Group("/api")
	readGroup.Use(middleware.OptionalAuth(identitySvc))
	{
		readGroup.GET("/feed", post.Feed)
		readGroup.GET("/post/:id/comments", post.ListComments)
		readGroup.GET("/post/:id/likes/count", like.Count)
		readGroup.GET("/follow/followers", follow.ListFollowers)
		readGroup.GET("/follow/followings", follow.ListFollowings)
		readGroup.GET("/follow/relation", follow.Relation)
		readGroup.GET("/profile/:handle", profile.Get)
		readGroup.GET("/profile/:handle/posts", profile.Posts)
		readGroup.GET("/profile/:handle/likes", profile.LikedPosts)
	}

	// mutations require a resolved acting user
	authGroup := r.Group("/api")
	authGroup.Use(middleware.Auth(identitySvc))
	{
		authGroup.POST("/post", post.CreatePost)
		authGroup.DELETE("/post/:id", post.DeletePost)
		authGroup.POST("/post/:id/comments", post.CreateComment)
		authGroup.POST("/post/:id/like", like.Toggle)
		authGroup.GET("/post/:id/liked", like.IsLiked)
		authGroup.POST("/follow/:id", follow.Toggle)
		authGroup.GET("/notifications", notification.List)
		authGroup.POST("/notifications/read", notification.MarkRead)
		authGroup.GET("/notifications/unread-count", notification.UnreadCount)
		authGroup.PUT("/profile", profile.Update)
		authGroup.GET("/users/suggested", profile.Suggested)
	}

	return r
}
