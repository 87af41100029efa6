// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"safepost/internal/delivery/http/middleware"
	"safepost/internal/delivery/http/router/handler"
	"safepost/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	PostHandler     *handler.PostHandler
	CategoryHandler *handler.CategoryHandler
	TagHandler      *handler.TagHandler
	UserHandler     *handler.UserHandler
	FileHandler     *handler.FileHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	postHandler     *handler.PostHandler
	categoryHandler *handler.CategoryHandler
	tagHandler      *handler.TagHandler
	userHandler     *handler.UserHandler
	fileHandler     *handler.FileHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		postHandler:     params.PostHandler,
		categoryHandler: params.CategoryHandler,
		tagHandler:      params.TagHandler,
		userHandler:     params.UserHandler,
		fileHandler:     params.FileHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authenticate runs on every route and only resolves identity; it never
// rejects, so public routes stay reachable with a stale or missing token.
// RequireAuth / RequireRole do the actual gating on restricted routes.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	api := e.Group("/api/v1")

	// Health check endpoint
	api.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/profile", r.authHandler.GetProfile, r.authMiddleware.RequireAuth)
	}

	// Post routes: reads are public, writes require a signed-in author.
	postGroup := api.Group("/posts")
	{
		postGroup.GET("", r.postHandler.ListPublished)
		postGroup.GET("/search", r.postHandler.Search)
		postGroup.GET("/drafts", r.postHandler.ListDrafts, r.authMiddleware.RequireAuth)
		postGroup.GET("/:id", r.postHandler.GetPost)
		postGroup.POST("", r.postHandler.CreatePost, r.authMiddleware.RequireAuth)
		postGroup.PUT("/:id", r.postHandler.UpdatePost, r.authMiddleware.RequireAuth)
		postGroup.DELETE("/:id", r.postHandler.DeletePost, r.authMiddleware.RequireAuth)

		postGroup.GET("/:id/likes", r.postHandler.GetLikeStatus)
		postGroup.POST("/:id/likes", r.postHandler.ToggleLike, r.authMiddleware.RequireAuth)
	}

	// Category routes
	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", r.categoryHandler.ListCategories)
		categoryGroup.POST("", r.categoryHandler.CreateCategory, r.authMiddleware.RequireAuth)
		categoryGroup.PUT("/:id", r.categoryHandler.UpdateCategory, r.authMiddleware.RequireAuth)
		categoryGroup.DELETE("/:id", r.categoryHandler.DeleteCategory, r.authMiddleware.RequireAuth)
	}

	// Tag routes: reads are public, management is admin-only.
	tagGroup := api.Group("/tags")
	{
		tagGroup.GET("", r.tagHandler.ListTags)
		tagGroup.POST("", r.tagHandler.CreateTags, r.authMiddleware.RequireRole(entity.RoleAdmin))
		tagGroup.DELETE("/:id", r.tagHandler.DeleteTag, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	// Public profile routes
	userGroup := api.Group("/users")
	{
		userGroup.GET("/:id/profile", r.userHandler.GetPublicProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile, r.authMiddleware.RequireAuth)
	}

	// File routes: uploads and deletes are gated, serving is public.
	fileGroup := api.Group("/files")
	{
		fileGroup.POST("/:kind", r.fileHandler.Upload, r.authMiddleware.RequireAuth)
		fileGroup.GET("/:kind/:filename", r.fileHandler.Serve)
		fileGroup.DELETE("/:kind/:filename", r.fileHandler.Delete, r.authMiddleware.RequireAuth)
	}
}
