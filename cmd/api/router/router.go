package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-fusion/cmd/api/handlers"
	"blog-fusion/cmd/api/middleware"
	"blog-fusion/cmd/api/services"
	"blog-fusion/db"
	_ "blog-fusion/docs"
	"blog-fusion/repositories"
)

// Deps 는 라우터가 연결할 서비스 묶음이다. Analyzer/Generator/Billing 은
// 환경 구성에 따라 nil 일 수 있으며, 그 경우 해당 라우트는 등록되지 않는다.
type Deps struct {
	Auth      *services.AuthService
	Blogs     *services.BlogService
	Saves     *services.SaveService
	Analyzer  *services.AnalyzerService
	Generator *services.GeneratorService
	Billing   *services.BillingService
	Watcher   *repositories.BlogWatcher
}

func New(deps Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/auth/google/login", handlers.GoogleLoginHandler(deps.Auth))
		api.GET("/auth/google/callback", handlers.GoogleCallbackHandler(deps.Auth))
		api.GET("/users/profile", handlers.GetUserProfileHandler(deps.Auth))

		api.GET("/blogs", handlers.ListBlogsHandler(deps.Blogs, deps.Auth))
		api.GET("/blogs/saved", handlers.ListSavedBlogsHandler(deps.Saves, deps.Auth))
		api.GET("/blogs/:id", handlers.GetBlogHandler(deps.Blogs, deps.Auth))
		api.POST("/blogs", handlers.CreateBlogHandler(deps.Blogs, deps.Auth))
		api.PUT("/blogs/:id", handlers.UpdateBlogHandler(deps.Blogs, deps.Auth))
		api.DELETE("/blogs/:id", handlers.DeleteBlogHandler(deps.Blogs, deps.Auth))

		api.POST("/blogs/:id/like", handlers.ToggleLikeHandler(deps.Blogs, deps.Auth))
		api.POST("/blogs/:id/comments", handlers.AddCommentHandler(deps.Blogs, deps.Auth))
		api.POST("/blogs/:id/share", handlers.ShareBlogHandler(deps.Blogs, deps.Auth))
		api.POST("/blogs/:id/save", handlers.ToggleSaveHandler(deps.Saves, deps.Auth))
		api.DELETE("/blogs/:id/save", handlers.UnsaveBlogHandler(deps.Saves, deps.Auth))

		if deps.Watcher != nil {
			api.GET("/blogs/:id/events", handlers.StreamEngagementHandler(deps.Blogs, deps.Watcher))
		}
		if deps.Analyzer != nil {
			api.POST("/analyze", handlers.AnalyzeHandler(deps.Analyzer, deps.Auth))
		}
		if deps.Generator != nil {
			api.POST("/generate-blog", handlers.GenerateBlogHandler(deps.Generator, deps.Auth))
		}
		if deps.Billing != nil {
			api.POST("/create-checkout-session", handlers.CreateCheckoutHandler(deps.Billing, deps.Auth))
			api.PUT("/billing/plan", handlers.ApplyPlanHandler(deps.Billing, deps.Auth))
		}
	}

	return r
}
