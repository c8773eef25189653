package handlers

import (
	"net/http"
	"time"

	"authors-api/config"
	"authors-api/helper"
	"authors-api/logger"
	"authors-api/middleware"
	"authors-api/repositories"
	"authors-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	httpHelper := helper.NewHTTPHelper()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	engagementRepo := repositories.NewEngagementRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT())
	profileService := services.NewProfileService(profileRepo, userRepo)
	articleService := services.NewArticleService(articleRepo, tagRepo, engagementRepo)
	engagementService := services.NewEngagementService(articleRepo, engagementRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	authHandler := NewAuthHandler(authService, httpHelper)
	profileHandler := NewProfileHandler(profileService, httpHelper)
	articleHandler := NewArticleHandler(articleService, httpHelper)
	engagementHandler := NewEngagementHandler(engagementService, httpHelper)
	tagHandler := NewTagHandler(tagService, httpHelper)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Error("invalid TRUSTED_PROXIES, using socket address", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Recovery(), middleware.RequestLogger(), corsMiddleware(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/registration", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/user", requireAuth, authHandler.GetUser)
		}

		profiles := v1.Group("/profiles", requireAuth)
		{
			profiles.GET("/me", profileHandler.GetMe)
			profiles.PUT("/me", profileHandler.UpdateMe)
			profiles.PATCH("/me", profileHandler.UpdateMe)
			profiles.DELETE("/me", profileHandler.DeleteMe)
			profiles.GET("/me/followers", profileHandler.GetFollowers)
			profiles.GET("/me/followings", profileHandler.GetFollowings)
			profiles.GET("/all", profileHandler.GetAll)
			profiles.POST("/:id/follow", profileHandler.Follow)
			profiles.POST("/:id/unfollow", profileHandler.Unfollow)
		}

		articles := v1.Group("/articles")
		{
			articles.POST("", requireAuth, articleHandler.CreateArticle)
			articles.GET("", requireAuth, articleHandler.GetArticles)
			articles.GET("/bookmarked", requireAuth, articleHandler.GetBookmarked)

			// Safe methods are public; mutations are checked against the author.
			articles.GET("/:id", optionalAuth, articleHandler.GetArticle)
			articles.PUT("/:id", optionalAuth, articleHandler.UpdateArticle)
			articles.PATCH("/:id", optionalAuth, articleHandler.PatchArticle)
			articles.DELETE("/:id", optionalAuth, articleHandler.DeleteArticle)

			articles.POST("/:id/rate", requireAuth, engagementHandler.Rate)
			articles.POST("/:id/bookmark", requireAuth, engagementHandler.Bookmark)
			articles.POST("/:id/clap", requireAuth, engagementHandler.Clap)
			articles.POST("/:id/comment", requireAuth, engagementHandler.Comment)
		}

		tags := v1.Group("/tags", requireAuth)
		{
			tags.GET("", tagHandler.GetTags)
			tags.POST("", tagHandler.CreateTag)
		}
	}

	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	allowAll := len(cfg.CORSOrigins) == 0
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}

	return cors.New(corsCfg)
}
