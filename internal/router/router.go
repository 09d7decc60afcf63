package router

import (
	"net/http"
	"time"

	"recipe-api/internal/config"
	"recipe-api/internal/dto"
	"recipe-api/internal/handler"
	"recipe-api/internal/middleware"
	"recipe-api/internal/models"
	"recipe-api/internal/repository"
	"recipe-api/internal/service"
	"recipe-api/internal/utils"
	"recipe-api/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 上传槽位的过期时间，进程异常退出后槽位最终会被回收
const uploadSlotTTL = 2 * time.Minute

// SetupRouter 设置路由，redisClient 为 nil 时不启用限流
func SetupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	registry *prometheus.Registry,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	r := gin.New()
	metrics := middleware.NewHTTPMetrics(registry)

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(metrics.Middleware())

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "菜谱管理 API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.Static(cfg.Media.URL, cfg.Media.Root)

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// 初始化Service
	var uploadLimiter service.UploadLimiter
	if redisClient != nil && cfg.Media.MaxConcurrentUploads > 0 {
		uploadLimiter = redis_limiter.NewRedisLimiter(redisClient, cfg.Media.MaxConcurrentUploads, "upload_slots:", uploadSlotTTL, logger)
	}

	authService := service.NewAuthService(userRepo, tokenRepo, cfg, logger)
	tagService := service.NewAttributeService(tagRepo)
	ingredientService := service.NewAttributeService(ingredientRepo)
	recipeService := service.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		service.NewLocalImageStorage(cfg.Media.Root),
		uploadLimiter,
		logger.WithField("component", "recipe"),
	)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(authService)
	tagHandler := handler.NewAttributeHandler[models.Tag](tagService)
	ingredientHandler := handler.NewAttributeHandler[models.Ingredient](ingredientService)
	recipeHandler := handler.NewRecipeHandler(
		recipeService,
		dto.RecipeRenderer{MediaURL: cfg.Media.URL},
		cfg.Media.GetMaxUploadBytes(),
	)

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		public := api.Group("/users")
		if redisClient != nil && cfg.Auth.LoginRateLimit > 0 {
			public.Use(middleware.RateLimit(redisClient, "users", cfg.Auth.LoginRateLimit, cfg.Auth.GetLoginRateWindow(), logger))
		}
		public.POST("/create", authHandler.CreateUser)
		public.POST("/token", authHandler.CreateToken)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(authService))
		{
			// 用户信息
			authorized.GET("/users/me", authHandler.GetMe)
			authorized.PUT("/users/me", authHandler.UpdateMe)
			authorized.PATCH("/users/me", authHandler.UpdateMe)

			recipes := authorized.Group("/recipes")
			{
				recipes.GET("/tags", tagHandler.List)
				recipes.POST("/tags", tagHandler.Create)

				recipes.GET("/ingredients", ingredientHandler.List)
				recipes.POST("/ingredients", ingredientHandler.Create)

				recipes.GET("/recipes", recipeHandler.List)
				recipes.POST("/recipes", recipeHandler.Create)
				recipes.GET("/recipes/:id", recipeHandler.Get)
				recipes.PUT("/recipes/:id", recipeHandler.Replace)
				recipes.PATCH("/recipes/:id", recipeHandler.Update)
				recipes.DELETE("/recipes/:id", recipeHandler.Delete)
				recipes.POST("/recipes/:id/upload-image", recipeHandler.UploadImage)
			}

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.StaffMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
			}
		}
	}

	return r
}
