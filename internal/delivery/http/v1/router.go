package v1

import (
	"net/http"
	"time"

	"go-oscrec-backend/config"
	"go-oscrec-backend/internal/delivery/http/middleware"
	"go-oscrec-backend/internal/delivery/http/response"
	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC        domain.ProfileUsecase
	RecommendationUC domain.RecommendationUsecase
	FileUC           domain.FileUsecase
	HealthUC         usecase.HealthUsecase
	RedisClient      *goredis.Client
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(deps.RedisClient, middleware.RateLimitConfig{
		Limit:     deps.Config.RateLimitGlobalThreshold,
		Window:    time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:ip:",
	}))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewUserHandler(v1, deps.ProfileUC)
	NewRecommendationHandler(v1, deps.ProfileUC, deps.RecommendationUC, deps.Config.RecommendationLimit)
	NewFileHandler(v1, deps.ProfileUC, deps.FileUC, deps.Config.RecommendationLimit)

	return r
}
