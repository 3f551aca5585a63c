package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pickme-backend/config"
	"pickme-backend/internal/delivery/http/middleware"
	"pickme-backend/internal/domain"
	"pickme-backend/internal/usecase"
	"pickme-backend/pkg/auth"
)

type RouterDeps struct {
	AccountUC       domain.AccountUsecase
	EnterpriseUC    domain.EnterpriseUsecase
	VerificationUC  domain.VerificationUsecase
	LoginUC         domain.LoginUsecase
	ImageUC         domain.ImageUsecase
	HealthUC        usecase.HealthUsecase
	ExperienceUC    domain.ResourceUsecase[*domain.Experience, *domain.ExperienceRequest]
	LicenseUC       domain.ResourceUsecase[*domain.License, *domain.LicenseRequest]
	PrizeUC         domain.ResourceUsecase[*domain.Prize, *domain.PrizeRequest]
	ProjectUC       domain.ResourceUsecase[*domain.Project, *domain.ProjectRequest]
	SelfInterviewUC domain.ResourceUsecase[*domain.SelfInterview, *domain.SelfInterviewRequest]
	// Accounts resolves bearer tokens to the caller.
	Accounts domain.AccountRepository
	Tokens   *auth.JWTService
	// Redis is optional; rate limits fall back to process memory without it.
	Redis  *goredis.Client
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.Env, cfg.AllowedOrigins...)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CurrentUser(deps.Tokens, deps.Accounts))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(basePath)

	api.GET("/health", Health(deps.HealthUC))
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	authLimit := middleware.NewRateLimiter(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window), deps.Redis).Middleware()
	uploadLimit := middleware.NewRateLimiter(middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold), deps.Redis).Middleware()

	paging := Paging{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}

	NewAccountHandler(api, deps.AccountUC, deps.VerificationUC, paging, authLimit)
	NewEnterpriseHandler(api, deps.EnterpriseUC, paging)
	NewLoginHandler(api, deps.LoginUC, authLimit)
	NewImageHandler(api, deps.ImageUC, uploadLimit)
	RegisterResources(api, deps)

	return r
}
