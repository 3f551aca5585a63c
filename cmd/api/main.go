package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pickme-backend/config"
	_ "pickme-backend/docs" // Important for Swagger
	v1 "pickme-backend/internal/delivery/http/v1"
	"pickme-backend/internal/domain"
	"pickme-backend/internal/repository/memory"
	"pickme-backend/internal/repository/postgres"
	"pickme-backend/internal/scheduler"
	"pickme-backend/internal/usecase"
	"pickme-backend/pkg/auth"
	"pickme-backend/pkg/database"
	"pickme-backend/pkg/email"
	"pickme-backend/pkg/logger"
	"pickme-backend/pkg/redis"
	"pickme-backend/pkg/storage"
	"pickme-backend/pkg/validation"
)

type repositories struct {
	accounts       domain.AccountRepository
	favorites      domain.FavoriteRepository
	enterprises    domain.EnterpriseRepository
	codes          domain.VerificationRepository
	experiences    domain.ResourceRepository[*domain.Experience]
	licenses       domain.ResourceRepository[*domain.License]
	prizes         domain.ResourceRepository[*domain.Prize]
	projects       domain.ResourceRepository[*domain.Project]
	selfInterviews domain.ResourceRepository[*domain.SelfInterview]
	probe          usecase.Probe
	close          func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StorageDriver == "memory" {
		store := memory.NewStore()
		return &repositories{
			accounts:       memory.NewAccountRepository(store),
			favorites:      memory.NewFavoriteRepository(store),
			enterprises:    memory.NewEnterpriseRepository(store),
			codes:          memory.NewVerificationRepository(store),
			experiences:    memory.NewResourceRepository[domain.Experience, *domain.Experience](store),
			licenses:       memory.NewResourceRepository[domain.License, *domain.License](store),
			prizes:         memory.NewResourceRepository[domain.Prize, *domain.Prize](store),
			projects:       memory.NewResourceRepository[domain.Project, *domain.Project](store),
			selfInterviews: memory.NewResourceRepository[domain.SelfInterview, *domain.SelfInterview](store),
			close:          func() {},
		}, nil
	}

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	return &repositories{
		accounts:       postgres.NewAccountRepository(dbPool),
		favorites:      postgres.NewFavoriteRepository(dbPool),
		enterprises:    postgres.NewEnterpriseRepository(dbPool),
		codes:          postgres.NewVerificationRepository(dbPool),
		experiences:    postgres.NewResourceRepository(dbPool, postgres.ExperienceTable),
		licenses:       postgres.NewResourceRepository(dbPool, postgres.LicenseTable),
		prizes:         postgres.NewResourceRepository(dbPool, postgres.PrizeTable),
		projects:       postgres.NewResourceRepository(dbPool, postgres.ProjectTable),
		selfInterviews: postgres.NewResourceRepository(dbPool, postgres.SelfInterviewTable),
		probe:          dbPool.Ping,
		close:          dbPool.Close,
	}, nil
}

// @title           PickMe API
// @version         1.0
// @description     Developer profiles, enterprise search and job suggestions.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	defer logger.Sync()
	logger.Log.Info("Starting pickme backend", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
	for _, w := range cfg.Warnings() {
		logger.Log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Storage
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open storage", zap.Error(err))
		os.Exit(1)
	}
	defer repos.close()

	probes := map[string]usecase.Probe{}
	if repos.probe != nil {
		probes["database"] = repos.probe
	}

	// 4. Setup Redis (optional, rate limiting only)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limits fall back to memory", zap.Error(err))
	} else {
		probes["redis"] = redis.HealthCheck
	}
	defer func() { _ = redis.Close() }()

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - verification codes and suggestions will fail")
	}

	// 6. Setup Image Storage
	var images usecase.ImageStore
	if cfg.S3Bucket != "" {
		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			logger.Log.Error("Failed to create S3 client", zap.Error(err))
			os.Exit(1)
		}
		images = storage.NewS3ImageStore(client, cfg.S3Bucket, cfg.ImageBaseURL)
	}

	// 7. Setup UseCases
	validate := validation.New()
	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	accountUC := usecase.NewAccountUsecase(repos.accounts, repos.favorites, repos.codes, validate)
	verificationUC := usecase.NewVerificationUsecase(repos.codes, repos.accounts, emailService, validate, cfg.VerificationCodeTTL)

	// 8. Setup Scheduler
	jobs := scheduler.New(verificationUC, cfg.VerificationPurgeSpec)
	if err := jobs.Start(ctx); err != nil {
		logger.Log.Error("Failed to start scheduler", zap.Error(err))
		os.Exit(1)
	}
	defer jobs.Stop()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AccountUC:       accountUC,
		EnterpriseUC:    usecase.NewEnterpriseUsecase(repos.enterprises, repos.accounts, emailService, validate),
		VerificationUC:  verificationUC,
		LoginUC:         usecase.NewLoginUsecase(repos.accounts, tokens, validate),
		ImageUC:         usecase.NewImageUsecase(images, accountUC),
		HealthUC:        usecase.NewHealthUsecase(probes),
		ExperienceUC:    usecase.NewExperienceUsecase(repos.experiences, validate),
		LicenseUC:       usecase.NewLicenseUsecase(repos.licenses, validate),
		PrizeUC:         usecase.NewPrizeUsecase(repos.prizes, validate),
		ProjectUC:       usecase.NewProjectUsecase(repos.projects, validate),
		SelfInterviewUC: usecase.NewSelfInterviewUsecase(repos.selfInterviews, validate),
		Accounts:        repos.accounts,
		Tokens:          tokens,
		Redis:           redis.Client(),
		Config:          cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", zap.Error(err))
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
