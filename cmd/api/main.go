package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/andreypavlenko/jobber/docs" // swagger docs

	"github.com/andreypavlenko/jobber/internal/config"
	"github.com/andreypavlenko/jobber/internal/platform/auth"
	"github.com/andreypavlenko/jobber/internal/platform/calendar"
	"github.com/andreypavlenko/jobber/internal/platform/email"
	httpPlatform "github.com/andreypavlenko/jobber/internal/platform/http"
	"github.com/andreypavlenko/jobber/internal/platform/llm"
	"github.com/andreypavlenko/jobber/internal/platform/logger"
	"github.com/andreypavlenko/jobber/internal/platform/metrics"
	"github.com/andreypavlenko/jobber/internal/platform/postgres"
	"github.com/andreypavlenko/jobber/internal/platform/redis"
	"github.com/andreypavlenko/jobber/internal/platform/risk"
	"github.com/andreypavlenko/jobber/internal/platform/scoring"
	"github.com/andreypavlenko/jobber/internal/platform/storage"
	"github.com/andreypavlenko/jobber/internal/platform/tokens"
	"github.com/andreypavlenko/jobber/internal/scheduler"

	authHandler "github.com/andreypavlenko/jobber/modules/auth/handler"
	authRepo "github.com/andreypavlenko/jobber/modules/auth/repository"
	authService "github.com/andreypavlenko/jobber/modules/auth/service"
	userRepo "github.com/andreypavlenko/jobber/modules/users/repository"

	appHandler "github.com/andreypavlenko/jobber/modules/applications/handler"
	appRepo "github.com/andreypavlenko/jobber/modules/applications/repository"
	appService "github.com/andreypavlenko/jobber/modules/applications/service"

	companyHandler "github.com/andreypavlenko/jobber/modules/companies/handler"
	companyRepo "github.com/andreypavlenko/jobber/modules/companies/repository"
	companyService "github.com/andreypavlenko/jobber/modules/companies/service"

	jobHandler "github.com/andreypavlenko/jobber/modules/jobs/handler"
	jobRepo "github.com/andreypavlenko/jobber/modules/jobs/repository"
	jobService "github.com/andreypavlenko/jobber/modules/jobs/service"

	resumeHandler "github.com/andreypavlenko/jobber/modules/resumes/handler"
	resumeRepo "github.com/andreypavlenko/jobber/modules/resumes/repository"
	resumeService "github.com/andreypavlenko/jobber/modules/resumes/service"

	commentHandler "github.com/andreypavlenko/jobber/modules/comments/handler"
	commentRepo "github.com/andreypavlenko/jobber/modules/comments/repository"
	commentService "github.com/andreypavlenko/jobber/modules/comments/service"

	tagHandler "github.com/andreypavlenko/jobber/modules/tags/handler"
	tagRepo "github.com/andreypavlenko/jobber/modules/tags/repository"
	tagService "github.com/andreypavlenko/jobber/modules/tags/service"

	reminderHandler "github.com/andreypavlenko/jobber/modules/reminders/handler"
	reminderRepo "github.com/andreypavlenko/jobber/modules/reminders/repository"
	reminderService "github.com/andreypavlenko/jobber/modules/reminders/service"

	flagHandler "github.com/andreypavlenko/jobber/modules/featureflags/handler"
	flagRepo "github.com/andreypavlenko/jobber/modules/featureflags/repository"
	flagService "github.com/andreypavlenko/jobber/modules/featureflags/service"

	logHandler "github.com/andreypavlenko/jobber/modules/automationlog/handler"
	logRepo "github.com/andreypavlenko/jobber/modules/automationlog/repository"
	logService "github.com/andreypavlenko/jobber/modules/automationlog/service"

	shortlistHandler "github.com/andreypavlenko/jobber/modules/shortlisting/handler"
	shortlistRepo "github.com/andreypavlenko/jobber/modules/shortlisting/repository"
	shortlistService "github.com/andreypavlenko/jobber/modules/shortlisting/service"

	interviewHandler "github.com/andreypavlenko/jobber/modules/interviews/handler"
	interviewRepo "github.com/andreypavlenko/jobber/modules/interviews/repository"
	interviewService "github.com/andreypavlenko/jobber/modules/interviews/service"

	negotiationHandler "github.com/andreypavlenko/jobber/modules/negotiation/handler"
	negotiationParser "github.com/andreypavlenko/jobber/modules/negotiation/parser"
	negotiationRepo "github.com/andreypavlenko/jobber/modules/negotiation/repository"
	negotiationService "github.com/andreypavlenko/jobber/modules/negotiation/service"

	sentrygin "github.com/getsentry/sentry-go/gin"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Jobber API
// @version 1.0
// @description Job Application Tracking Platform API - automates the end-to-end interview pipeline: shortlisting, token-gated candidate scheduling, slot negotiation, and reminders, on top of a modular monolith for managing job applications, companies, and resumes.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@jobber.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @x-extension-openapi {"example": "value on a json format"}

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Jobber API server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Server.Env}); err != nil {
			logger.Warn("Failed to initialize Sentry, continuing without it", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()

	// Initialize PostgreSQL
	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	logger.Info("Connected to PostgreSQL")

	// Run database migrations (MANDATORY: must run before HTTP server starts)
	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, logger, migrationsPath); err != nil {
		logger.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	// Initialize Redis
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Initialize S3 client (optional - gracefully handle missing config)
	var s3Client *storage.S3Client
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err = storage.NewS3Client(cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, file upload will be disabled", zap.Error(err))
		} else {
			logger.Info("S3 client initialized", zap.String("bucket", cfg.S3.Bucket))
		}
	} else {
		logger.Info("S3 configuration not provided, file upload will be disabled")
	}

	// External collaborators: scoring, risk, calendar, email, LLM.
	scoringClient := scoring.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.Timeout, logger)
	riskClient := risk.NewClient(cfg.Risk.BaseURL, cfg.Risk.Timeout, logger)
	emailClient := email.NewClient(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Automation.FrontendBaseURL, cfg.Email.Timeout, logger)
	llmClient := llm.NewClient(cfg.LLM.APIKey, llm.WithModel(cfg.LLM.Model), llm.WithTimeout(cfg.LLM.Timeout))

	var calendarClient *calendar.Client
	if cfg.Calendar.RefreshToken != "" {
		calendarClient, err = calendar.NewClient(ctx, cfg.Calendar.ClientID, cfg.Calendar.ClientSecret, cfg.Calendar.RefreshToken,
			cfg.Calendar.CalendarID, cfg.Calendar.Timeout, logger)
		if err != nil {
			logger.Fatal("Failed to initialize calendar client", zap.Error(err))
		}
	} else {
		logger.Warn("GOOGLE_REFRESH_TOKEN not set, calendar integration disabled")
	}

	// Signing key for the interview-action Token Service: read-only
	// process-wide state, loaded once at startup.
	tokenService := tokens.New(cfg.Tokens.SigningSecret, cfg.Tokens.TTL)

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Metrics & alerting: process-local ring buffer of response times,
	// automation outcomes, and cycle durations.
	metricsRecorder := metrics.New()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(logger))
	router.Use(httpPlatform.MetricsMiddleware(metricsRecorder))
	router.Use(httpPlatform.CORSMiddleware())

	// Swagger documentation (available in development)
	if cfg.Server.Env != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI available at /swagger/index.html")
	}

	// Health check endpoint
	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))

	// Ping endpoint
	router.GET("/ping", pingHandler)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Auth middleware
	authMiddleware := auth.AuthMiddleware(jwtManager)

	// --- Repositories -------------------------------------------------
	userRepository := userRepo.NewUserRepository(pgClient.Pool)
	tokenRepository := authRepo.NewRefreshTokenRepository(pgClient.Pool)
	companyRepository := companyRepo.NewCompanyRepository(pgClient.Pool)
	jobRepository := jobRepo.NewJobRepository(pgClient.Pool)
	resumeRepository := resumeRepo.NewResumeRepository(pgClient.Pool)
	applicationRepository := appRepo.NewApplicationRepository(pgClient.Pool)
	stageTemplateRepository := appRepo.NewStageTemplateRepository(pgClient.Pool)
	applicationStageRepository := appRepo.NewApplicationStageRepository(pgClient.Pool)
	commentRepository := commentRepo.NewCommentRepository(pgClient.Pool)
	tagRepository := tagRepo.NewTagRepository(pgClient.Pool)
	reminderRepository := reminderRepo.NewReminderRepository(pgClient.Pool)
	flagRepository := flagRepo.NewFlagRepository(pgClient.Pool)
	automationLogRepository := logRepo.NewLogRepository(pgClient.Pool)
	shortlistStore := shortlistRepo.NewApplicationStore(pgClient.Pool)
	interviewRepository := interviewRepo.NewInterviewRepository(pgClient.Pool)
	negotiationRepository := negotiationRepo.NewSessionRepository(pgClient.Pool)

	// --- Cross-module narrow adapters -
	jobLookup := jobService.NewLookupAdapter(jobRepository)
	flagResolver := flagService.New(flagRepository, jobLookup)
	flagAdapter := flagService.NewStringAdapter(flagResolver)

	automationSink := logService.NewSink(automationLogRepository, logger)
	activityLogger := logService.NewActivityLoggerAdapter(automationSink)
	reminderDeduper := logService.NewReminderDedupeAdapter(automationSink)

	interviewLookupAdapter := appService.NewInterviewLookupAdapter(applicationRepository)

	// The shortlisting and interview-scheduling engines each need a
	// callback into the other, which is a construction-time
	// cycle: build the interviews Engine first with an empty
	// ShortlistingCallbackRef, build the shortlisting Engine against the
	// (already-constructed) interviews Engine, then wire the ref.
	shortlistingRef := &interviewService.ShortlistingCallbackRef{}

	interviewEngine := interviewService.New(
		interviewRepository,
		interviewLookupAdapter,
		shortlistingRef,
		flagAdapter,
		activityLogger,
		emailClient,
		calendarClient,
		riskClient,
		interviewService.NewTokenAdapter(tokenService),
		interviewService.Config{
			ConfirmationDeadline:  cfg.Automation.ConfirmationDeadline,
			SlotSelectionDeadline: cfg.Automation.SlotSelectionDeadline,
			BusinessStartHour:     cfg.Calendar.BusinessStartHour,
			BusinessEndHour:       cfg.Calendar.BusinessEndHour,
		},
	)

	shortlistEngine := shortlistService.New(
		shortlistStore,
		jobLookup,
		interviewEngine,
		interviewEngine,
		flagAdapter,
		activityLogger,
	)
	shortlistingRef.Set(shortlistService.NewInterviewCallback(shortlistEngine))

	negotiationEngine := negotiationService.New(
		negotiationRepository,
		negotiationParser.NewLLM(llmClient),
		negotiationParser.NewRuleBased(time.Now),
		negotiationParser.NewLLMResponder(llmClient),
		negotiationParser.NewTemplate(),
		&calendar.NegotiationAdapter{Client: calendarClient},
		flagAdapter,
		activityLogger,
		interviewService.NewNegotiationNotifier(interviewRepository, emailClient),
		cfg.Automation.NegotiationMaxRounds,
		time.Now,
	)

	// --- Services -------------------------------------------------------
	authSvc := authService.NewAuthService(
		userRepository,
		tokenRepository,
		jwtManager,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	companySvc := companyService.NewCompanyService(companyRepository)
	jobSvc := jobService.NewJobService(jobRepository, shortlistService.NewJobTrigger(shortlistEngine))
	resumeSvc := resumeService.NewResumeService(resumeRepository, s3Client)
	applicationSvc := appService.NewApplicationService(
		applicationRepository,
		applicationStageRepository,
		stageTemplateRepository,
		jobRepository,
		companyRepository,
		resumeRepository,
		commentRepository,
		appService.NewScoringAdapter(scoringClient),
	)
	commentSvc := commentService.NewCommentService(commentRepository)
	tagSvc := tagService.NewTagService(tagRepository)
	reminderSvc := reminderService.NewReminderService(reminderRepository)

	// --- Handlers ---------------------------------------------------------
	authHdl := authHandler.NewAuthHandler(authSvc)
	companyHdl := companyHandler.NewCompanyHandler(companySvc)
	jobHdl := jobHandler.NewJobHandler(jobSvc)
	resumeHdl := resumeHandler.NewResumeHandler(resumeSvc)
	applicationHdl := appHandler.NewApplicationHandler(applicationSvc)
	commentHdl := commentHandler.NewCommentHandler(commentSvc)
	tagHdl := tagHandler.NewTagHandler(tagSvc)
	reminderHdl := reminderHandler.NewReminderHandler(reminderSvc)
	flagHdl := flagHandler.NewFlagHandler(flagResolver)
	logHdl := logHandler.NewLogHandler(automationSink)
	shortlistHdl := shortlistHandler.NewShortlistHandler(shortlistEngine, shortlistStore)
	interviewHdl := interviewHandler.NewInterviewHandler(interviewEngine)
	negotiationHdl := negotiationHandler.NewNegotiationHandler(negotiationEngine, interviewEngine, cfg.Automation.NegotiationWindow)
	metricsHdl := metrics.NewHandler(metricsRecorder, metrics.DefaultThresholds())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Register module routes
		authHdl.RegisterRoutes(v1)
		companyHdl.RegisterRoutes(v1, authMiddleware)
		jobHdl.RegisterRoutes(v1, authMiddleware)
		resumeHdl.RegisterRoutes(v1, authMiddleware)
		applicationHdl.RegisterRoutes(v1, authMiddleware)
		commentHdl.RegisterRoutes(v1, authMiddleware)
		tagHdl.RegisterRoutes(v1, authMiddleware)
		reminderHdl.RegisterRoutes(v1, authMiddleware)
		flagHdl.RegisterRoutes(v1, authMiddleware)
		logHdl.RegisterRoutes(v1, authMiddleware)
		shortlistHdl.RegisterRoutes(v1, authMiddleware)
		interviewHdl.RegisterPublicRoutes(v1)
		interviewHdl.RegisterRoutes(v1, authMiddleware)
		negotiationHdl.RegisterRoutes(v1, authMiddleware)
		metricsHdl.RegisterRoutes(v1, authMiddleware)
	}

	// Background Cycler: five-minute fault-isolated sweep
	// over deadlines, buffer health, reminders, and risk refresh.
	cycler := scheduler.New(
		jobRepository,
		shortlistEngine,
		interviewEngine,
		reminderDeduper,
		activityLogger,
		metricsRecorder,
		redisClient.Client,
		logger,
		cfg.Automation,
	)
	cycler.Start()
	logger.Info("Background cycler started", zap.Duration("period", cfg.Automation.CyclePeriod))

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Finish the in-flight background cycle before stopping it.
	cycler.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		// Check PostgreSQL
		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		// Check Redis
		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
