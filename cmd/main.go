package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Petrels/config"
	"github.com/lshigami/Petrels/database"
	_ "github.com/lshigami/Petrels/docs" // Swagger docs - auto-generated
	candidatectrl "github.com/lshigami/Petrels/internal/controller/candidate"
	interviewerctrl "github.com/lshigami/Petrels/internal/controller/interviewer"
	"github.com/lshigami/Petrels/internal/logger"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/lshigami/Petrels/internal/oracle"
	"github.com/lshigami/Petrels/internal/repository"
	"github.com/lshigami/Petrels/internal/service"
	"github.com/lshigami/Petrels/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log" // Global zerolog instance
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title AI Mock Interview API
// @version 1.0
// @description API for AI-driven mock technical interviews: scripted question progression, timed answers, AI evaluation, session recovery and an interviewer dashboard.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init() // Call this early

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			store.NewRedisClient,
			NewSessionStore, // Provides store.KeyValueStore
			oracle.NewOracle,
			NewGinEngine, // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSessionArchiveRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewInterviewSessionService,
			service.NewDashboardService,
		),

		// API Controllers Layer
		fx.Provide(
			candidatectrl.NewSessionController,
			interviewerctrl.NewDashboardController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewSessionStore picks the durable store backing session recovery: redis
// when configured, otherwise a process-local store (sessions then survive
// page reloads but not process restarts).
func NewSessionStore(cfg *config.Config, rdb *redis.Client) store.KeyValueStore {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Falling back to in-memory session store.")
		return store.NewMemoryStore()
	}
	return store.NewRedisStore(rdb)
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Custom logger using Zerolog for Gin
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *candidatectrl.SessionController,
	dashboardCtrl *interviewerctrl.DashboardController,
) {
	// Candidate Routes (prefixed with /api/v1)
	candidateAPIGroup := router.Group("/api/v1")
	{
		sessionsGroup := candidateAPIGroup.Group("/sessions")
		sessionsGroup.POST("", sessionCtrl.CreateSession)
		sessionsGroup.GET("/active", sessionCtrl.GetActiveSession)
		sessionsGroup.DELETE("/active", sessionCtrl.ClearActiveSession)
		sessionsGroup.POST("/answer", sessionCtrl.SubmitAnswer)
		sessionsGroup.POST("/pause", sessionCtrl.PauseSession)
		sessionsGroup.POST("/resume", sessionCtrl.ResumeSession)
	}

	// Interviewer Routes (prefixed with /api/v1/interviewer)
	interviewerAPIGroup := router.Group("/api/v1/interviewer")
	{
		interviewerAPIGroup.GET("/interviews", dashboardCtrl.ListCompletedInterviews)
		interviewerAPIGroup.GET("/interviews/:session_id", dashboardCtrl.GetInterviewDetails)
		interviewerAPIGroup.GET("/dashboard/metrics", dashboardCtrl.GetDashboardMetrics)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("AI Mock Interview API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations for archive models...")
	err := db.AutoMigrate(
		&model.SessionRecord{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
