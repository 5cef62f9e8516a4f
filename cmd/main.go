package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ndkhang/hirestage/config"
	"github.com/ndkhang/hirestage/database"
	_ "github.com/ndkhang/hirestage/docs" // Swagger docs
	"github.com/ndkhang/hirestage/internal/auth"
	"github.com/ndkhang/hirestage/internal/controller"
	candidatectrl "github.com/ndkhang/hirestage/internal/controller/candidate"
	hrctrl "github.com/ndkhang/hirestage/internal/controller/hr"
	"github.com/ndkhang/hirestage/internal/controller/router"
	"github.com/ndkhang/hirestage/internal/logger"
	"github.com/ndkhang/hirestage/internal/model"
	"github.com/ndkhang/hirestage/internal/notify"
	"github.com/ndkhang/hirestage/internal/repository"
	"github.com/ndkhang/hirestage/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title HireStage API
// @version 1.0
// @description Multi-stage recruitment platform: timed assessment sessions, stage transitions and candidate selection.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewNotificationQueue,
		),

		fx.Provide(
			repository.NewPostingRepository,
			repository.NewCandidateRepository,
			repository.NewQuestionSetRepository,
			repository.NewSessionRepository,
			repository.NewStageRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			auth.NewTokenService,
			service.NewAuthService,
			service.NewPostingService,
			service.NewCandidateService,
			service.NewSessionService,
			service.NewStageService,
			service.NewQuestionSetService,
			service.NewQuestionGeneratorService,
		),

		fx.Provide(
			controller.NewAuthController,
			candidatectrl.NewSessionController,
			hrctrl.NewHRController,
			router.NewRouter,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartNotificationWorker),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

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

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewNotificationQueue prefers the redis-backed queue; without a configured
// redis it degrades to the in-process queue so notifications still flow in
// single-node setups.
func NewNotificationQueue(cfg *config.Config) notify.Queue {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory notification queue")
		return notify.NewMemoryQueue(256)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	return notify.NewRedisQueue(client, cfg.Redis.Queue)
}

func StartNotificationWorker(lc fx.Lifecycle, queue notify.Queue) {
	worker := notify.NewWorker(queue, notify.LogSender{}, 2)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			worker.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	engine *gin.Engine,
	cfg *config.Config,
	router *router.Router,
) {
	router.RegisterRoutes(engine)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("HireStage API server starting on port %s", cfg.Server.Port)
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
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Posting{},
		&model.Candidate{},
		&model.QuestionSet{},
		&model.MCQQuestion{},
		&model.AssessmentSession{},
		&model.SessionResponse{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
