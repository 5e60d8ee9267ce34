// @title Playground Standings API
// @version 1.0
// @description Групповые таблицы, квалификация, плей-ин и сетка плей-офф площадки 3x3.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/playground-standings/brackets"
	"github.com/Dosada05/playground-standings/config"
	"github.com/Dosada05/playground-standings/db"
	"github.com/Dosada05/playground-standings/handlers"
	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/repositories"
	api "github.com/Dosada05/playground-standings/routes"
	"github.com/Dosada05/playground-standings/services"
	"github.com/Dosada05/playground-standings/standings"
	"github.com/Dosada05/playground-standings/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.ValidateServer(); err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	engine, err := standings.NewEngine(cfg.Engine)
	if err != nil {
		logger.Error("failed to build standings engine", slog.Any("error", err))
		os.Exit(1)
	}

	recorder := metrics.NewRecorder()

	// Публикация в Cloudflare R2 необязательна
	var uploader storage.FileUploader
	if cfg.PublishingEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("R2 settings missing, publishing disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	recorder.WatchWebSocketClients(wsHub.Clients)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	playgroundRepo := repositories.NewPostgresPlaygroundRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	snapshotRepo := repositories.NewPostgresSnapshotRepository(dbConn)
	transactor := repositories.NewPostgresTransactor(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash)
	rosterService := services.NewRosterService(playgroundRepo, groupRepo, teamRepo, logger)
	standingsService := services.NewStandingsService(snapshotRepo, engine, recorder, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, engine, brackets.DefaultFields, wsHub, logger)
	generator := brackets.NewRoundRobinGenerator(engine.Calendar(), engine.TimeSlots(), nil, brackets.DefaultFields)
	scheduleService := services.NewScheduleService(snapshotRepo, matchRepo, transactor, generator, engine.Calendar(), wsHub, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo, matchRepo, transactor, wsHub, logger)
	publishService := services.NewPublishService(standingsService, uploader, recorder, logger)
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Playground: handlers.NewPlaygroundHandler(rosterService),
		Standings:  handlers.NewStandingsHandler(standingsService),
		Match:      handlers.NewMatchHandler(matchService),
		Admin:      handlers.NewAdminHandler(scheduleService, publishService),
		Player:     handlers.NewPlayerHandler(playerService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, rosterService, cfg.CORSAllowedOrigins, logger),
	}, recorder, logger)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
