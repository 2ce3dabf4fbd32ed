package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Markus2025/nottinghamdemo/internal/config"
	"github.com/Markus2025/nottinghamdemo/internal/repository/postgres"
	httpTransport "github.com/Markus2025/nottinghamdemo/internal/transport/http"
	"github.com/Markus2025/nottinghamdemo/internal/transport/http/handler"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
	"github.com/Markus2025/nottinghamdemo/internal/wechat"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Подключаемся к базе данных
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	logger.Info("connected to database")

	// Применяем миграции
	if err := runMigrations(cfg.GetDSN()); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	logger.Info("migrations applied")

	// Инициализируем репозитории
	userRepo := postgres.NewUserRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Инициализируем use cases
	queryUseCase := usecase.NewTeamQueryUseCase(teamRepo, membershipRepo, listingRepo, userRepo)
	teamUseCase := usecase.NewTeamUseCase(teamRepo, membershipRepo, listingRepo, txManager, queryUseCase)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, membershipRepo, userRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, wechat.NewClient(cfg.WechatAppID, cfg.WechatAppSecret))
	statsUseCase := usecase.NewStatisticsUseCase(statsRepo)

	// Инициализируем handlers
	authHandler := handler.NewAuthHandler(authUseCase, cfg.JWTSecret)
	listingHandler := handler.NewListingHandler(listingUseCase)
	teamHandler := handler.NewTeamHandler(teamUseCase, queryUseCase)
	messageHandler := handler.NewMessageHandler(messageUseCase)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUseCase)
	healthHandler := handler.NewHealthHandler()
	statsHandler := handler.NewStatisticsHandler(statsUseCase)

	// Создаем роутер
	router := httpTransport.NewRouter(httpTransport.RouterConfig{
		AuthHandler:       authHandler,
		ListingHandler:    listingHandler,
		TeamHandler:       teamHandler,
		MessageHandler:    messageHandler,
		FavoriteHandler:   favoriteHandler,
		HealthHandler:     healthHandler,
		StatisticsHandler: statsHandler,
		JWTSecret:         cfg.JWTSecret,
		Logger:            logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Info("starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// newLogger создает zap логгер с уровнем из конфигурации
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

// runMigrations применяет миграции базы данных
func runMigrations(dsn string) error {
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
