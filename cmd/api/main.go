package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"booking-service/internal/app"
	"booking-service/internal/auth"
	"booking-service/internal/config"
	internalhttp "booking-service/internal/http"
	"booking-service/internal/http/handlers"
	"booking-service/internal/notify"
	"booking-service/internal/repository"
	"booking-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	txManager := repository.NewPgxTxManager(pool, cfg.LockTimeout)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
		logger.Info("Telegram notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.JWTTTL)

	slotService := service.NewSlotService(slotRepo, logger)
	bookingService := service.NewBookingService(txManager, bookingRepo, notifier, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("Failed to ensure admin account", zap.Error(err))
	}

	router := internalhttp.NewRouter(
		cfg.Environment,
		tokens,
		handlers.NewAuthHandler(authService, logger),
		handlers.NewSlotHandler(slotService, logger),
		handlers.NewBookingHandler(bookingService, logger),
		logger,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Booking service listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("environment", cfg.Environment),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server error", zap.Error(err))
	}

	logger.Info("Booking service stopped")
}
