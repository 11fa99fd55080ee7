package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lockchat/config"
	channelrepo "lockchat/internal/channel/repository"
	channelusecase "lockchat/internal/channel/usecase"
	delivery "lockchat/internal/delivery/http"
	"lockchat/internal/hub"
	"lockchat/internal/storage"
	userrepo "lockchat/internal/user/repository"
	userusecase "lockchat/internal/user/usecase"
	walletrepo "lockchat/internal/wallet/repository"
	walletusecase "lockchat/internal/wallet/usecase"
	"lockchat/pkg/logger"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx := context.Background()
	db, err := storage.Connect(ctx, cfg)
	if err != nil {
		appLogger.Error("failed to connect to postgres", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.CreateSchema(ctx, db); err != nil {
		appLogger.Error("failed to create schema", "err", err)
		os.Exit(1)
	}
	appLogger.Info("connected to postgres")

	wsHub := hub.NewHub(*appLogger)

	userRepository := userrepo.NewUserRepository(db, *appLogger)
	walletRepository := walletrepo.NewWalletRepository(db, *appLogger)
	channelRepository := channelrepo.NewChannelRepository(db, *appLogger)
	messageRepository := channelrepo.NewMessageRepository(db, *appLogger)

	userUC := userusecase.NewUserUsecase(userRepository, *appLogger, cfg)
	walletUC := walletusecase.NewWalletUsecase(walletRepository, *appLogger)
	channelUC := channelusecase.NewChannelUsecase(channelRepository, messageRepository, userRepository, wsHub, *appLogger)

	router := delivery.NewRouter(delivery.RouterDeps{
		Config:   cfg,
		Logger:   *appLogger,
		Users:    userUC,
		UserRepo: userRepository,
		Wallets:  walletUC,
		Channels: channelUC,
		Hub:      wsHub,
	})

	// No read/write timeouts: /ws connections are long-lived.
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", "err", err)
	}
	appLogger.Info("server stopped")
}
