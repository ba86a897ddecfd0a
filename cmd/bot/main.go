package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tokumei_bot/internal/app"
	"tokumei_bot/internal/config"
	"tokumei_bot/internal/logger"
)

func main() {
	// 初始化logger
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("配置加载失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.L().Fatalf("应用初始化失败: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case <-ctx.Done():
		logger.L().Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.L().Errorf("Webhook server exited: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := application.Close(shutdownCtx); err != nil {
		logger.L().Errorf("Shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.L().Info("Bye")
}
