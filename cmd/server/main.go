// Package main запускает сервер FocusBoard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"focusboard/internal/app"
	"focusboard/internal/config"
	"focusboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Инициализация логгера
	log := logger.New()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Создание контекста
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	// Создание приложения через фабрику
	application, err := app.NewAppWithFactory(cfg, log)
	if err != nil {
		log.Fatal("Failed to create app", zap.Error(err))
	}

	// Запуск приложения
	if err := application.Start(ctx); err != nil && err != context.Canceled {
		log.Error("App stopped with error", zap.Error(err))
		if stopErr := application.Stop(); stopErr != nil {
			log.Error("Failed to stop app", zap.Error(stopErr))
		}
		os.Exit(1)
	}

	if err := application.Stop(); err != nil {
		log.Error("Failed to stop app", zap.Error(err))
	}

	log.Info("App stopped successfully")
}
