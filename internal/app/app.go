// Package app содержит основную логику приложения.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"focusboard/internal/api"
	"focusboard/internal/bot"
	"focusboard/internal/config"
	"focusboard/internal/health"
	"focusboard/internal/service"
	"focusboard/internal/storage"

	"go.uber.org/zap"
)

// App представляет приложение со всеми его компонентами
type App struct {
	config   *config.Config
	logger   *zap.Logger
	db       *storage.Postgres
	services *service.Services
	bot      *bot.Bot
	api      *api.Server
	health   *health.Server
	stopChan chan struct{}
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewApp создает новый экземпляр приложения
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:   cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}

	logger.Info("App structure created successfully")
	return app, nil
}

// NewAppWithFactory создает новый экземпляр приложения через фабрику
func NewAppWithFactory(cfg *config.Config, logger *zap.Logger) (*App, error) {
	factory := NewComponentFactory(cfg, logger)
	return factory.CreateApp()
}

// Start запускает приложение
func (a *App) Start(ctx context.Context) error {
	a.logger.Info("Starting app")

	// Запускаем health check сервер
	if a.health != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.health.Start(); err != nil {
				if err.Error() == "http: Server closed" {
					a.logger.Info("Health check server stopped normally")
				} else {
					a.logger.Error("Health check server failed", zap.Error(err))
				}
			}
		}()
	}

	// Запускаем HTTP API сервер
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.api.Start(); err != nil {
			if err.Error() == "http: Server closed" {
				a.logger.Info("API server stopped normally")
			} else {
				a.logger.Error("API server failed", zap.Error(err))
			}
		}
	}()

	// Создаем стандартные задачи и запускаем планировщик
	if a.services.Scheduler != nil {
		if err := a.services.Scheduler.EnsureDefaultTasks(); err != nil {
			a.logger.Error("Failed to ensure default tasks", zap.Error(err))
		}
		if err := a.services.Scheduler.Start(); err != nil {
			a.logger.Error("Failed to start scheduler", zap.Error(err))
		} else {
			a.logger.Info("Scheduler started successfully")
		}
	}

	a.logger.Info("App started successfully")

	if a.bot == nil {
		a.logger.Warn("Bot token not provided, running without Telegram bot")
		<-ctx.Done()
		return ctx.Err()
	}

	return a.runBotLoop(ctx)
}

// runBotLoop запускает цикл обработки обновлений бота с перезапусками
func (a *App) runBotLoop(ctx context.Context) error {
	maxRestartAttempts := 10
	restartAttempts := 0
	restartDelay := 10 * time.Second

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Bot loop cancelled by context")
			return ctx.Err()
		case <-a.stopChan:
			a.logger.Info("Bot loop stopped by stop signal")
			return nil
		default:
			if err := a.bot.Start(ctx); err != nil {
				if err == context.Canceled {
					a.logger.Info("Bot stopped due to context cancellation")
					return err
				}

				restartAttempts++
				a.logger.Error("Bot loop error",
					zap.Error(err),
					zap.Int("restart_attempt", restartAttempts),
					zap.Int("max_attempts", maxRestartAttempts))

				if restartAttempts > maxRestartAttempts {
					return fmt.Errorf("max restart attempts reached: %w", err)
				}

				delay := time.Duration(restartAttempts) * restartDelay
				if delay > 5*time.Minute {
					delay = 5 * time.Minute
				}

				a.logger.Info("Waiting before restart", zap.Duration("delay", delay))
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
					continue
				}
			} else {
				restartAttempts = 0
			}
		}
	}
}

// Stop gracefully останавливает приложение
func (a *App) Stop() error {
	a.logger.Info("Stopping app gracefully")

	if a.services != nil && a.services.Scheduler != nil {
		a.logger.Info("Stopping scheduler")
		a.services.Scheduler.Stop()
	}

	if a.cancel != nil {
		a.cancel()
	}

	select {
	case <-a.stopChan:
	default:
		close(a.stopChan)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if a.api != nil {
		if err := a.api.Stop(); err != nil {
			a.logger.Error("Failed to stop API server", zap.Error(err))
		}
	}

	if a.health != nil {
		if err := a.health.Stop(); err != nil {
			a.logger.Error("Failed to stop health check server", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.wg.Wait()
	}()

	select {
	case <-done:
		a.logger.Info("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		a.logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	a.logger.Info("App stopped successfully")
	return nil
}
