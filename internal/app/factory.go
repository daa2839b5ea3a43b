// Package app содержит фабрику компонентов приложения.
package app

import (
	"fmt"
	"os"

	"focusboard/internal/api"
	"focusboard/internal/bot"
	"focusboard/internal/config"
	"focusboard/internal/health"
	"focusboard/internal/importer"
	"focusboard/internal/service"
	"focusboard/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}
	if logger == nil {
		panic("Logger cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}
}

// CreateDatabase создает подключение к базе данных
func (f *ComponentFactory) CreateDatabase() (*storage.Postgres, error) {
	if f.config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := storage.NewPostgres(f.config.DatabaseURL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	f.logger.Info("Database connection created successfully")
	return db, nil
}

// CreateServices создает все сервисы
func (f *ComponentFactory) CreateServices(db *storage.Postgres) (*service.Services, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	services := service.NewServices(db, f.config, f.logger)
	f.logger.Info("Services created successfully")
	return services, nil
}

// CreateBot создает Telegram-бота, если задан токен
func (f *ComponentFactory) CreateBot(services *service.Services) (*bot.Bot, error) {
	if f.config.BotToken == "" {
		f.logger.Warn("Bot token not provided, Telegram bot will not be created")
		return nil, nil
	}

	telegramBot, err := bot.NewBot(f.config, services, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	f.logger.Info("Telegram bot created successfully")
	return telegramBot, nil
}

// CreateImporter создает импортер расписаний
func (f *ComponentFactory) CreateImporter() *importer.Importer {
	imp := importer.New(f.config, f.logger)
	f.logger.Info("Importer created successfully")
	return imp
}

// CreateAPIServer создает HTTP API сервер
func (f *ComponentFactory) CreateAPIServer(services *service.Services, imp *importer.Importer) (*api.Server, error) {
	if f.config.APIPort == "" {
		return nil, fmt.Errorf("API port is required")
	}

	server := api.NewServer(f.config.APIPort, services, imp, f.config.Location(), f.logger)
	f.logger.Info("API server created", zap.String("port", f.config.APIPort))
	return server, nil
}

// CreateHealthServer создает сервер health check
func (f *ComponentFactory) CreateHealthServer(db *storage.Postgres) (*health.Server, error) {
	if !f.config.HealthCheckEnabled {
		f.logger.Info("Health check server is disabled")
		return nil, nil
	}

	if f.config.HealthPort == "" {
		return nil, fmt.Errorf("health port is required when health check is enabled")
	}

	server := health.NewServer(f.config.HealthPort, f.logger, db)
	f.logger.Info("Health check server created", zap.String("port", f.config.HealthPort))
	return server, nil
}

// CreateAppDataDirectory создает директорию данных приложения
func (f *ComponentFactory) CreateAppDataDirectory() error {
	dataDir := f.config.AppDataDir
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		f.logger.Error("Failed to create app data directory", zap.String("dir", dataDir), zap.Error(err))
		return fmt.Errorf("failed to create app data directory: %w", err)
	}
	f.logger.Info("App data directory ready", zap.String("dir", dataDir))
	return nil
}

// CreateApp создает полный экземпляр приложения со всеми зависимостями
func (f *ComponentFactory) CreateApp() (*App, error) {
	if err := f.CreateAppDataDirectory(); err != nil {
		return nil, fmt.Errorf("failed to create app data directory: %w", err)
	}

	db, err := f.CreateDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	services, err := f.CreateServices(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	telegramBot, err := f.CreateBot(services)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	if telegramBot != nil {
		services.RegisterDigestSender(telegramBot, f.config, f.logger)
	}

	imp := f.CreateImporter()

	apiServer, err := f.CreateAPIServer(services, imp)
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	healthServer, err := f.CreateHealthServer(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create health server: %w", err)
	}

	app, err := NewApp(f.config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	app.db = db
	app.services = services
	app.bot = telegramBot
	app.api = apiServer
	app.health = healthServer

	f.logger.Info("App created successfully with all dependencies")
	return app, nil
}
