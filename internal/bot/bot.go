// Package bot содержит Telegram-интерфейс приложения.
package bot

import (
	"context"
	"fmt"
	"time"

	"focusboard/internal/config"
	"focusboard/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot представляет Telegram-бота приложения
type Bot struct {
	api         *tgbotapi.BotAPI
	services    *service.Services
	config      *config.Config
	location    *time.Location
	workerPool  *WorkerPool
	rateLimiter *RateLimiter
	logger      *zap.Logger
}

// Проверяем, что Bot реализует интерфейс отправителя рассылки
var _ service.DigestSender = (*Bot)(nil)

// NewBot создает нового Telegram-бота
func NewBot(cfg *config.Config, services *service.Services, logger *zap.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	api.Debug = false
	logger.Info("Telegram bot created", zap.String("username", api.Self.UserName))

	return &Bot{
		api:         api,
		services:    services,
		config:      cfg,
		location:    cfg.Location(),
		workerPool:  NewWorkerPool(4, 64, logger),
		rateLimiter: NewRateLimiter(10, time.Minute, logger),
		logger:      logger,
	}, nil
}

// Start запускает обработку обновлений
func (b *Bot) Start(ctx context.Context) error {
	// Удаляем webhook если есть
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	b.workerPool.Start()
	defer b.workerPool.Stop()

	// Периодическая очистка rate limiter
	go b.runRateLimiterCleanup(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Bot stopping")
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(update)
		}
	}
}

// dispatch отправляет обновление на обработку в воркер пул
func (b *Bot) dispatch(update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	command := update.Message.Command()

	if !b.rateLimiter.Allow(chatID) {
		b.reply(chatID, "Too many requests, please slow down.")
		return
	}

	job := Job{
		UpdateID: update.UpdateID,
		ChatID:   chatID,
		Command:  command,
		Handler: func() error {
			return b.handleCommand(update)
		},
	}

	if err := b.workerPool.Submit(job); err != nil {
		b.logger.Warn("Failed to submit update to worker pool",
			zap.Int("update_id", update.UpdateID),
			zap.Error(err))
	}
}

// runRateLimiterCleanup периодически очищает rate limiter
func (b *Bot) runRateLimiterCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.rateLimiter.Cleanup()
		}
	}
}

// reply отправляет текстовое сообщение в чат
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// botCommands возвращает список команд бота
func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Register this chat"},
		{Command: "today", Description: "Show today's schedule"},
		{Command: "plan", Description: "Build a fresh schedule for today"},
		{Command: "habits", Description: "List habits with streaks"},
		{Command: "done", Description: "Complete a habit for today"},
		{Command: "digest", Description: "Toggle the morning digest"},
	}
}
