// Package bot содержит Telegram-интерфейс приложения.
package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"focusboard/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleCommand обрабатывает команду из обновления
func (b *Bot) handleCommand(update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	command := update.Message.Command()
	args := strings.TrimSpace(update.Message.CommandArguments())

	b.logger.Debug("Handling command",
		zap.Int64("chat_id", chatID),
		zap.String("command", command))

	switch command {
	case "start":
		return b.handleStart(chatID, update.Message.From)
	case "today":
		return b.handleToday(chatID)
	case "plan":
		return b.handlePlan(chatID)
	case "habits":
		return b.handleHabits(chatID)
	case "done":
		return b.handleDone(chatID, args)
	case "digest":
		return b.handleDigest(chatID)
	default:
		b.reply(chatID, "Unknown command. Try /today, /plan or /habits.")
		return nil
	}
}

// handleStart регистрирует чат пользователя
func (b *Bot) handleStart(chatID int64, from *tgbotapi.User) error {
	username := ""
	if from != nil {
		username = from.UserName
	}

	user, err := b.services.User.RegisterChat(chatID, username)
	if err != nil {
		b.reply(chatID, "Something went wrong, please try again later.")
		return fmt.Errorf("failed to register chat: %w", err)
	}

	b.reply(chatID, fmt.Sprintf(
		"Welcome to FocusBoard! Your account #%d is linked to this chat.\n"+
			"Use /plan to build today's study schedule.", user.UserID))
	return nil
}

// resolveUser находит пользователя по чату
func (b *Bot) resolveUser(chatID int64) (*model.User, error) {
	user, err := b.services.User.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		b.reply(chatID, "This chat is not registered yet. Send /start first.")
		return nil, nil
	}
	return user, nil
}

// handleToday показывает сохраненное расписание на сегодня
func (b *Bot) handleToday(chatID int64) error {
	user, err := b.resolveUser(chatID)
	if err != nil || user == nil {
		return err
	}

	day := time.Now().In(b.location)
	events, err := b.services.Schedule.GetEventsForDate(user.UserID, day)
	if err != nil {
		b.reply(chatID, "Failed to load your schedule, please try again later.")
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	b.reply(chatID, FormatSchedule(day, events))
	return nil
}

// handlePlan строит свежее расписание на сегодня
func (b *Bot) handlePlan(chatID int64) error {
	user, err := b.resolveUser(chatID)
	if err != nil || user == nil {
		return err
	}

	day := time.Now().In(b.location)
	opt, err := b.services.Schedule.BuildDailyPlan(user.UserID, day)
	if err != nil {
		b.reply(chatID, "Failed to build a schedule, please try again later.")
		return fmt.Errorf("failed to build daily plan: %w", err)
	}

	b.reply(chatID, FormatOptimization(opt))
	return nil
}

// handleHabits показывает привычки со статистикой
func (b *Bot) handleHabits(chatID int64) error {
	user, err := b.resolveUser(chatID)
	if err != nil || user == nil {
		return err
	}

	stats, err := b.services.Habit.GetStats(user.UserID, time.Now().In(b.location))
	if err != nil {
		b.reply(chatID, "Failed to load habits, please try again later.")
		return fmt.Errorf("failed to load habit stats: %w", err)
	}

	b.reply(chatID, FormatHabitStats(stats))
	return nil
}

// handleDone отмечает привычку выполненной за сегодня
func (b *Bot) handleDone(chatID int64, args string) error {
	user, err := b.resolveUser(chatID)
	if err != nil || user == nil {
		return err
	}

	index, err := strconv.Atoi(args)
	if err != nil || index < 1 {
		b.reply(chatID, "Usage: /done <habit number from /habits>")
		return nil
	}

	now := time.Now().In(b.location)
	stats, err := b.services.Habit.GetStats(user.UserID, now)
	if err != nil {
		b.reply(chatID, "Failed to load habits, please try again later.")
		return fmt.Errorf("failed to load habit stats: %w", err)
	}

	if index > len(stats) {
		b.reply(chatID, fmt.Sprintf("You only have %d habits.", len(stats)))
		return nil
	}

	habit := stats[index-1].Habit
	if err := b.services.Habit.CompleteToday(habit.HabitID, now); err != nil {
		b.reply(chatID, "Failed to complete the habit, please try again later.")
		return fmt.Errorf("failed to complete habit: %w", err)
	}

	b.reply(chatID, fmt.Sprintf("Nice! %q is done for today.", habit.Title))
	return nil
}

// handleDigest переключает утреннюю рассылку
func (b *Bot) handleDigest(chatID int64) error {
	user, err := b.resolveUser(chatID)
	if err != nil || user == nil {
		return err
	}

	enabled := !user.DigestEnabled
	if err := b.services.User.SetDigestEnabled(user.UserID, enabled); err != nil {
		b.reply(chatID, "Failed to update digest settings.")
		return fmt.Errorf("failed to toggle digest: %w", err)
	}

	if enabled {
		b.reply(chatID, "Morning digest enabled.")
	} else {
		b.reply(chatID, "Morning digest disabled.")
	}
	return nil
}

// SendDailySchedule отправляет пользователю расписание на день.
// Реализует service.DigestSender.
func (b *Bot) SendDailySchedule(user model.User, day time.Time) error {
	events, err := b.services.Schedule.GetEventsForDate(user.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to load schedule for digest: %w", err)
	}

	msg := tgbotapi.NewMessage(user.ChatID, FormatSchedule(day, events))
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	return nil
}
