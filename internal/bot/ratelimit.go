// Package bot содержит Telegram-интерфейс приложения.
package bot

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateLimiter ограничивает количество запросов от одного чата
type RateLimiter struct {
	requests map[int64][]time.Time
	mu       sync.Mutex
	limit    int
	window   time.Duration
	logger   *zap.Logger
}

// NewRateLimiter создает новый rate limiter
func NewRateLimiter(limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
		logger:   logger,
	}
}

// Allow проверяет, разрешен ли запрос от чата
func (rl *RateLimiter) Allow(chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[chatID][:0]
	for _, ts := range rl.requests[chatID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[chatID] = recent
		rl.logger.Debug("Rate limit exceeded", zap.Int64("chat_id", chatID))
		return false
	}

	rl.requests[chatID] = append(recent, now)
	return true
}

// Cleanup очищает устаревшие записи
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for chatID, times := range rl.requests {
		recent := times[:0]
		for _, ts := range times {
			if ts.After(cutoff) {
				recent = append(recent, ts)
			}
		}
		if len(recent) == 0 {
			delete(rl.requests, chatID)
		} else {
			rl.requests[chatID] = recent
		}
	}
}
