// Package bot содержит Telegram-интерфейс приложения.
package bot

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueFull возвращается, когда очередь задач воркер пула заполнена
var ErrQueueFull = fmt.Errorf("worker pool queue is full")

// Job представляет задачу для обработки
type Job struct {
	UpdateID int
	ChatID   int64
	Command  string
	Handler  func() error
}

// WorkerPool пул воркеров для обработки обновлений
type WorkerPool struct {
	workers  int
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *zap.Logger
	stopOnce sync.Once
	stopped  bool
	mu       sync.RWMutex
}

// NewWorkerPool создает новый пул воркеров
func NewWorkerPool(workers int, queueSize int, logger *zap.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Start запускает пул воркеров
func (wp *WorkerPool) Start() {
	wp.logger.Info("Starting worker pool", zap.Int("workers", wp.workers))

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop останавливает пул воркеров
func (wp *WorkerPool) Stop() {
	wp.logger.Info("Stopping worker pool")
	wp.cancel()

	wp.stopOnce.Do(func() {
		wp.mu.Lock()
		wp.stopped = true
		wp.mu.Unlock()
		close(wp.jobQueue)
	})

	wp.wg.Wait()
	wp.logger.Info("Worker pool stopped")
}

// Submit добавляет задачу в очередь
func (wp *WorkerPool) Submit(job Job) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return ErrQueueFull
	}

	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	default:
		return ErrQueueFull
	}
}

// worker основной цикл воркера
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	wp.logger.Debug("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				wp.logger.Debug("Worker stopping", zap.Int("worker_id", id))
				return
			}

			if err := job.Handler(); err != nil {
				wp.logger.Error("Job handler failed",
					zap.Int("update_id", job.UpdateID),
					zap.Int64("chat_id", job.ChatID),
					zap.String("command", job.Command),
					zap.Error(err))
			}
		case <-wp.ctx.Done():
			wp.logger.Debug("Worker stopping", zap.Int("worker_id", id))
			return
		}
	}
}
