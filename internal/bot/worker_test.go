package bot

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWorkerPool(t *testing.T) {
	logger := zap.NewNop()
	pool := NewWorkerPool(2, 10, logger)

	pool.Start()
	defer pool.Stop()

	time.Sleep(100 * time.Millisecond)

	var results sync.Map
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		jobID := i

		job := Job{
			UpdateID: jobID,
			ChatID:   int64(jobID),
			Command:  "test",
			Handler: func() error {
				defer wg.Done()
				results.Store(jobID, true)
				return nil
			},
		}

		if err := pool.Submit(job); err != nil {
			t.Errorf("Failed to submit job %d: %v", jobID, err)
		}
	}

	wg.Wait()

	for i := 0; i < 5; i++ {
		if _, ok := results.Load(i); !ok {
			t.Errorf("Job %d was not processed", i)
		}
	}
}

func TestWorkerPoolWithErrors(t *testing.T) {
	logger := zap.NewNop()
	pool := NewWorkerPool(1, 5, logger)

	pool.Start()
	defer pool.Stop()

	time.Sleep(100 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)

	job := Job{
		UpdateID: 1,
		ChatID:   1,
		Command:  "error_test",
		Handler: func() error {
			defer wg.Done()
			return errors.New("test error")
		},
	}

	if err := pool.Submit(job); err != nil {
		t.Errorf("Failed to submit job: %v", err)
	}

	wg.Wait()
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	logger := zap.NewNop()
	pool := NewWorkerPool(1, 5, logger)

	pool.Start()
	pool.Stop()

	job := Job{
		UpdateID: 1,
		ChatID:   1,
		Command:  "test",
		Handler: func() error {
			return nil
		},
	}

	if err := pool.Submit(job); err == nil {
		t.Error("Expected error when submitting job to stopped pool")
	}
}

func TestWorkerPoolQueueFull(t *testing.T) {
	logger := zap.NewNop()
	pool := NewWorkerPool(1, 1, logger)
	// Пул не запущен, задачи копятся в очереди

	blocker := Job{UpdateID: 1, ChatID: 1, Command: "test", Handler: func() error { return nil }}
	if err := pool.Submit(blocker); err != nil {
		t.Fatalf("First submit should fit into the queue: %v", err)
	}

	overflow := Job{UpdateID: 2, ChatID: 1, Command: "test", Handler: func() error { return nil }}
	if err := pool.Submit(overflow); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}

	pool.Start()
	pool.Stop()
}

func TestRateLimiter(t *testing.T) {
	logger := zap.NewNop()
	limiter := NewRateLimiter(2, time.Minute, logger)

	if !limiter.Allow(1) || !limiter.Allow(1) {
		t.Error("Expected first two requests to be allowed")
	}
	if limiter.Allow(1) {
		t.Error("Expected third request within window to be rejected")
	}

	// Другой чат имеет собственный лимит
	if !limiter.Allow(2) {
		t.Error("Expected request from another chat to be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	logger := zap.NewNop()
	limiter := NewRateLimiter(1, time.Nanosecond, logger)

	limiter.Allow(1)
	time.Sleep(time.Millisecond)
	limiter.Cleanup()

	if len(limiter.requests) != 0 {
		t.Errorf("Expected cleanup to remove stale entries, %d left", len(limiter.requests))
	}

	if !limiter.Allow(1) {
		t.Error("Expected request after window expiry to be allowed")
	}
}
