// Package background runs jobs off the request path on a bounded worker pool.
package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentflow/internal/config"
	"talentflow/internal/logging"
	"talentflow/pkg/utils"
)

// Task manager configuration constants
const (
	DefaultMaxWorkers   = 4
	DefaultMaxQueueSize = 64
	DefaultTaskTimeout  = 60 * time.Second

	MaxWorkers   = 1000
	MaxQueueSize = 10000

	resultRetention = 24 * time.Hour
	cleanupInterval = time.Hour
)

// Manager is a fixed pool of workers fed by a bounded queue. Submissions
// beyond the queue size are rejected rather than blocking the caller.
type Manager struct {
	store     TaskStore
	logger    logging.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	running   bool
	taskChan  chan *taskExecution
	maxWorker int
	timeout   time.Duration
}

type taskExecution struct {
	processID string
	name      string
	run       func(ctx context.Context) error
}

// validateConfig validates and returns safe configuration values
func validateConfig(cfg *config.Config) (workers, queue int, err error) {
	workers = cfg.Workers.PoolSize
	if workers <= 0 {
		workers = DefaultMaxWorkers
	} else if workers > MaxWorkers {
		return 0, 0, fmt.Errorf("worker pool size (%d) exceeds maximum (%d)", workers, MaxWorkers)
	}

	queue = cfg.Workers.QueueSize
	if queue <= 0 {
		queue = DefaultMaxQueueSize
	} else if queue > MaxQueueSize {
		return 0, 0, fmt.Errorf("queue size (%d) exceeds maximum (%d)", queue, MaxQueueSize)
	}
	return workers, queue, nil
}

func NewManager(cfg *config.Config, logger logging.Logger) *Manager {
	workers, queue, err := validateConfig(cfg)
	if err != nil {
		logger.Warn("Task manager configuration validation failed, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		workers, queue = DefaultMaxWorkers, DefaultMaxQueueSize
	}

	timeout := cfg.Workers.Timeout
	if timeout <= 0 {
		timeout = DefaultTaskTimeout
	}

	logger.Info("Task manager configuration initialized", map[string]interface{}{
		"max_workers":    workers,
		"max_queue_size": queue,
		"task_timeout":   timeout.String(),
	})

	return &Manager{
		store:     NewInMemoryTaskStore(),
		logger:    logger.WithField("component", "background"),
		taskChan:  make(chan *taskExecution, queue),
		maxWorker: workers,
		timeout:   timeout,
	}
}

// Start launches the workers.
func (tm *Manager) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}
	if tm.ctx != nil {
		return fmt.Errorf("task manager cannot be restarted")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorker; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	go tm.cleanupRoutine()

	tm.logger.Info("Task manager started", map[string]interface{}{"max_workers": tm.maxWorker})
	return nil
}

// Stop stops accepting jobs and waits for queued ones to finish. Jobs still
// running when ctx expires are cancelled.
func (tm *Manager) Stop(ctx context.Context) error {
	tm.mu.Lock()
	if !tm.running {
		tm.mu.Unlock()
		return nil
	}
	tm.running = false
	close(tm.taskChan)
	tm.mu.Unlock()

	tm.logger.Info("Stopping task manager...")

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.cancel()
		tm.logger.Info("Task manager stopped gracefully")
		return nil
	case <-ctx.Done():
		tm.cancel()
		<-done
		tm.logger.Warn("Task manager shutdown timed out")
		return ctx.Err()
	}
}

// Submit queues job under name.
func (tm *Manager) Submit(name string, job func(ctx context.Context) error) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if !tm.running {
		return ErrNotRunning
	}

	exec := &taskExecution{processID: utils.GenerateRequestID(), name: name, run: job}
	if err := tm.store.Store(tm.ctx, &TaskResult{
		ProcessID: exec.processID,
		Name:      name,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	select {
	case tm.taskChan <- exec:
		tm.logger.Debug("Task accepted", map[string]interface{}{"process_id": exec.processID, "task": name})
		return nil
	default:
		failed := time.Now()
		_ = tm.store.Update(tm.ctx, &TaskResult{
			ProcessID:   exec.processID,
			Name:        name,
			Status:      TaskStatusFailure,
			Error:       ErrQueueFull.Error(),
			CreatedAt:   failed,
			CompletedAt: &failed,
		})
		return ErrQueueFull
	}
}

// ListTasks lists all retained task results
func (tm *Manager) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

// IsHealthy checks if the task manager is accepting work
func (tm *Manager) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

// QueueDepth reports queued jobs not yet picked up by a worker.
func (tm *Manager) QueueDepth() int {
	return len(tm.taskChan)
}

// Health fails when the manager is stopped or its queue is full.
func (tm *Manager) Health(context.Context) error {
	if !tm.IsHealthy() {
		return ErrNotRunning
	}
	if depth := tm.QueueDepth(); depth >= cap(tm.taskChan) {
		return fmt.Errorf("%w: %d jobs waiting", ErrQueueFull, depth)
	}
	return nil
}

func (tm *Manager) worker(workerID int) {
	defer tm.wg.Done()

	for task := range tm.taskChan {
		tm.processTask(workerID, task)
	}
}

func (tm *Manager) processTask(workerID int, task *taskExecution) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(tm.ctx, tm.timeout)
	defer cancel()

	if result, err := tm.store.Get(ctx, task.processID); err == nil {
		result.Status = TaskStatusProcessing
		_ = tm.store.Update(ctx, result)
	}

	err := tm.run(ctx, task)
	elapsed := time.Since(start)
	completed := time.Now()

	result, getErr := tm.store.Get(ctx, task.processID)
	if getErr != nil {
		result = &TaskResult{ProcessID: task.processID, Name: task.name, CreatedAt: start}
		_ = tm.store.Store(ctx, result)
	}
	result.ProcessingTime = &elapsed
	result.CompletedAt = &completed

	fields := map[string]interface{}{
		"worker_id":       workerID,
		"process_id":      task.processID,
		"task":            task.name,
		"processing_time": utils.FormatDuration(elapsed),
	}
	if err != nil {
		result.Status = TaskStatusFailure
		result.Error = err.Error()
		fields["error"] = err.Error()
		tm.logger.Error("Task execution failed", fields)
	} else {
		result.Status = TaskStatusSuccess
		tm.logger.Info("Task execution completed successfully", fields)
	}

	if err := tm.store.Update(ctx, result); err != nil {
		tm.logger.Error("Failed to store task result", map[string]interface{}{"error": err.Error()})
	}
}

// run executes the job, turning a panic into an error.
func (tm *Manager) run(ctx context.Context, task *taskExecution) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task.run(ctx)
}

// cleanupRoutine periodically cleans up old task results until the
// manager's context is cancelled.
func (tm *Manager) cleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			if err := tm.store.Cleanup(context.Background(), resultRetention); err != nil {
				tm.logger.Error("Failed to cleanup old task results", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
