package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"talentflow/internal/logging/types"
)

// HTTPAdapter ships log entries in JSON batches to a collector endpoint such
// as Better Stack. Entries are buffered and flushed when the batch fills,
// when an error-level entry arrives, or on the flush interval.
type HTTPAdapter struct {
	name    string
	config  HTTPConfig
	client  *http.Client
	breaker *CircuitBreaker

	mu      sync.Mutex
	buffer  []httpEntry
	dropped int64
	lastErr error

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// HTTPConfig represents configuration for the HTTP adapter
type HTTPConfig struct {
	Endpoint         string        `yaml:"endpoint"`
	Token            string        `yaml:"token"`
	BatchSize        int           `yaml:"batch_size"`
	FlushInterval    time.Duration `yaml:"flush_interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold int           `yaml:"failure_threshold"`
	ResetTimeout     time.Duration `yaml:"reset_timeout"`
	UserAgent        string        `yaml:"user_agent"`
}

type httpEntry struct {
	Timestamp time.Time              `json:"dt"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// NewHTTPAdapter creates the adapter and starts its flush loop.
func NewHTTPAdapter(name string, config HTTPConfig) (*HTTPAdapter, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for HTTP adapter")
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "talentflow/1.0"
	}

	a := &HTTPAdapter{
		name:    name,
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		breaker: NewCircuitBreaker(config.FailureThreshold, config.ResetTimeout),
		buffer:  make([]httpEntry, 0, config.BatchSize),
		stopCh:  make(chan struct{}),
	}

	a.wg.Add(1)
	go a.flushLoop()
	return a, nil
}

// Write buffers the entry.
func (a *HTTPAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	a.buffer = append(a.buffer, httpEntry{
		Timestamp: entry.Timestamp,
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Fields:    entry.Fields,
	})
	full := len(a.buffer) >= a.config.BatchSize || entry.Level >= types.ErrorLevel
	a.mu.Unlock()

	if full {
		return a.Flush()
	}
	return nil
}

// Flush sends buffered entries. While the circuit is open the batch is dropped.
func (a *HTTPAdapter) Flush() error {
	a.mu.Lock()
	if len(a.buffer) == 0 {
		a.mu.Unlock()
		return nil
	}
	batch := a.buffer
	a.buffer = make([]httpEntry, 0, a.config.BatchSize)
	a.mu.Unlock()

	if !a.breaker.CanCall() {
		a.record(int64(len(batch)), nil)
		return fmt.Errorf("log collector circuit open, dropped %d entries", len(batch))
	}

	if err := a.send(batch); err != nil {
		a.breaker.RecordFailure()
		a.record(int64(len(batch)), err)
		return err
	}
	a.breaker.RecordSuccess()
	a.record(0, nil)
	return nil
}

func (a *HTTPAdapter) record(dropped int64, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dropped += dropped
	if err != nil || dropped == 0 {
		a.lastErr = err
	}
}

func (a *HTTPAdapter) send(batch []httpEntry) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal log batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", a.config.UserAgent)
	if a.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.Token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send log batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	return fmt.Errorf("log collector returned %d: %s", resp.StatusCode, string(body))
}

func (a *HTTPAdapter) flushLoop() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			_ = a.Flush()
		}
	}
}

// Close stops the flush loop and sends what is left.
func (a *HTTPAdapter) Close() error {
	close(a.stopCh)
	a.wg.Wait()
	err := a.Flush()
	a.client.CloseIdleConnections()
	return err
}

// Health fails while the circuit is open or after a failed send.
func (a *HTTPAdapter) Health() error {
	if state := a.breaker.State(); state == CircuitOpen {
		return fmt.Errorf("log collector circuit %s", state)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastErr != nil {
		return fmt.Errorf("adapter unhealthy: %w", a.lastErr)
	}
	return nil
}

func (a *HTTPAdapter) Name() string {
	return a.name
}

// Dropped counts entries discarded because the collector was unavailable.
func (a *HTTPAdapter) Dropped() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker opens after failureThreshold consecutive failures and lets
// one trial call through once resetTimeout has passed.
type CircuitBreaker struct {
	mu               sync.Mutex
	failureThreshold int
	resetTimeout     time.Duration
	failures         int
	lastFailure      time.Time
	state            CircuitState
	now              func() time.Time
}

func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		state:            CircuitClosed,
		now:              time.Now,
	}
}

// CanCall checks if the circuit breaker allows the call
func (cb *CircuitBreaker) CanCall() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.resetTimeout {
			cb.state = CircuitHalfOpen
			return true
		}
		return false
	default:
		// a trial call is already in flight
		return false
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()
	if cb.state == CircuitHalfOpen || cb.failures >= cb.failureThreshold {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
