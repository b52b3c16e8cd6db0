package adapters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/logging/types"
)

type collector struct {
	mu      sync.Mutex
	batches [][]map[string]interface{}
	auth    string
	status  int
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = r.Header.Get("Authorization")
	if c.status != 0 {
		w.WriteHeader(c.status)
		return
	}
	var batch []map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&batch)
	c.batches = append(c.batches, batch)
	w.WriteHeader(http.StatusAccepted)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func entry(level types.LogLevel, msg string) *types.LogEntry {
	return &types.LogEntry{Level: level, Message: msg, Timestamp: time.Now(), Fields: map[string]interface{}{"k": "v"}}
}

func TestHTTPAdapterBatches(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	adapter, err := NewHTTPAdapter("collector", HTTPConfig{Endpoint: srv.URL, Token: "tok", BatchSize: 3, FlushInterval: time.Hour})
	require.NoError(t, err)

	require.NoError(t, adapter.Write(entry(types.InfoLevel, "one")))
	require.NoError(t, adapter.Write(entry(types.InfoLevel, "two")))
	assert.Equal(t, 0, c.count())

	require.NoError(t, adapter.Write(entry(types.InfoLevel, "three")))
	require.Equal(t, 1, c.count())
	assert.Len(t, c.batches[0], 3)
	assert.Equal(t, "Bearer tok", c.auth)
	assert.Equal(t, "one", c.batches[0][0]["message"])
	assert.Equal(t, "info", c.batches[0][0]["level"])

	// errors are sent right away
	require.NoError(t, adapter.Write(entry(types.ErrorLevel, "boom")))
	assert.Equal(t, 2, c.count())

	require.NoError(t, adapter.Write(entry(types.InfoLevel, "tail")))
	require.NoError(t, adapter.Close())
	assert.Equal(t, 3, c.count())
	assert.NoError(t, adapter.Health())
}

func TestHTTPAdapterOpensCircuit(t *testing.T) {
	c := &collector{status: http.StatusServiceUnavailable}
	srv := httptest.NewServer(c)
	defer srv.Close()

	adapter, err := NewHTTPAdapter("collector", HTTPConfig{
		Endpoint: srv.URL, BatchSize: 1, FlushInterval: time.Hour,
		FailureThreshold: 2, ResetTimeout: time.Minute,
	})
	require.NoError(t, err)
	defer adapter.Close()

	assert.Error(t, adapter.Write(entry(types.InfoLevel, "a")))
	assert.Error(t, adapter.Write(entry(types.InfoLevel, "b")))
	assert.Equal(t, CircuitOpen, adapter.breaker.State())
	assert.Error(t, adapter.Health())

	// dropped without a request while open
	assert.Error(t, adapter.Write(entry(types.InfoLevel, "c")))
	assert.EqualValues(t, 3, adapter.Dropped())
}

func TestCircuitBreakerHalfOpen(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(1, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.CanCall())

	now = now.Add(time.Minute)
	assert.True(t, cb.CanCall())
	assert.Equal(t, CircuitHalfOpen, cb.State())
	assert.False(t, cb.CanCall(), "only one trial call")

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	now = now.Add(time.Minute)
	require.True(t, cb.CanCall())
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestNewHTTPAdapterRequiresEndpoint(t *testing.T) {
	_, err := NewHTTPAdapter("collector", HTTPConfig{})
	assert.Error(t, err)
}
