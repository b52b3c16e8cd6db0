package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/config"
	"talentflow/internal/logging/adapters"
)

func newBufferLogger(t *testing.T, format string) (*MultiLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := NewMultiLogger()
	require.NoError(t, logger.AddAdapter(adapters.NewWriterAdapter("buf", adapters.StdoutConfig{Format: format}, buf)))
	return logger, buf
}

func TestMultiLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")
	logger.SetLevel(WarnLevel)

	logger.Info("dropped")
	logger.Warn("kept", map[string]interface{}{"candidate_id": "3"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "3", entry["candidate_id"])
}

func TestDerivedLoggersShareAdapters(t *testing.T) {
	logger, buf := newBufferLogger(t, "text")

	ctx := ContextWithRequestID(context.Background(), "req-1")
	child := logger.WithContext(ctx).WithField("component", "store")
	child.Info("created")

	out := buf.String()
	assert.Contains(t, out, "[INFO] created")
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "request_id=req-1")

	// parent fields are not polluted by the child
	buf.Reset()
	logger.Info("parent")
	assert.NotContains(t, buf.String(), "component=store")
}

func TestDuplicateAdapterRejected(t *testing.T) {
	logger, _ := newBufferLogger(t, "json")
	err := logger.AddAdapter(adapters.NewWriterAdapter("buf", adapters.StdoutConfig{}, &bytes.Buffer{}))
	assert.Error(t, err)
	assert.Error(t, logger.RemoveAdapter("missing"))
}

func TestManagerInitializeWithFileAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.Adapters = []config.LogAdapterConfig{
		{Name: "file", Type: "file", Enabled: true, Options: map[string]interface{}{"file_path": path, "format": "json"}},
		{Name: "disabled", Type: "bogus", Enabled: false},
	}

	manager := NewManager()
	require.NoError(t, manager.Initialize(cfg))
	manager.GetLogger().Debug("hello", map[string]interface{}{"k": "v"})
	require.NoError(t, manager.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestManagerInitializeUnknownAdapter(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Adapters = []config.LogAdapterConfig{{Name: "x", Type: "bogus", Enabled: true}}
	assert.Error(t, NewManager().Initialize(cfg))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, InfoLevel, ParseLogLevel("nonsense"))
}
