package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(minLevel LogLevel) (*SystemLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	sl := NewSystemLogger(SystemLoggerConfig{
		Out:         buf,
		MinLevel:    minLevel,
		Service:     "culqi-gateway",
		Environment: "test",
	})
	return sl, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) SystemLog {
	t.Helper()
	var entry SystemLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSystemLogger_WritesJSONLines(t *testing.T) {
	sl, buf := newBufferLogger(LevelDebug)

	sl.Info("charge created", LogContext{
		Operation: "create-charge",
		RequestID: "req_1",
		Fields:    map[string]any{"charge_id": "chr_1"},
	})

	entry := decodeLine(t, buf)
	assert.Equal(t, LevelInfo, entry.Level)
	assert.Equal(t, "charge created", entry.Message)
	assert.Equal(t, "create-charge", entry.Operation)
	assert.Equal(t, "req_1", entry.RequestID)
	assert.Equal(t, "chr_1", entry.Fields["charge_id"])
	assert.Equal(t, "culqi-gateway", entry.Service)
	assert.Equal(t, "test", entry.Environment)
	assert.False(t, entry.Timestamp.IsZero())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestSystemLogger_ErrorIncludesError(t *testing.T) {
	sl, buf := newBufferLogger(LevelDebug)

	sl.Error("audit write failed", errors.New("disk full"))

	entry := decodeLine(t, buf)
	assert.Equal(t, LevelError, entry.Level)
	assert.Equal(t, "disk full", entry.Error)
}

func TestSystemLogger_MinLevelFiltersOutput(t *testing.T) {
	sl, buf := newBufferLogger(LevelWarn)

	sl.Debug("noise")
	sl.Info("still noise")
	assert.Zero(t, buf.Len())

	sl.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestSystemLogger_DefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	sl := NewSystemLogger(SystemLoggerConfig{Out: buf})

	sl.Debug("dropped")
	assert.Zero(t, buf.Len())

	sl.Info("written")
	assert.NotZero(t, buf.Len())
}

func TestGlobalLoggerFallback(t *testing.T) {
	sl := GetGlobalLogger()
	require.NotNil(t, sl)
}
