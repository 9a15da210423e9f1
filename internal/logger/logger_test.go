package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output: %s", buf.String())
	return entry
}

func TestNewWithWriter_ProductionEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Info("lead scored", Fields{"lead_id": 42, "total": 86})

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "lead scored", entry["message"])
	assert.EqualValues(t, 42, entry["lead_id"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Debug("noisy", nil)

	assert.Empty(t, buf.String())
}

func TestNewWithWriter_DevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)

	log.Debug("refresh tick", Fields{"batch": 3})

	out := buf.String()
	assert.Contains(t, out, "refresh tick")
	assert.Contains(t, out, "batch")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	log := New("production")
	require.NotNil(t, log)
	assert.NotNil(t, log.GetZerolog())
}

func TestError_IncludesErr(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Error("publish failed", errors.New("channel closed"), Fields{"exchange": "leadrank.outreach"})

	entry := decode(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "channel closed", entry["error"])
	assert.Equal(t, "leadrank.outreach", entry["exchange"])
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("production", &buf).Warn("investors truncated", Fields{"limit": 1000})

	entry := decode(t, &buf)
	assert.Equal(t, "warn", entry["level"])
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("production", &buf)

	base.WithRequestID("req-1").
		WithComponent("handlers").
		With(Fields{"lead_id": 9}).
		Info("matched", nil)

	entry := decode(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "handlers", entry["component"])
	assert.EqualValues(t, 9, entry["lead_id"])

	buf.Reset()
	base.Info("parent unchanged", nil)
	entry = decode(t, &buf)
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "component")
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info("discarded", Fields{"k": "v"})
		log.WithComponent("x").Error("discarded", errors.New("e"), nil)
	})
}
