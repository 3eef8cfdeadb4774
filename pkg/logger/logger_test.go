package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	l.Warn("fetch failed",
		String("source", "fred"),
		Int("attempt", 3),
		Float64("score", -2.5),
		Duration("took", 1500*time.Millisecond),
		Strings("keys", []string{"sofr", "cpi"}),
		Bool("cached", false),
		Error(errors.New("boom")),
	)

	m := decode(t, &buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "fetch failed", m["message"])
	assert.Equal(t, "fred", m["source"])
	assert.Equal(t, 3.0, m["attempt"])
	assert.Equal(t, -2.5, m["score"])
	assert.Equal(t, 1500.0, m["took"])
	assert.Equal(t, "sofr, cpi", m["keys"])
	assert.Equal(t, false, m["cached"])
	assert.Equal(t, "boom", m["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)
	l.Info("hidden")
	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel).With(String("component", "news"))
	l.Info("ok")
	assert.Equal(t, "news", decode(t, &buf)["component"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}
