package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden", "k", 1)
	log.Info("level up", "learner", "l1", "new_level", 3)
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "level up", entry["msg"])
	assert.Equal(t, "l1", entry["learner"])
	assert.Equal(t, float64(3), entry["new_level"])
}

func TestNew_DefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{}, &buf)
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_RejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: "chatty"}, nil)
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"}, nil)
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adaptly.log")
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", File: path}, &buf)
	require.NoError(t, err)

	log.Debug("to file", "n", 1)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, buf.String(), "to file")
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("learner", "l1")

	log.Error("boom", "op", "attempt")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "l1", fields["learner"])
	assert.Equal(t, "attempt", fields["op"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("ignored")
	log.With("a", 1).Warn("ignored")
}
