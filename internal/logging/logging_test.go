package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/tip/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	config.Load()
	return tmp
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("TIP_LOGGING_ENABLED", "true")
	t.Setenv("TIP_LOGGING_LEVEL", "warn")
	t.Setenv("TIP_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	assert.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugAndQuietOverrideLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("TIP_LOGGING_LEVEL", "warn")
	t.Setenv("TIP_DEBUG", "true")
	t.Setenv("TIP_QUIET", "true")
	config.Load()
	assert.Equal(t, "debug", FromGlobalConfig().Level)

	t.Setenv("TIP_DEBUG", "")
	config.Load()
	assert.Equal(t, "error", FromGlobalConfig().Level)
}

func TestLogDirUsesStateDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "tip", "logs"), dir)
}

func TestInitDisabledReturnsNoop(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	_, ok := l.(noopLogger)
	assert.True(t, ok)
	assert.NoError(t, l.Shutdown())
}

func TestInitWritesJSON(t *testing.T) {
	setupTest(t)
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Command = "tip test"

	l, err := Init(cfg)
	require.NoError(t, err)
	impl := l.(*loggerImpl)
	l.With("component", "toast").Warn("invalid type", "type", "bogus")
	require.NoError(t, l.Shutdown())

	assert.True(t, strings.HasSuffix(impl.filePath(), "_tip_test.log"))
	data, err := os.ReadFile(impl.filePath())
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "invalid type", entry["msg"])
	assert.Equal(t, "toast", entry["component"])
	assert.Equal(t, "bogus", entry["type"])
	assert.Equal(t, "tip test", entry["command"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "id", "toast-1")
	l.Error("failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "id=toast-1")
	assert.Contains(t, out, "failed")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("bogus"))
	assert.Equal(t, parseLevel("warn"), parseLevel("WARNING"))
	assert.NotEqual(t, parseLevel("debug"), parseLevel("error"))
}

func TestGlobalLogger(t *testing.T) {
	SetGlobal(nil)
	_, ok := GetGlobal().(noopLogger)
	assert.True(t, ok)
	assert.Equal(t, "", CurrentLogFile())

	var buf bytes.Buffer
	SetGlobal(New(&buf, "info"))
	t.Cleanup(func() { SetGlobal(nil) })
	GetGlobal().Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NoError(t, ShutdownGlobal())
}

func TestRotateKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"tip_a.log", "tip_b.log", "tip_c.log", "other.log"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0600))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"tip_c.log", "other.log"}, names)
}
