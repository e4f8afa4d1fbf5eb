package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/walkbox/config"
)

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel), "fallback is a no-op logger")
}

func TestInitializeWriterConsole(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	cfg := config.Default().Logger
	cfg.Level = "debug"
	InitializeWriter(cfg, &buf)

	GetLogger().Debug("WalkBox built", zap.Int("vertices", 2))
	Sync()

	out := buf.String()
	assert.Contains(t, out, "WalkBox built")
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "walkbox.")
	assert.Contains(t, out, `"vertices": 2`)
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	cfg := config.Default().Logger
	InitializeWriter(cfg, &first)
	InitializeWriter(cfg, &second)

	GetLogger().Info("hello")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestLevelFiltering(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	cfg := config.Default().Logger
	cfg.Level = "warn"
	InitializeWriter(cfg, &buf)

	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOnlyJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "walkbox.log")
	cfg := config.Default().Logger
	cfg.LogFile = path
	InitializeFileOnly(cfg)

	GetLogger().Info("tick", zap.Int("n", 1))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tick"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}
