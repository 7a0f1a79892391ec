package logger

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := Build(Options{
		Level: "info",
		JSON:  true,
		Rotate: FileRotate{
			Enable:   true,
			Filename: file,
		},
	})
	l.Info("hello", zap.String("k", "v"))
	l.Debug("dropped")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestRedirectStdLog(t *testing.T) {
	file := filepath.Join(t.TempDir(), "std.log")
	l, cleanup := Build(Options{Level: "debug", JSON: true, Rotate: FileRotate{Enable: true, Filename: file}})
	undo := RedirectStdLog(l, zapcore.WarnLevel)
	log.Print("from stdlib")
	undo()
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "from stdlib")
	assert.Contains(t, string(b), `"level":"warn"`)
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("nonsense", false)
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
