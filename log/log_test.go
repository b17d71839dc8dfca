package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFilePlugin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primer.log")

	p, c := NewFilePlugin(path, zapcore.InfoLevel)
	logger := NewLogger(p)
	logger.Info("requested", zap.String("link", "/mdr/ct/packages"))
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/mdr/ct/packages")
}

func TestTeePlugin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primer.log")

	p, c := NewTeePlugin(path, zapcore.InfoLevel)
	logger := NewLogger(p)
	logger.Info("hello")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
