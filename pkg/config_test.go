package gizmo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GIZMO_CACHE_DIR", "")
	t.Setenv("GIZMO_GITHUB_API", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIZMO_LOG_FILE", "")
	t.Setenv("GIZMO_LOG_LEVEL", "")

	c := LoadConfig()
	assert.Equal(t, "https://api.github.com", c.GitHubAPI)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
	assert.Empty(t, c.ScratchDir)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("GIZMO_GITHUB_API", "http://127.0.0.1:9999")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GIZMO_LOG_LEVEL", "debug")

	c := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:9999", c.GitHubAPI)
	assert.Equal(t, "ghp_test", c.GitHubToken)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
}

func TestLoadConfigIgnoresBadLevel(t *testing.T) {
	t.Setenv("GIZMO_LOG_LEVEL", "loud")
	assert.Equal(t, logrus.InfoLevel, LoadConfig().LogLevel)
}

func TestScratchDirLifecycle(t *testing.T) {
	t.Setenv("GIZMO_CACHE_DIR", t.TempDir())
	t.Setenv("GIZMO_LOG_FILE", "")
	t.Setenv("GIZMO_LOG_LEVEL", "")

	c := LoadConfig()
	require.NoError(t, c.Prepare())

	assert.True(t, strings.HasPrefix(filepath.Base(c.ScratchDir), "best-gizmo-setup-wizard"))
	assert.Equal(t, filepath.Join(c.ScratchDir, "github_downloads"), c.DownloadsDir())
	assert.Equal(t, filepath.Join(c.ScratchDir, "logs", "gizmo-setup.log"), c.LogFile)

	log, sink := NewLogger(c)
	log.Info("hello")
	require.NoError(t, sink.Close())
	assert.FileExists(t, c.LogFile)

	require.NoError(t, c.Cleanup())
	_, err := os.Stat(c.ScratchDir)
	assert.True(t, os.IsNotExist(err))
}

func TestLoggerHonoursLevel(t *testing.T) {
	dir := t.TempDir()
	quiet := Config{LogFile: filepath.Join(dir, "quiet.log"), LogLevel: logrus.WarnLevel}
	loud := Config{LogFile: filepath.Join(dir, "loud.log"), LogLevel: logrus.InfoLevel}

	for _, c := range []Config{quiet, loud} {
		log, sink := NewLogger(c)
		log.Info("hello")
		require.NoError(t, sink.Close())
	}

	assert.NoFileExists(t, quiet.LogFile, "nothing at or above warn was logged")
	data, err := os.ReadFile(loud.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestCleanupWithoutScratchDir(t *testing.T) {
	assert.NoError(t, Config{}.Cleanup())
}
