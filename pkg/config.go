package gizmo

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	defaultGitHubAPI = "https://api.github.com"
	scratchDirPrefix = "best-gizmo-setup-wizard"
	downloadsDirName = "github_downloads"
	logsDirName      = "logs"
	defaultLogFile   = "gizmo-setup.log"
	defaultLogLevel  = logrus.InfoLevel
)

// Config is read from the environment; the wizard has no flags and no
// config file.
type Config struct {
	// CacheParent is where the scratch directory is created. Empty means
	// the system temp dir.
	CacheParent string
	// ScratchDir is created by Prepare and removed by Cleanup.
	ScratchDir  string
	GitHubAPI   string
	GitHubToken string
	LogFile     string
	LogLevel    logrus.Level
}

func LoadConfig() Config {
	c := Config{
		CacheParent: os.Getenv("GIZMO_CACHE_DIR"),
		GitHubAPI:   os.Getenv("GIZMO_GITHUB_API"),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		LogFile:     os.Getenv("GIZMO_LOG_FILE"),
		LogLevel:    defaultLogLevel,
	}
	if c.GitHubAPI == "" {
		c.GitHubAPI = defaultGitHubAPI
	}
	if lvl := os.Getenv("GIZMO_LOG_LEVEL"); lvl != "" {
		if parsed, err := logrus.ParseLevel(lvl); err == nil {
			c.LogLevel = parsed
		}
	}
	return c
}

// Prepare creates the scratch directory for this run.
func (c *Config) Prepare() error {
	dir, err := os.MkdirTemp(c.CacheParent, scratchDirPrefix)
	if err != nil {
		return err
	}
	c.ScratchDir = dir
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, logsDirName, defaultLogFile)
	}
	return nil
}

// DownloadsDir is the cache root for release assets.
func (c Config) DownloadsDir() string {
	return filepath.Join(c.ScratchDir, downloadsDirName)
}

// Cleanup removes the scratch directory and everything downloaded into it.
func (c Config) Cleanup() error {
	if c.ScratchDir == "" {
		return nil
	}
	return os.RemoveAll(c.ScratchDir)
}
