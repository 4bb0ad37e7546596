package gizmo

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger writing to the rotating log file from c. The
// terminal belongs to the TUI, so nothing is written to stdout.
func NewLogger(c Config) (*logrus.Logger, io.Closer) {
	sink := &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}

	log := logrus.New()
	log.SetOutput(sink)
	log.SetLevel(c.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return log, sink
}
