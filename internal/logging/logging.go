// Package logging builds the application logger from the log section of the
// configuration.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/config"
)

const timestampFormat = "2006-01-02 15:04:05"

const fileMode = 0o644

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns a logger honouring level, format and output. An unknown
// level means info; a log file that cannot be opened falls back to stdout
// with a warning. The returned closer releases the log file; it is a no-op
// for stdout.
func Setup(cfg config.LogConfig) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	if cfg.Output == "file" && cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileMode)
		if err == nil {
			log.SetOutput(file)
			return log, file
		}
		log.Warnf("open log file failed: %v, using stdout", err)
	}

	return log, nopCloser{}
}
