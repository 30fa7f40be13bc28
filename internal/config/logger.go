package config

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewLogger builds the process logger described by l.
func (l Log) NewLogger(out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if strings.EqualFold(l.Format, "text") {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	return logger, nil
}
