package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the shared application logger. All packages receive it
// through their constructors rather than reaching for a global.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
