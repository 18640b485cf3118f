package logging

import (
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Setup configures the standard logrus logger: text with full timestamps in
// development, JSON in production
func Setup(level string, prod bool) {
	if prod {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
