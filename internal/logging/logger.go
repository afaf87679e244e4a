package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logg = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	return l
}

// Setup applies the configured level and format to the shared logger.
// Unknown levels fall back to info.
func Setup(level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logg.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logg.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Default returns the shared logger
func Default() *logrus.Logger {
	return logg
}

// Component returns an entry tagged with the component name, e.g. "Loader"
func Component(name string) *logrus.Entry {
	return logg.WithField("component", name)
}
