package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used throughout the emulator. Components
// receive a Logger at construction so that tests can silence them with
// NewNullLogger.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger backed by logrus, logging at info level.
func New() Logger {
	return newLogrus(logrus.InfoLevel)
}

// NewVerbose returns a Logger backed by logrus, logging at debug level.
// Useful when tracing memory traffic or instruction flow.
func NewVerbose() Logger {
	return newLogrus(logrus.DebugLevel)
}

func newLogrus(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
