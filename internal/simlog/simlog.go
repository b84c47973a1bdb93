// Package simlog provides the structured logger used across the simulator,
// adapted from PossumXI-Asgard_Arobi/Valkyrie's logrus-based logger
// singleton (the teacher itself only reaches for stdlib log.Printf, but
// logrus's structured fields suit the HEV-loop non-convergence warnings and
// substituted-default notices better).
package simlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// L returns the package logger.
func L() *logrus.Logger { return base }

// SetLevel adjusts the package logger's verbosity, e.g. for test output.
func SetLevel(level logrus.Level) { base.SetLevel(level) }

// WithField is a convenience wrapper around the package logger.
func WithField(key string, value interface{}) *logrus.Entry {
	return base.WithField(key, value)
}
