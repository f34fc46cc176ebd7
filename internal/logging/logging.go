// Package logging builds the service logger.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/calculator/internal/config"
)

// Key constants for structured fields.
const (
	RequestIDKey  = "request_id"
	ExpressionKey = "expression"
	ResultKey     = "result"
	KindKey       = "kind"
)

// New creates a logger from the logger configuration.
func New(c config.Logger) (*logrus.Logger, error) {
	l := logrus.New()
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out, err := output(c.Output)
	if err != nil {
		return nil, err
	}
	l.SetOutput(out)
	return l, nil
}

func output(name string) (io.Writer, error) {
	switch name {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return nil, errors.Errorf("unknown log output %q", name)
	}
}

// Discard returns a logger that writes nothing. It is meant for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
