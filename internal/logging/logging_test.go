package logging

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator/internal/config"
)

func TestNew(t *testing.T) {
	l, err := New(config.Logger{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	assert.Equal(t, os.Stdout, l.Out)

	l, err = New(config.Logger{Level: "warn", Format: "text"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Equal(t, os.Stderr, l.Out)
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.Logger{Level: "loud"})
	assert.Error(t, err)

	_, err = New(config.Logger{Level: "info", Output: "file"})
	assert.Error(t, err)
}
