package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoggerInitialization(t *testing.T) {
	l := L()
	assert.NotNil(t, l)
	assert.Same(t, l, L(), "L should return the same instance")
}

func TestSetupLevels(t *testing.T) {
	t.Setenv("LOG_MODE", "")
	t.Setenv("LOG_FORMAT", "")

	tests := []struct {
		name string
		opts Options
		want logrus.Level
	}{
		{"Default", Options{}, logrus.InfoLevel},
		{"Verbose", Options{Verbose: true}, logrus.DebugLevel},
		{"Quiet", Options{Quiet: true}, logrus.ErrorLevel},
		{"Quiet wins", Options{Quiet: true, Verbose: true}, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			Setup(tt.opts)
			assert.Equal(t, tt.want, L().GetLevel())
		})
	}
}

func TestSetupEnvOverrides(t *testing.T) {
	t.Setenv("LOG_MODE", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	Setup(Options{Quiet: true, Output: &buf})
	assert.Equal(t, logrus.DebugLevel, L().GetLevel())

	L().Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON output, got %q", buf.String())
}

func TestCLIFormatter(t *testing.T) {
	f := &CLIFormatter{DisableTimestamp: true, DisableColors: true}
	entry := &logrus.Entry{
		Message: "task created",
		Level:   logrus.InfoLevel,
		Time:    time.Now(),
		Data:    logrus.Fields{"title": "Buy milk", "id": "42"},
	}

	out, err := f.Format(entry)
	assert.NoError(t, err)
	assert.Equal(t, "INFO: task created id=42 title=Buy milk\n", string(out))
}
