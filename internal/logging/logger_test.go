package logging

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{level: "debug", want: log.DebugLevel},
		{level: "info", want: log.InfoLevel},
		{level: "warn", want: log.WarnLevel},
		{level: "warning", want: log.WarnLevel},
		{level: "error", want: log.ErrorLevel},
		{level: "DEBUG", want: log.DebugLevel},
		{level: "bogus", want: log.InfoLevel},
		{level: "", want: log.InfoLevel},
	}
	for _, tt := range tests {
		logger := New(tt.level)
		assert.Equal(t, tt.want, logger.GetLevel(), "level %q", tt.level)
	}
}

func TestDefaultIsStable(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestSetLevel(t *testing.T) {
	orig := Default().GetLevel()
	defer SetLevel(orig.String())

	SetLevel("debug")
	assert.Equal(t, log.DebugLevel, Default().GetLevel())
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))
	assert.Same(t, Default(), FromContext(nil)) //nolint:staticcheck // nil handling is part of the contract

	custom := New("error")
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
