package logger

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  slog.Level
	}{
		{name: "explicit level wins", env: "development", level: "error", want: slog.LevelError},
		{name: "level is case insensitive", env: "production", level: "DEBUG", want: slog.LevelDebug},
		{name: "development defaults to debug", env: "development", level: "", want: slog.LevelDebug},
		{name: "production defaults to info", env: "production", level: "", want: slog.LevelInfo},
		{name: "unknown level falls back", env: "production", level: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.env, tt.level))
		})
	}
}

func TestNewGormLogger_DefaultSlowThreshold(t *testing.T) {
	l := NewGormLogger(gormlogger.Warn, 0)
	assert.Equal(t, DefaultSlowThreshold, l.SlowThreshold)

	l = NewGormLogger(gormlogger.Warn, time.Second)
	assert.Equal(t, time.Second, l.SlowThreshold)
}
