package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	l := New(Config{Level: "warn", Format: "json"})
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", l.GetLevel())
	}

	l = New(Config{Level: "debug", Format: "console"})
	if l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", l.GetLevel())
	}
}
