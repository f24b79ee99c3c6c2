package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Default level = %s, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Default pretty should be false")
	}
}

func TestSetup_WritesToOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{
		Level:  LevelDebug,
		Pretty: false,
		Output: buf,
	})

	logger.Info().Str("page", "1").Msg("fetch started")

	out := buf.String()
	if !strings.Contains(out, "fetch started") {
		t.Errorf("Output %q does not contain the logged message", out)
	}
	if !strings.Contains(out, `"page":"1"`) {
		t.Errorf("Output %q does not contain the page field", out)
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{
		Level:  LevelWarn,
		Output: buf,
	})

	logger.Debug().Msg("hidden debug")
	logger.Warn().Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Error("Debug message should be filtered at warn level")
	}
	if !strings.Contains(out, "visible warning") {
		t.Error("Warn message should pass at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("sedia-client")
	logger.Info().Msg("component check")

	if !strings.Contains(buf.String(), `"component":"sedia-client"`) {
		t.Errorf("Output %q does not contain the component field", buf.String())
	}
}
