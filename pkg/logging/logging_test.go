package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInit_JSONFormatEmitsStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	log.Info().Str("floor_id", "1").Msg("generated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON line, got error %v on %q", err, buf.String())
	}
	if entry["message"] != "generated" {
		t.Errorf("unexpected message field: %v", entry["message"])
	}
	if entry["floor_id"] != "1" {
		t.Errorf("unexpected floor_id field: %v", entry["floor_id"])
	}
}

func TestInit_LevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelError, Format: FormatJSON, Output: &buf})

	log.Info().Msg("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("expected info-level line to be filtered at error level, got %q", buf.String())
	}

	log.Error().Msg("should pass")
	if buf.Len() == 0 {
		t.Error("expected error-level line to pass")
	}
}

func TestComponent_TagsLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	Component("cache").Info().Msg("tier1 hit")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON line, got %v", err)
	}
	if entry["component"] != "cache" {
		t.Errorf("expected component=cache, got %v", entry["component"])
	}
}
