package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"keygrip/internal/logging"
)

func TestNewPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "pretty", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("probe finished", logging.String("binary", "ffmpeg"), logging.Int("encoders", 4))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected level label in output, got %q", line)
	}
	if !strings.Contains(line, "probe finished") {
		t.Fatalf("expected message in output, got %q", line)
	}
	if !strings.Contains(line, "binary=ffmpeg") || !strings.Contains(line, "encoders=4") {
		t.Fatalf("expected attributes in output, got %q", line)
	}
}

func TestNewPrettyComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "pretty", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "toolchain").Info("located binary")

	line := buf.String()
	if !strings.Contains(line, "toolchain: located binary") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attr should be folded into the prefix, got %q", line)
	}
}

func TestNewPrettyRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "pretty", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	line := buf.String()
	if strings.Contains(line, "suppressed") {
		t.Fatalf("info line should be suppressed at warn level, got %q", line)
	}
	if !strings.Contains(line, "kept") {
		t.Fatalf("warn line missing, got %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("snapshot published", logging.Bool("hardware", true))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if payload["msg"] != "snapshot published" {
		t.Fatalf("unexpected msg field: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level field: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts field in JSON output")
	}
	if payload["hardware"] != true {
		t.Fatalf("unexpected hardware field: %v", payload["hardware"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Error("must not panic", logging.Error(nil))
}
