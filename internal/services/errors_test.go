package services_test

import (
	"errors"
	"strings"
	"testing"

	"keygrip/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "toolchain", "list-encoders", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"toolchain", "list-encoders", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutBaseError(t *testing.T) {
	err := services.Wrap(services.ErrUnsupported, "capability", "detect", "operating system not supported", nil)
	if !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected unsupported marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "capability: detect") {
		t.Fatalf("expected component and operation in message, got %q", err.Error())
	}
}

func TestWrapNilMarkerLeavesErrorUntagged(t *testing.T) {
	base := errors.New("io failure")
	err := services.Wrap(nil, "hwinfo", "inventory", "", base)
	if errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("nil marker must not default to a sentinel, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected base error preserved, got %v", err)
	}
}
