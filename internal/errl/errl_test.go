package errl

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorAnnotatesLocation(t *testing.T) {
	base := errors.New("boom")

	err := Error(base)
	if err == nil {
		t.Fatal("expected non-nil error")
	}
	if !strings.Contains(err.Error(), "errl_test.go") {
		t.Fatalf("expected caller location in message, got %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped error should unwrap to the original")
	}

	if Error(nil) != nil {
		t.Fatal("Error(nil) should be nil")
	}
}

func TestErrorfWraps(t *testing.T) {
	base := errors.New("boom")
	err := Errorf("context: %w", base)
	if !errors.Is(err, base) {
		t.Fatal("Errorf should support %w")
	}
	if !strings.Contains(err.Error(), "context: boom") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
