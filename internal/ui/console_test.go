package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	defer SetOutput(os.Stdout, false)

	Info("hello")
	Warning("careful")
	Header("DONE")

	got := buf.String()
	for _, want := range []string{"[INFO] hello\n", "[WARNING] careful\n", "=== DONE ==="} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got %q", want, got)
		}
	}
	if strings.Contains(got, "\033[") {
		t.Errorf("Expected no escape codes, got %q", got)
	}
}

func TestColoredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, true)
	defer SetOutput(os.Stdout, false)

	Error("boom")

	want := Red + "[ERROR]" + Reset + " boom\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
