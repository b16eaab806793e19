package logger_test

import (
	"strings"
	"testing"

	"github.com/retrosys/c64core/internal/logger"
)

func TestLogDeduplicatesRepeats(t *testing.T) {
	logger.Clear()
	logger.Logf(logger.Allow, "disk", "bad SYNC on track %d", 18)
	logger.Logf(logger.Allow, "disk", "bad SYNC on track %d", 18)
	logger.Logf(logger.Allow, "disk", "bad SYNC on track %d", 18)

	var sb strings.Builder
	logger.Write(&sb)

	got := sb.String()
	if strings.Count(got, "bad SYNC") != 1 {
		t.Fatalf("expected repeated entries to collapse into one line, got %q", got)
	}
	if !strings.Contains(got, "repeat x3") {
		t.Fatalf("expected repeat counter in output, got %q", got)
	}
}

func TestLogTail(t *testing.T) {
	logger.Clear()
	for i := 0; i < 5; i++ {
		logger.Logf(logger.Allow, "cia", "timer underflow %d", i)
	}

	var sb strings.Builder
	logger.Tail(&sb, 2)

	got := sb.String()
	if !strings.Contains(got, "underflow 3") || !strings.Contains(got, "underflow 4") {
		t.Fatalf("tail did not return the last two entries: %q", got)
	}
}
