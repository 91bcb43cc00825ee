package ctx

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerRoundTrip(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := ContextWithLogger(context.Background(), l)
	if got := LoggerFromContext(c); got != l {
		t.Fatal("expected the injected logger back")
	}
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Fatal("expected slog.Default for a bare context")
	}
}
