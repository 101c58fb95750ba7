package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tri := screenTri(math3d.V2(1, 1), math3d.V2(2, 2), math3d.V2(3, 3), 1)
	NewRasterizer().DrawTriangle(NewFramebuffer(4, 4), tri)

	if !strings.Contains(buf.String(), "degenerate") {
		t.Errorf("log output %q does not mention the degenerate triangle", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
