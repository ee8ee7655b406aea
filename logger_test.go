package smntc

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_SilentByDefault(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestLogger_KernelLifecycle(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	k, _, _ := newTestKernel(t, Config{})
	_ = k.SetVibe("nope")
	k.SetDebugMode(true)
	k.Update(frame)
	k.Dispose()

	out := buf.String()
	for _, want := range []string{"kernel attached", "configuration rejected", "msg=tick", "springs=", "kernel disposed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_FidelityTransition(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	cfg := DefaultScalerConfig()
	cfg.Capacity = 1
	cfg.DowngradeAfter = 1
	a := NewAutoScaler(cfg, "high")
	a.ReportFrame(targetFrame * 2)

	if !strings.Contains(buf.String(), "from=high to=medium") {
		t.Errorf("log output = %q", buf.String())
	}
}
