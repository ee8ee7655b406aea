package smntc

import (
	"slices"
	"testing"
	"time"
)

const targetFrame = time.Second / 60

// recorder collects fidelity-change notifications.
type recorder struct {
	tiers []string
}

func (r *recorder) record(tier string) { r.tiers = append(r.tiers, tier) }

func newScaler(tier string) (*AutoScaler, *recorder) {
	a := NewAutoScaler(DefaultScalerConfig(), tier)
	rec := &recorder{}
	a.OnChange(rec.record)
	return a, rec
}

func feed(a *AutoScaler, frame time.Duration, n int) int {
	transitions := 0
	for range n {
		if a.ReportFrame(frame) {
			transitions++
		}
	}
	return transitions
}

func TestAutoScaler_AtTargetNeverTriggers(t *testing.T) {
	a, rec := newScaler("high")
	feed(a, targetFrame, 1000)
	if len(rec.tiers) != 0 {
		t.Errorf("notifications = %v, want none", rec.tiers)
	}
	if a.Tier() != "high" {
		t.Errorf("Tier() = %q, want high", a.Tier())
	}
}

func TestAutoScaler_DowngradeThreshold(t *testing.T) {
	slow := targetFrame * 12 / 10

	a, rec := newScaler("high")
	// The window fills on sample 30 (first slow classification); the 20th
	// consecutive slow sample is number 49.
	feed(a, slow, 48)
	if len(rec.tiers) != 0 {
		t.Fatalf("downgraded after 48 samples: %v", rec.tiers)
	}
	if !a.ReportFrame(slow) {
		t.Fatal("49th slow sample did not downgrade")
	}
	if !slices.Equal(rec.tiers, []string{"medium"}) {
		t.Errorf("notifications = %v, want [medium]", rec.tiers)
	}
	if a.Tier() != "medium" || a.Index() != 1 {
		t.Errorf("Tier() = %q (index %d), want medium (1)", a.Tier(), a.Index())
	}

	// Buffer and streak reset: another 48 slow samples stay on medium.
	if n := feed(a, slow, 48); n != 0 {
		t.Errorf("%d transitions right after reset", n)
	}
	if !a.ReportFrame(slow) || a.Tier() != "low" {
		t.Errorf("second downgrade missing, tier %q", a.Tier())
	}
}

func TestAutoScaler_Upgrade(t *testing.T) {
	a, rec := newScaler("high")
	fast := targetFrame / 2
	// Fill at 30, then 60 consecutive fast samples: transition on sample 89.
	if n := feed(a, fast, 88); n != 0 {
		t.Fatalf("upgraded early (%d)", n)
	}
	if !a.ReportFrame(fast) {
		t.Fatal("89th fast sample did not upgrade")
	}
	if !slices.Equal(rec.tiers, []string{"ultra"}) {
		t.Errorf("notifications = %v, want [ultra]", rec.tiers)
	}
	if n := feed(a, fast, 500); n != 0 {
		t.Errorf("transitioned above the top tier %d times", n)
	}
}

func TestAutoScaler_NeverBelowLowest(t *testing.T) {
	a, rec := newScaler("low")
	feed(a, targetFrame*3, 1000)
	if len(rec.tiers) != 0 || a.Tier() != "low" {
		t.Errorf("tier %q, notifications %v", a.Tier(), rec.tiers)
	}
}

func TestAutoScaler_NeutralResetsStreak(t *testing.T) {
	cfg := DefaultScalerConfig()
	cfg.Capacity = 1
	a := NewAutoScaler(cfg, "high")
	slow := targetFrame * 2
	feed(a, slow, 19)
	a.ReportFrame(targetFrame)
	if n := feed(a, slow, 19); n != 0 {
		t.Errorf("streak survived a neutral sample: %d transitions", n)
	}
	if !a.ReportFrame(slow) {
		t.Error("20th consecutive slow sample did not downgrade")
	}
}

func TestAutoScaler_DisableClearsState(t *testing.T) {
	a, rec := newScaler("high")
	slow := targetFrame * 12 / 10
	feed(a, slow, 45)
	if a.Average() == 0 {
		t.Fatal("Average() = 0 with a full window")
	}

	a.SetEnabled(false)
	if a.Enabled() {
		t.Error("Enabled() = true after disable")
	}
	if a.Average() != 0 {
		t.Errorf("Average() = %v after disable, want 0", a.Average())
	}
	if a.ReportFrame(slow) {
		t.Error("disabled scaler transitioned")
	}

	a.SetEnabled(true)
	if n := feed(a, slow, 48); n != 0 {
		t.Errorf("state survived disable: %d transitions", n)
	}
	if len(rec.tiers) != 0 {
		t.Errorf("notifications = %v", rec.tiers)
	}
}

func TestAutoScaler_Average(t *testing.T) {
	cfg := DefaultScalerConfig()
	cfg.Capacity = 4
	a := NewAutoScaler(cfg, "high")
	for _, ms := range []time.Duration{10, 20, 30} {
		a.ReportFrame(ms * time.Millisecond)
	}
	if a.Average() != 0 {
		t.Errorf("Average() = %v before the window fills", a.Average())
	}
	a.ReportFrame(40 * time.Millisecond)
	if got := a.Average(); got < 24999*time.Microsecond || got > 25001*time.Microsecond {
		t.Errorf("Average() = %v, want 25ms", got)
	}
	// Evicts the 10ms sample.
	a.ReportFrame(50 * time.Millisecond)
	if got := a.Average(); got < 34999*time.Microsecond || got > 35001*time.Microsecond {
		t.Errorf("Average() = %v, want 35ms", got)
	}
}

func TestAutoScaler_SetTier(t *testing.T) {
	a, rec := newScaler("high")
	if !a.SetTier("low") || a.Tier() != "low" {
		t.Errorf("SetTier(low) -> %q", a.Tier())
	}
	if a.SetTier("cinematic") {
		t.Error("SetTier accepted a tier off the ladder")
	}
	if a.Tier() != "low" {
		t.Errorf("failed SetTier moved the index to %q", a.Tier())
	}
	if len(rec.tiers) != 0 {
		t.Errorf("SetTier notified: %v", rec.tiers)
	}
}

func TestAutoScaler_UnknownInitialTier(t *testing.T) {
	a := NewAutoScaler(DefaultScalerConfig(), "cinematic")
	if a.Tier() != "ultra" {
		t.Errorf("Tier() = %q, want the top tier", a.Tier())
	}
}

func TestAutoScaler_OnChangeReplaces(t *testing.T) {
	cfg := DefaultScalerConfig()
	cfg.Capacity = 1
	cfg.DowngradeAfter = 1
	a := NewAutoScaler(cfg, "ultra")
	first, second := &recorder{}, &recorder{}
	a.OnChange(first.record)
	a.OnChange(second.record)
	a.ReportFrame(targetFrame * 2)
	if len(first.tiers) != 0 || len(second.tiers) != 1 {
		t.Errorf("first=%v second=%v, want only the latest callback", first.tiers, second.tiers)
	}
}

func TestAutoScaler_LadderIsCopy(t *testing.T) {
	a := NewAutoScaler(DefaultScalerConfig(), "high")
	l := a.Ladder()
	l[0] = "mutated"
	if a.Ladder()[0] != "low" {
		t.Error("Ladder() exposed internal storage")
	}
}
