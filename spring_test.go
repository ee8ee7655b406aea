package smntc

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

func TestSpring_ConvergesExactly(t *testing.T) {
	s := NewSpring(0, DefaultSpringConfig())
	s.SetTarget(10)
	if s.Settled() {
		t.Fatal("Settled() = true right after SetTarget")
	}
	for range 600 {
		if !s.Step(frame) {
			break
		}
	}
	if !s.Settled() {
		t.Fatalf("not settled after 10s: value=%v velocity=%v", s.Value(), s.Velocity())
	}
	if s.Value() != 10 {
		t.Errorf("Value() = %v, want exactly 10", s.Value())
	}
	if s.Velocity() != 0 {
		t.Errorf("Velocity() = %v, want exactly 0", s.Velocity())
	}

	for range 10 {
		if s.Step(frame) {
			t.Fatal("settled spring reported motion")
		}
	}
	if s.Value() != 10 {
		t.Errorf("Value() after extra steps = %v, want 10", s.Value())
	}
}

func TestSpring_IdempotentRetarget(t *testing.T) {
	s := NewSpring(3, DefaultSpringConfig())
	s.SetTarget(3)
	if !s.Settled() {
		t.Error("SetTarget(current) unsettled a resting spring")
	}

	s.SetTarget(5)
	settle(s)
	s.SetTarget(5)
	if !s.Settled() {
		t.Error("SetTarget(current) restarted a finished transition")
	}
}

func TestSpring_LargeDeltaStaysFinite(t *testing.T) {
	s := NewSpring(0, DefaultSpringConfig())
	s.SetTarget(1000)
	s.Step(5)
	v := s.Value()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("Value() = %v after 5s step", v)
	}
	if v <= 0 || v >= 1000 {
		t.Errorf("Value() = %v, want a clamped partial step in (0, 1000)", v)
	}

	// The 5s step must behave exactly like a MaxDelta step.
	ref := NewSpring(0, DefaultSpringConfig())
	ref.SetTarget(1000)
	ref.Step(DefaultSpringConfig().MaxDelta)
	if !approxEqual(v, ref.Value(), epsilon) {
		t.Errorf("Step(5) = %v, Step(MaxDelta) = %v", v, ref.Value())
	}
}

func TestSpring_NonPositiveDelta(t *testing.T) {
	s := NewSpring(0, DefaultSpringConfig())
	s.SetTarget(1)
	if !s.Step(0) {
		t.Error("Step(0) on a moving spring should report motion")
	}
	if !s.Step(-1) {
		t.Error("Step(-1) on a moving spring should report motion")
	}
	if s.Value() != 0 {
		t.Errorf("Value() = %v, want 0 after non-positive steps", s.Value())
	}
}

func TestSpring_RetargetKeepsMomentum(t *testing.T) {
	s := NewSpring(0, DefaultSpringConfig())
	s.SetTarget(10)
	for range 5 {
		s.Step(frame)
	}
	v, vel := s.Value(), s.Velocity()
	if vel <= 0 {
		t.Fatalf("velocity = %v, want positive while rising", vel)
	}
	s.SetTarget(-10)
	if s.Value() != v || s.Velocity() != vel {
		t.Error("SetTarget reset value or velocity")
	}
	s.Step(frame)
	if s.Value() <= v {
		// Momentum carries the value up for at least one more frame.
		t.Errorf("Value() = %v, want > %v", s.Value(), v)
	}
}

func TestSpring_Snap(t *testing.T) {
	s := NewSpring(0, DefaultSpringConfig())
	s.SetTarget(10)
	s.Step(frame)
	s.Snap(4)
	if s.Value() != 4 || s.Target() != 4 || s.Velocity() != 0 || !s.Settled() {
		t.Errorf("after Snap(4): value=%v target=%v vel=%v settled=%v", s.Value(), s.Target(), s.Velocity(), s.Settled())
	}
}

func TestSpringConfig_Defaults(t *testing.T) {
	c := SpringConfig{}.withDefaults()
	if c != DefaultSpringConfig() {
		t.Errorf("zero config defaults = %+v", c)
	}
	c = SpringConfig{Stiffness: 300, Damping: 0}.withDefaults()
	if c.Stiffness != 300 || c.Damping != 0 {
		t.Errorf("explicit values overridden: %+v", c)
	}
}

func TestSpringBank_EnsureStable(t *testing.T) {
	b := NewSpringBank(DefaultSpringConfig())
	a := b.Ensure("glow", 0.5)
	again := b.Ensure("glow", 99)
	if a != again {
		t.Fatal("Ensure returned a different spring for the same key")
	}
	if again.Value() != 0.5 {
		t.Errorf("second Ensure reset the value to %v", again.Value())
	}
	if b.Get("glow") != a {
		t.Error("Get returned a different spring")
	}
	if b.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestSpringBank_SetTargetFallback(t *testing.T) {
	b := NewSpringBank(DefaultSpringConfig())
	s := b.SetTarget("angle", 90, 45)
	if s.Value() != 45 || s.Target() != 90 {
		t.Errorf("new spring value=%v target=%v, want 45 -> 90", s.Value(), s.Target())
	}
	if b.Settled() {
		t.Error("bank settled with a moving spring")
	}
	if !b.Step(frame) {
		t.Error("Step reported no motion")
	}
	b.SnapAll()
	if !b.Settled() || s.Value() != 90 {
		t.Errorf("after SnapAll settled=%v value=%v", b.Settled(), s.Value())
	}
}

func TestSpringBank_Dispose(t *testing.T) {
	b := NewSpringBank(DefaultSpringConfig())
	b.Ensure("a", 1)
	b.Ensure("b", 2)
	b.Dispose()
	if b.Len() != 0 || b.Get("a") != nil {
		t.Error("Dispose left springs behind")
	}
	if b.Step(frame) {
		t.Error("empty bank reported motion")
	}
}

// settle steps s at 60 Hz for up to ten seconds.
func settle(s *Spring) {
	for range 600 {
		if !s.Step(frame) {
			return
		}
	}
}
