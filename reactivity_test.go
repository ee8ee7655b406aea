package smntc

import (
	"testing"
	"time"
)

func TestPointerSignal_Position(t *testing.T) {
	p := NewPointerSignal(ReactivityMagnetic)
	if p.Position() != (Vec3{}) {
		t.Errorf("initial Position() = %+v", p.Position())
	}
	p.SetPosition(Vec3{1, 2, 3})
	p.Advance(0.5)
	if p.Position() != (Vec3{1, 2, 3}) {
		t.Errorf("Position() = %+v, want {1 2 3}", p.Position())
	}
	// Last known position persists without new input.
	p.Advance(1.0)
	if p.Position() != (Vec3{1, 2, 3}) {
		t.Errorf("Position() = %+v after idle tick", p.Position())
	}
}

func TestPointerSignal_TriggerOnlyForDiscreteModes(t *testing.T) {
	p := NewPointerSignal(ReactivityRepel)
	p.Trigger()
	p.Advance(1)
	if got := p.SinceTrigger(); got >= 0 {
		t.Errorf("SinceTrigger() = %v for a continuous mode, want negative", got)
	}
}

func TestPointerSignal_TriggerTiming(t *testing.T) {
	p := NewPointerSignal(ReactivityShockwave)
	p.Advance(1)
	if got := p.SinceTrigger(); got >= 0 {
		t.Errorf("SinceTrigger() = %v before any trigger, want negative", got)
	}

	p.Trigger()
	// Pending until the next Advance.
	if got := p.SinceTrigger(); got >= 0 {
		t.Errorf("SinceTrigger() = %v before Advance, want negative", got)
	}
	p.Advance(2)
	if got := p.SinceTrigger(); got != 0 {
		t.Errorf("SinceTrigger() = %v on the trigger tick, want 0", got)
	}
	p.Advance(2.25)
	if got := p.SinceTrigger(); got != 0.25 {
		t.Errorf("SinceTrigger() = %v, want 0.25", got)
	}
}

func TestPointerSignal_Close(t *testing.T) {
	p := NewPointerSignal(ReactivityShockwave)
	p.SetPosition(Vec3{X: 1})
	p.Close()
	if !p.Closed() {
		t.Error("Closed() = false")
	}
	p.SetPosition(Vec3{X: 5})
	p.Trigger()
	p.Advance(3)
	if p.Position().X != 1 {
		t.Errorf("closed signal accepted a position: %+v", p.Position())
	}
	if p.SinceTrigger() >= 0 {
		t.Error("closed signal accepted a trigger")
	}
}

func TestPointerSignalSource(t *testing.T) {
	s := PointerSignalSource(ReactivityShockwave)
	p, ok := s.(*PointerSignal)
	if !ok {
		t.Fatalf("PointerSignalSource returned %T", s)
	}
	if p.Mode() != ReactivityShockwave {
		t.Errorf("Mode() = %v, want shockwave", p.Mode())
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	if !c.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", c.Now(), start)
	}
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("advanced %v, want 250ms", got)
	}
}
