package smntc

// Signal is the per-frame pointer input merged into shader constants.
// Producers (pointer capture, ray casting, scripted input) live outside the
// kernel; the kernel only advances the signal and copies its outputs.
type Signal interface {
	// Advance is called once per tick with the kernel's elapsed time in
	// seconds.
	Advance(elapsed float64)
	// Position is the last known world-space pointer position.
	Position() Vec3
	// SinceTrigger is the time in seconds since the last discrete trigger,
	// or a negative value if no trigger has happened yet.
	SinceTrigger() float64
	// Close releases the subscription. The signal is not used afterwards.
	Close()
}

// SignalSource subscribes a signal for a reactivity mode. The kernel calls
// it on attach and whenever the reactivity token changes to a tracking mode.
type SignalSource func(mode ReactivityMode) Signal

// PointerSignal is a Signal fed by the host: call SetPosition on pointer
// movement and Trigger on discrete events (clicks, taps). It is the default
// SignalSource product.
type PointerSignal struct {
	mode      ReactivityMode
	position  Vec3
	elapsed   float64
	triggerAt float64
	triggered bool
	pending   bool
	closed    bool
}

// NewPointerSignal creates a signal for mode.
func NewPointerSignal(mode ReactivityMode) *PointerSignal {
	return &PointerSignal{mode: mode}
}

// PointerSignalSource is a SignalSource producing *PointerSignal values.
func PointerSignalSource(mode ReactivityMode) Signal {
	return NewPointerSignal(mode)
}

// Mode returns the reactivity mode the signal was created for.
func (p *PointerSignal) Mode() ReactivityMode { return p.mode }

// SetPosition records a new world-space pointer position.
func (p *PointerSignal) SetPosition(pos Vec3) {
	if p.closed {
		return
	}
	p.position = pos
}

// Trigger records a discrete event. The trigger time is taken from the next
// Advance, so a trigger between ticks reads as 0 seconds old on that tick.
// Ignored unless the mode is trigger-driven.
func (p *PointerSignal) Trigger() {
	if p.closed || !p.mode.Discrete() {
		return
	}
	p.pending = true
}

func (p *PointerSignal) Advance(elapsed float64) {
	if p.closed {
		return
	}
	p.elapsed = elapsed
	if p.pending {
		p.pending = false
		p.triggered = true
		p.triggerAt = elapsed
	}
}

func (p *PointerSignal) Position() Vec3 { return p.position }

func (p *PointerSignal) SinceTrigger() float64 {
	if !p.triggered {
		return -1
	}
	return p.elapsed - p.triggerAt
}

func (p *PointerSignal) Close() { p.closed = true }

// Closed reports whether the kernel released this signal.
func (p *PointerSignal) Closed() bool { return p.closed }
