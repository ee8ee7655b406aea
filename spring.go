package smntc

import "math"

// SpringConfig holds the physical parameters shared by every spring in a bank.
type SpringConfig struct {
	Stiffness float64 // restoring force per unit of displacement
	Damping   float64 // opposing force per unit of velocity
	Mass      float64
	Precision float64 // settle threshold for both |velocity| and |value-target|
	MaxDelta  float64 // dt ceiling in seconds, applied before integration
}

// DefaultSpringConfig returns the documented defaults: a near-critically
// damped spring that settles within about half a second.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness: 170,
		Damping:   26,
		Mass:      1,
		Precision: 0.001,
		MaxDelta:  0.064,
	}
}

func (c SpringConfig) withDefaults() SpringConfig {
	d := DefaultSpringConfig()
	if c.Stiffness <= 0 {
		c.Stiffness = d.Stiffness
	}
	if c.Damping < 0 {
		c.Damping = d.Damping
	}
	if c.Mass <= 0 {
		c.Mass = d.Mass
	}
	if c.Precision <= 0 {
		c.Precision = d.Precision
	}
	if c.MaxDelta <= 0 {
		c.MaxDelta = d.MaxDelta
	}
	return c
}

// maxSubstep bounds a single integration step. A clamped 64 ms dt is split
// into substeps of at most this length.
const maxSubstep = 1.0 / 120.0

// Spring is a damped harmonic oscillator advanced with semi-implicit Euler.
// Settled is true exactly when the velocity is 0 and the value equals the
// target.
type Spring struct {
	value    float64
	velocity float64
	target   float64
	settled  bool
	cfg      SpringConfig
}

// NewSpring creates a settled spring resting at initial.
func NewSpring(initial float64, cfg SpringConfig) *Spring {
	return &Spring{
		value:   initial,
		target:  initial,
		settled: true,
		cfg:     cfg.withDefaults(),
	}
}

// Value returns the current animated value.
func (s *Spring) Value() float64 { return s.value }

// Velocity returns the current velocity in units per second.
func (s *Spring) Velocity() float64 { return s.velocity }

// Target returns the value the spring is moving toward.
func (s *Spring) Target() float64 { return s.target }

// Settled reports whether the spring is at rest on its target.
func (s *Spring) Settled() bool { return s.settled }

// SetTarget retargets the spring. Motion continues from the current value
// and velocity. Setting the current target again is a no-op and does not
// restart a finished transition.
func (s *Spring) SetTarget(t float64) {
	if t == s.target {
		return
	}
	s.target = t
	s.settled = false
}

// Snap moves the spring onto v immediately, without integration.
func (s *Spring) Snap(v float64) {
	s.value = v
	s.target = v
	s.velocity = 0
	s.settled = true
}

// Step advances the spring by dt seconds and reports whether it is still
// moving. dt is clamped to the configured ceiling; non-positive dt is a no-op.
func (s *Spring) Step(dt float64) bool {
	if s.settled {
		return false
	}
	if !(dt > 0) {
		return true
	}
	if dt > s.cfg.MaxDelta {
		dt = s.cfg.MaxDelta
	}
	n := int(math.Ceil(dt / maxSubstep))
	h := dt / float64(n)
	k, c, m := s.cfg.Stiffness, s.cfg.Damping, s.cfg.Mass
	for range n {
		accel := (-k*(s.value-s.target) - c*s.velocity) / m
		s.velocity += accel * h
		s.value += s.velocity * h
	}
	if math.Abs(s.velocity) < s.cfg.Precision && math.Abs(s.value-s.target) < s.cfg.Precision {
		s.value = s.target
		s.velocity = 0
		s.settled = true
		return false
	}
	return true
}

// SpringBank is a keyed collection of springs sharing one SpringConfig.
// Handles returned by Ensure stay valid until Dispose; callers are expected
// to cache them instead of looking springs up by key every frame.
type SpringBank struct {
	cfg     SpringConfig
	springs map[string]*Spring
	order   []*Spring
}

// NewSpringBank creates an empty bank.
func NewSpringBank(cfg SpringConfig) *SpringBank {
	return &SpringBank{cfg: cfg.withDefaults(), springs: make(map[string]*Spring)}
}

// Ensure returns the spring for key, creating it at initial if absent.
// Repeated calls with the same key return the same *Spring.
func (b *SpringBank) Ensure(key string, initial float64) *Spring {
	if s, ok := b.springs[key]; ok {
		return s
	}
	s := NewSpring(initial, b.cfg)
	b.springs[key] = s
	b.order = append(b.order, s)
	return s
}

// Get returns the spring for key, or nil.
func (b *SpringBank) Get(key string) *Spring {
	return b.springs[key]
}

// SetTarget retargets key, creating the spring at fallbackInitial if new.
// A newly created spring starts at fallbackInitial and animates to target.
func (b *SpringBank) SetTarget(key string, target, fallbackInitial float64) *Spring {
	s := b.Ensure(key, fallbackInitial)
	s.SetTarget(target)
	return s
}

// Step advances every spring by dt and reports whether any is still moving.
func (b *SpringBank) Step(dt float64) bool {
	moving := false
	for _, s := range b.order {
		if s.Step(dt) {
			moving = true
		}
	}
	return moving
}

// Settled reports whether every spring in the bank is at rest.
func (b *SpringBank) Settled() bool {
	for _, s := range b.order {
		if !s.settled {
			return false
		}
	}
	return true
}

// SnapAll settles every spring on its current target.
func (b *SpringBank) SnapAll() {
	for _, s := range b.order {
		s.Snap(s.target)
	}
}

// Len returns the number of springs in the bank.
func (b *SpringBank) Len() int { return len(b.order) }

// Dispose discards every spring.
func (b *SpringBank) Dispose() {
	clear(b.springs)
	b.order = nil
}
