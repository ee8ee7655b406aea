package smntc

import (
	"slices"
	"time"
)

// ScalerConfig tunes the adaptive fidelity controller.
type ScalerConfig struct {
	Capacity       int           // rolling window length in frames
	TargetFrame    time.Duration // desired frame duration
	SlowFactor     float64       // average above TargetFrame*SlowFactor counts as slow
	FastFactor     float64       // average below TargetFrame*FastFactor counts as fast
	DowngradeAfter int           // consecutive slow samples before stepping down
	UpgradeAfter   int           // consecutive fast samples before stepping up
	Ladder         []string      // fidelity tiers, lowest first
}

// DefaultScalerConfig returns the documented defaults targeting 60 FPS.
func DefaultScalerConfig() ScalerConfig {
	return ScalerConfig{
		Capacity:       30,
		TargetFrame:    time.Second / 60,
		SlowFactor:     1.15,
		FastFactor:     0.75,
		DowngradeAfter: 20,
		UpgradeAfter:   60,
		Ladder:         DefaultLadder(),
	}
}

func (c ScalerConfig) withDefaults() ScalerConfig {
	d := DefaultScalerConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.TargetFrame <= 0 {
		c.TargetFrame = d.TargetFrame
	}
	if c.SlowFactor <= 0 {
		c.SlowFactor = d.SlowFactor
	}
	if c.FastFactor <= 0 {
		c.FastFactor = d.FastFactor
	}
	if c.DowngradeAfter <= 0 {
		c.DowngradeAfter = d.DowngradeAfter
	}
	if c.UpgradeAfter <= 0 {
		c.UpgradeAfter = d.UpgradeAfter
	}
	if len(c.Ladder) == 0 {
		c.Ladder = d.Ladder
	}
	c.Ladder = slices.Clone(c.Ladder)
	return c
}

// AutoScaler watches frame durations and recommends one-step fidelity
// transitions to keep the rolling average near the target. The average is
// maintained over a ring buffer with a running sum, so each sample is O(1).
type AutoScaler struct {
	cfg ScalerConfig

	samples []float64 // seconds
	cursor  int
	sum     float64
	filled  bool

	slow, fast int
	index      int
	enabled    bool
	onChange   func(tier string)
}

// NewAutoScaler creates an enabled scaler starting at tier. If tier is not on
// the ladder the scaler starts at the top.
func NewAutoScaler(cfg ScalerConfig, tier string) *AutoScaler {
	cfg = cfg.withDefaults()
	a := &AutoScaler{
		cfg:     cfg,
		samples: make([]float64, cfg.Capacity),
		index:   len(cfg.Ladder) - 1,
		enabled: true,
	}
	a.SetTier(tier)
	return a
}

// OnChange sets the single fidelity-change callback. A later call replaces
// the earlier callback; nil removes it.
func (a *AutoScaler) OnChange(fn func(tier string)) {
	a.onChange = fn
}

// Tier returns the current fidelity tier name.
func (a *AutoScaler) Tier() string { return a.cfg.Ladder[a.index] }

// Index returns the current position on the ladder, 0 being the lowest tier.
func (a *AutoScaler) Index() int { return a.index }

// Ladder returns a copy of the tier ladder.
func (a *AutoScaler) Ladder() []string { return slices.Clone(a.cfg.Ladder) }

// SetTier moves the scaler onto tier without notifying. It reports false and
// leaves the index unchanged when the tier is not on the ladder.
func (a *AutoScaler) SetTier(tier string) bool {
	i := slices.Index(a.cfg.Ladder, tier)
	if i < 0 {
		return false
	}
	if i != a.index {
		a.index = i
		a.reset()
	}
	return true
}

// Enabled reports whether frames are being evaluated.
func (a *AutoScaler) Enabled() bool { return a.enabled }

// SetEnabled turns the controller on or off. Disabling clears every
// accumulated sample and streak.
func (a *AutoScaler) SetEnabled(enabled bool) {
	if !enabled {
		a.reset()
	}
	a.enabled = enabled
}

// Average returns the rolling average frame duration, or 0 before the window
// has filled.
func (a *AutoScaler) Average() time.Duration {
	if !a.filled {
		return 0
	}
	return time.Duration(a.sum / float64(len(a.samples)) * float64(time.Second))
}

// ReportFrame records one frame duration and returns true if it caused a
// tier transition.
func (a *AutoScaler) ReportFrame(frame time.Duration) bool {
	if !a.enabled {
		return false
	}
	v := frame.Seconds()
	if a.filled {
		a.sum -= a.samples[a.cursor]
	}
	a.samples[a.cursor] = v
	a.sum += v
	a.cursor++
	if a.cursor == len(a.samples) {
		a.cursor = 0
		a.filled = true
	}
	if !a.filled {
		return false
	}

	avg := a.sum / float64(len(a.samples))
	target := a.cfg.TargetFrame.Seconds()
	switch {
	case avg > target*a.cfg.SlowFactor:
		a.slow++
		a.fast = 0
		if a.slow >= a.cfg.DowngradeAfter && a.index > 0 {
			return a.transition(a.index - 1)
		}
	case avg < target*a.cfg.FastFactor:
		a.fast++
		a.slow = 0
		if a.fast >= a.cfg.UpgradeAfter && a.index < len(a.cfg.Ladder)-1 {
			return a.transition(a.index + 1)
		}
	default:
		a.slow = 0
		a.fast = 0
	}
	return false
}

func (a *AutoScaler) transition(to int) bool {
	from := a.cfg.Ladder[a.index]
	a.index = to
	a.reset()
	tier := a.cfg.Ladder[to]
	Logger().Info("fidelity transition", "from", from, "to", tier)
	if a.onChange != nil {
		a.onChange(tier)
	}
	return true
}

func (a *AutoScaler) reset() {
	clear(a.samples)
	a.cursor = 0
	a.sum = 0
	a.filled = false
	a.slow = 0
	a.fast = 0
}
