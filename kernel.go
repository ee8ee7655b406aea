package smntc

import (
	"fmt"
	"time"
)

// KernelState is the kernel lifecycle position.
type KernelState uint8

const (
	StateUnattached KernelState = iota // constants resolved, no target bound
	StateAttached                      // bound to a target, ticking
	StateDisposed                      // permanently unusable
)

func (s KernelState) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAttached:
		return "attached"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Target receives the animated constants once per tick. A Surface is the
// usual target; tests and headless hosts can use any implementation.
type Target interface {
	SetConstants(c *ShaderConstants)
}

// KernelConfig wires a kernel's collaborators. Zero fields take defaults:
// a fresh built-in registry, the built-in presets, the system clock,
// PointerSignalSource, and the default spring and scaler tuning.
type KernelConfig struct {
	Registry *Registry
	Presets  *PresetStore
	Clock    Clock
	Signals  SignalSource
	Spring   SpringConfig
	Scaler   ScalerConfig
}

// Kernel owns one configuration, its resolved targets, the springs animating
// toward them, a reactivity signal, and an AutoScaler. All methods must be
// called from the goroutine driving Update.
type Kernel struct {
	dict    *Dictionary
	presets *PresetStore
	clock   Clock
	signals SignalSource

	cfg      Config
	resolved ShaderConstants // spring targets and discrete values
	live     ShaderConstants // what the target sees

	bank    *SpringBank
	springs []*Spring // cached handles, parallel to continuousSlots
	scaler  *AutoScaler
	signal  Signal
	target  Target

	state      KernelState
	elapsed    float64
	last       time.Time
	hasLast    bool
	onFidelity func(tier string)

	debug bool
	stats frameStats
}

// NewKernel resolves cfg and creates an unattached kernel resting on the
// resolved values.
func NewKernel(cfg Config, kc KernelConfig) (*Kernel, error) {
	if kc.Registry == nil {
		kc.Registry = NewRegistry()
	}
	if kc.Presets == nil {
		kc.Presets = NewDefaultPresetStore(kc.Registry)
	}
	if kc.Clock == nil {
		kc.Clock = SystemClock
	}
	if kc.Signals == nil {
		kc.Signals = PointerSignalSource
	}

	k := &Kernel{
		dict:    NewDictionary(kc.Registry),
		presets: kc.Presets,
		clock:   kc.Clock,
		signals: kc.Signals,
		bank:    NewSpringBank(kc.Spring),
	}
	resolved, err := k.dict.Resolve(cfg)
	if err != nil {
		return nil, err
	}
	k.cfg = cfg.clone()
	k.resolved = resolved
	k.live = resolved

	k.springs = make([]*Spring, len(continuousSlots))
	for i, s := range continuousSlots {
		k.springs[i] = k.bank.Ensure(s.key, *s.field(&resolved))
	}

	k.scaler = NewAutoScaler(kc.Scaler, orDefault(cfg.Fidelity, DefaultFidelity))
	k.scaler.SetEnabled(resolved.ThermalGuard)
	k.scaler.OnChange(k.applyFidelityTier)
	return k, nil
}

// State returns the lifecycle state.
func (k *Kernel) State() KernelState { return k.state }

// Attach binds the kernel to t, snaps every spring onto its target so the
// first frame shows the configured state without animation, and subscribes
// the reactivity signal if the configured mode tracks the pointer. Attaching
// again rebinds to the new target.
func (k *Kernel) Attach(t Target) error {
	if k.state == StateDisposed {
		return ErrDisposed
	}
	k.target = t
	k.bank.SnapAll()
	k.writeLive()
	if k.signal == nil {
		k.subscribe()
	}
	k.hasLast = false
	k.state = StateAttached
	if k.target != nil {
		k.target.SetConstants(&k.live)
	}
	Logger().Info("kernel attached", "reactivity", k.resolved.ReactivityMode, "segments", k.resolved.Segments)
	return nil
}

// Update runs one tick. dt is the frame delta in seconds; pass 0 (or any
// non-positive value) to derive it from the kernel's clock. After Dispose,
// Update does nothing.
//
// Order within a tick: springs step, animated values are written, the
// reactivity signal is advanced and merged, the target receives the
// constants, and the frame duration is reported to the AutoScaler.
func (k *Kernel) Update(dt float64) {
	if k.state == StateDisposed {
		return
	}
	var t0 time.Time
	if k.debug {
		t0 = time.Now()
	}

	now := k.clock.Now()
	if !(dt > 0) {
		dt = 0
		if k.hasLast {
			dt = now.Sub(k.last).Seconds()
		}
	}
	k.last = now
	k.hasLast = true
	k.elapsed += dt

	moving := k.bank.Step(dt)
	if k.debug {
		k.stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}

	k.writeLive()
	if k.debug {
		k.stats.writeTime = time.Since(t0)
		t0 = time.Now()
	}

	if k.signal != nil {
		k.signal.Advance(k.elapsed)
		k.live.Pointer = k.signal.Position()
		if k.live.ReactivityMode.Discrete() {
			k.live.ShockTime = k.signal.SinceTrigger()
		}
	}
	if k.target != nil {
		k.target.SetConstants(&k.live)
	}
	if k.debug {
		k.stats.signalTime = time.Since(t0)
		t0 = time.Now()
	}

	if dt > 0 {
		k.scaler.ReportFrame(time.Duration(dt * float64(time.Second)))
	}
	if k.debug {
		k.stats.scaleTime = time.Since(t0)
		k.stats.moving = moving
		k.stats.frame = dt
		k.debugLog()
	}
}

// writeLive copies every spring value into its constant slot.
func (k *Kernel) writeLive() {
	for i, s := range continuousSlots {
		*s.field(&k.live) = k.springs[i].Value()
	}
}

// Dispose releases the signal, clears every spring and makes the kernel
// permanently unusable. Mutating calls afterwards return ErrDisposed.
func (k *Kernel) Dispose() {
	if k.state == StateDisposed {
		return
	}
	k.unsubscribe()
	k.bank.Dispose()
	k.springs = nil
	k.scaler.OnChange(nil)
	k.scaler.SetEnabled(false)
	k.onFidelity = nil
	k.target = nil
	k.state = StateDisposed
	Logger().Info("kernel disposed")
}

// Configure merges partial into the current configuration and applies the
// result in one resolution. On error nothing changes.
func (k *Kernel) Configure(partial Config) error {
	return k.mutate(partial.Reactivity != "", func(c *Config) { *c = c.Merge(partial) })
}

// ApplyPreset replaces the configuration with the named preset applied to
// partial. Allow-list violations return *ConfigurationRejectedError and leave
// the kernel unchanged.
func (k *Kernel) ApplyPreset(name string, partial Config) error {
	if k.state == StateDisposed {
		return ErrDisposed
	}
	cfg, err := k.presets.Apply(name, partial)
	if err != nil {
		return err
	}
	return k.mutate(true, func(c *Config) { *c = cfg })
}

// SetSurface selects a surface token.
func (k *Kernel) SetSurface(name string) error {
	return k.mutate(false, func(c *Config) { c.Surface = name })
}

// SetVibe selects a vibe token.
func (k *Kernel) SetVibe(name string) error {
	return k.mutate(false, func(c *Config) { c.Vibe = name })
}

// SetReactivity selects a reactivity token and rebuilds the signal
// subscription.
func (k *Kernel) SetReactivity(name string) error {
	return k.mutate(true, func(c *Config) { c.Reactivity = name })
}

// SetFidelity selects a fidelity token and moves the AutoScaler onto it.
func (k *Kernel) SetFidelity(name string) error {
	return k.mutate(false, func(c *Config) { c.Fidelity = name })
}

// SetPalette selects a palette token.
func (k *Kernel) SetPalette(name string) error {
	return k.mutate(false, func(c *Config) { c.Palette = name })
}

// SetIntensity sets the displacement intensity, clamped to [0, 2].
func (k *Kernel) SetIntensity(v float64) error {
	return k.mutate(false, func(c *Config) { c.Intensity = Float(v) })
}

// SetSpeed sets the animation speed multiplier, clamped to [0, 5].
func (k *Kernel) SetSpeed(v float64) error {
	return k.mutate(false, func(c *Config) { c.Speed = Float(v) })
}

// SetAngle sets the surface rotation in degrees, clamped to [0, 360].
func (k *Kernel) SetAngle(deg float64) error {
	return k.mutate(false, func(c *Config) { c.Angle = Float(deg) })
}

// SetContourLines sets the contour line count, clamped to [4, 64].
func (k *Kernel) SetContourLines(n int) error {
	return k.mutate(false, func(c *Config) { c.ContourLines = Int(n) })
}

// SetGrain sets film grain strength.
func (k *Kernel) SetGrain(v float64) error {
	return k.mutate(false, func(c *Config) { c.Grain = Float(v) })
}

// SetGlow sets bloom strength.
func (k *Kernel) SetGlow(v float64) error {
	return k.mutate(false, func(c *Config) { c.Glow = Float(v) })
}

// SetChromatic sets chromatic aberration strength.
func (k *Kernel) SetChromatic(v float64) error {
	return k.mutate(false, func(c *Config) { c.Chromatic = Float(v) })
}

// SetVignette sets vignette strength.
func (k *Kernel) SetVignette(v float64) error {
	return k.mutate(false, func(c *Config) { c.Vignette = Float(v) })
}

// SetBlur sets blur strength.
func (k *Kernel) SetBlur(v float64) error {
	return k.mutate(false, func(c *Config) { c.Blur = Float(v) })
}

// SetWireframe toggles wireframe rendering. Applied immediately.
func (k *Kernel) SetWireframe(on bool) error {
	return k.mutate(false, func(c *Config) { c.Wireframe = Bool(on) })
}

// SetThermalGuard enables or disables the AutoScaler. Disabling clears its
// accumulated samples.
func (k *Kernel) SetThermalGuard(on bool) error {
	return k.mutate(false, func(c *Config) { c.ThermalGuard = Bool(on) })
}

// mutate applies fn to a copy of the configuration, resolves it and, only on
// success, commits the copy and pushes the new targets.
func (k *Kernel) mutate(resubscribe bool, fn func(c *Config)) error {
	if k.state == StateDisposed {
		return ErrDisposed
	}
	next := k.cfg.clone()
	fn(&next)
	resolved, err := k.dict.Resolve(next)
	if err != nil {
		Logger().Warn("configuration rejected", "err", err)
		return err
	}

	prevMode := k.resolved.ReactivityMode
	k.cfg = next
	k.resolved = resolved
	k.pushTargets()

	if resubscribe || resolved.ReactivityMode != prevMode {
		k.unsubscribe()
		if k.state == StateAttached {
			k.subscribe()
		}
	}
	if k.scaler.Enabled() != resolved.ThermalGuard {
		k.scaler.SetEnabled(resolved.ThermalGuard)
	}
	k.scaler.SetTier(orDefault(next.Fidelity, DefaultFidelity))
	return nil
}

// pushTargets routes continuous constants into their springs and writes
// discrete constants straight through.
func (k *Kernel) pushTargets() {
	for i, s := range continuousSlots {
		k.springs[i].SetTarget(*s.field(&k.resolved))
	}
	for _, s := range discreteSlots {
		s.copy(&k.live, &k.resolved)
	}
	if !k.live.ReactivityMode.Discrete() {
		k.live.ShockTime = 0
	}
}

// applyFidelityTier is the AutoScaler callback. Only the fidelity slots are
// re-resolved; every other spring keeps its target.
func (k *Kernel) applyFidelityTier(tier string) {
	def, ok := k.dict.Registry().Fidelity(tier)
	if !ok {
		Logger().Warn("fidelity tier not registered", "tier", tier)
		return
	}
	k.cfg.Fidelity = tier
	k.resolved.Segments = def.Segments
	k.resolved.LineWidth = def.LineWidth
	for i, s := range continuousSlots {
		if s.fidelity {
			k.springs[i].SetTarget(*s.field(&k.resolved))
		}
	}
	for _, s := range discreteSlots {
		if s.fidelity {
			s.copy(&k.live, &k.resolved)
		}
	}
	if k.onFidelity != nil {
		k.onFidelity(tier)
	}
}

func (k *Kernel) subscribe() {
	if !k.resolved.ReactivityMode.Tracking() {
		return
	}
	k.signal = k.signals(k.resolved.ReactivityMode)
}

func (k *Kernel) unsubscribe() {
	if k.signal != nil {
		k.signal.Close()
		k.signal = nil
	}
}

// OnFidelityChange sets the single callback invoked with the new tier name
// whenever the AutoScaler changes fidelity. nil removes it.
func (k *Kernel) OnFidelityChange(fn func(tier string)) {
	k.onFidelity = fn
}

// Constants returns the current animated constants.
func (k *Kernel) Constants() ShaderConstants { return k.live }

// Targets returns the resolved constants the springs are moving toward.
func (k *Kernel) Targets() ShaderConstants { return k.resolved }

// Config returns a copy of the current configuration.
func (k *Kernel) Config() Config { return k.cfg.clone() }

// Fidelity returns the active fidelity token.
func (k *Kernel) Fidelity() string { return orDefault(k.cfg.Fidelity, DefaultFidelity) }

// Settled reports whether every spring is at rest.
func (k *Kernel) Settled() bool { return k.bank.Settled() }

// Snap settles every spring on its target and writes the result through.
func (k *Kernel) Snap() {
	if k.state == StateDisposed {
		return
	}
	k.bank.SnapAll()
	k.writeLive()
}

// Signal returns the active reactivity signal, or nil if the configured mode
// does not track the pointer or the kernel is not attached.
func (k *Kernel) Signal() Signal { return k.signal }

// Scaler returns the kernel's AutoScaler.
func (k *Kernel) Scaler() *AutoScaler { return k.scaler }

// Registry returns the registry the kernel resolves against.
func (k *Kernel) Registry() *Registry { return k.dict.Registry() }

// Presets returns the kernel's preset store.
func (k *Kernel) Presets() *PresetStore { return k.presets }

// Elapsed returns the accumulated tick time in seconds.
func (k *Kernel) Elapsed() float64 { return k.elapsed }
