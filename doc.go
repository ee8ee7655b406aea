// Package smntc turns semantic descriptions of an animated surface into
// shader constants and keeps them moving smoothly in real time on
// [Ebitengine].
//
// A configuration names tokens ("fluid", "chaotic", "magnetic", "ultra",
// "arctic") and a handful of numeric knobs. A [Dictionary] resolves it
// against a [Registry] into a flat [ShaderConstants] record. A [Kernel] owns
// one configuration, animates every continuous constant toward its resolved
// target with a spring, merges a pointer [Signal] and lowers fidelity
// through an [AutoScaler] when frames run slow.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window with a
// full-screen [Surface] attached to the kernel:
//
//	k, err := smntc.NewKernel(smntc.Config{
//		Surface: "fluid", Vibe: "breathing", Palette: "neon",
//	}, smntc.KernelConfig{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	smntc.Run(k, smntc.RunConfig{Title: "Surface", Width: 960, Height: 540})
//
// For full control, implement [ebiten.Game] yourself, attach the kernel to a
// [Surface] (or any [Target]) and call [Kernel.Update] and [Surface.Draw]
// directly:
//
//	type Game struct {
//		k *smntc.Kernel
//		s *smntc.Surface
//	}
//
//	func (g *Game) Update() error         { g.k.Update(1.0 / 60); g.s.Advance(1.0 / 60); return nil }
//	func (g *Game) Draw(dst *ebiten.Image) { g.s.Draw(dst) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Tokens and presets
//
// Five categories of tokens exist: surface, vibe, reactivity, fidelity and
// palette. [NewRegistry] seeds the built-in catalogue; Register* methods add
// or overwrite entries. A [Preset] bundles defaults, custom tokens and
// allow-lists that reject selections outside a brand's vocabulary:
//
//	err := k.ApplyPreset("arctic-only", smntc.Config{Palette: "neon"})
//	// errors.Is(err, smntc.ErrConfigurationRejected) == true
//
// # Motion
//
// Setters such as [Kernel.SetVibe] and [Kernel.SetIntensity] resolve the
// whole configuration first and change nothing on error. Discrete constants
// (surface mode, reactivity mode, segment count, wireframe) switch on the
// next tick; continuous ones spring toward their new values. A
// [Choreography] scripts setter calls over time, with eased tweens from
// [gween].
//
// # Logging
//
// smntc logs through [log/slog]. Nothing is logged until [SetLogger] is
// called.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package smntc
