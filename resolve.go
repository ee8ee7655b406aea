package smntc

import "math"

// ShaderConstants is the flat, fully resolved numeric record consumed by the
// surface shader. Every numeric field lies within its documented range.
type ShaderConstants struct {
	SurfaceMode SurfaceMode
	NoiseScale  float64

	Frequency  float64
	Amplitude  float64
	Damping    float64
	NoiseSpeed float64

	ReactivityMode     ReactivityMode
	ReactivityStrength float64
	ReactivityRadius   float64

	Segments  int
	LineWidth float64

	Primary    RGB
	Accent     RGB
	Background RGB

	Wireframe    bool
	ThermalGuard bool

	Intensity    float64
	Speed        float64
	ContourLines float64
	Angle        float64 // degrees
	Grain        float64
	Glow         float64
	Chromatic    float64
	Vignette     float64
	Blur         float64

	// Reactivity signal slots. Resolve leaves them zero; the Kernel copies
	// the signal into them once per tick.
	Pointer   Vec3
	ShockTime float64
}

// Dictionary resolves configurations against a token registry. It holds no
// state of its own: Resolve is a pure function of the configuration and the
// registry contents at call time.
type Dictionary struct {
	registry *Registry
}

// NewDictionary creates a dictionary reading from r. r must not be nil.
func NewDictionary(r *Registry) *Dictionary {
	if r == nil {
		panic("smntc: NewDictionary requires a registry")
	}
	return &Dictionary{registry: r}
}

// Registry returns the registry the dictionary reads from.
func (d *Dictionary) Registry() *Registry { return d.registry }

// Resolve turns a sparse configuration into shader constants.
//
// Unset tokens take their defaults; an unregistered token fails with
// *UnknownTokenError. Unset knobs take their defaults, finite knobs are
// saturated into range, and non-finite knobs fail with
// *InvalidNumericInputError. On error the returned constants are zero.
func (d *Dictionary) Resolve(cfg Config) (ShaderConstants, error) {
	var out ShaderConstants
	r := d.registry

	name := orDefault(cfg.Surface, DefaultSurface)
	surface, ok := r.Surface(name)
	if !ok {
		return ShaderConstants{}, d.unknown(CategorySurface, name)
	}
	name = orDefault(cfg.Vibe, DefaultVibe)
	vibe, ok := r.Vibe(name)
	if !ok {
		return ShaderConstants{}, d.unknown(CategoryVibe, name)
	}
	name = orDefault(cfg.Reactivity, DefaultReactivity)
	react, ok := r.Reactivity(name)
	if !ok {
		return ShaderConstants{}, d.unknown(CategoryReactivity, name)
	}
	name = orDefault(cfg.Fidelity, DefaultFidelity)
	fid, ok := r.Fidelity(name)
	if !ok {
		return ShaderConstants{}, d.unknown(CategoryFidelity, name)
	}
	name = orDefault(cfg.Palette, DefaultPalette)
	pal, ok := r.Palette(name)
	if !ok {
		return ShaderConstants{}, d.unknown(CategoryPalette, name)
	}

	var knobs [knobCount]float64
	for i, k := range floatKnobs {
		v, err := resolveKnob(k.name, *k.field(&cfg), k.rng, k.def)
		if err != nil {
			return ShaderConstants{}, err
		}
		knobs[i] = v
	}
	contour := float64(defaultContourLines)
	if cfg.ContourLines != nil {
		contour = ContourLinesRange.Clamp(float64(*cfg.ContourLines))
	}

	out.SurfaceMode = surface.Mode
	out.NoiseScale = surface.NoiseScale
	out.Frequency = vibe.Frequency
	out.Amplitude = vibe.Amplitude
	out.Damping = vibe.Damping
	out.NoiseSpeed = vibe.NoiseSpeed
	out.ReactivityMode = react.Mode
	out.ReactivityStrength = react.Strength
	out.ReactivityRadius = react.Radius
	out.Segments = fid.Segments
	out.LineWidth = fid.LineWidth
	out.Primary = clampRGB(pal.Primary)
	out.Accent = clampRGB(pal.Accent)
	out.Background = clampRGB(pal.Background)
	out.Wireframe = defaultWireframe
	if cfg.Wireframe != nil {
		out.Wireframe = *cfg.Wireframe
	}
	out.ThermalGuard = defaultThermalGuard
	if cfg.ThermalGuard != nil {
		out.ThermalGuard = *cfg.ThermalGuard
	}
	out.Intensity = knobs[knobIntensity]
	out.Speed = knobs[knobSpeed]
	out.Angle = knobs[knobAngle]
	out.Grain = knobs[knobGrain]
	out.Glow = knobs[knobGlow]
	out.Chromatic = knobs[knobChromatic]
	out.Vignette = knobs[knobVignette]
	out.Blur = knobs[knobBlur]
	out.ContourLines = contour
	return out, nil
}

// knob indices into floatKnobs.
const (
	knobIntensity = iota
	knobSpeed
	knobAngle
	knobGrain
	knobGlow
	knobChromatic
	knobVignette
	knobBlur
	knobCount
)

func (d *Dictionary) unknown(c Category, value string) error {
	return &UnknownTokenError{Category: c, Value: value, Valid: d.registry.Names(c)}
}

func resolveKnob(name string, v *float64, rng Range, def float64) (float64, error) {
	if v == nil {
		return def, nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, &InvalidNumericInputError{Field: name, Value: *v}
	}
	return rng.Clamp(*v), nil
}

func orDefault(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

func clampRGB(c RGB) RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// clamp01 saturates v into [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
