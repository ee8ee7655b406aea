package smntc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Default token selections used when a Config leaves a category empty.
const (
	DefaultSurface    = "topographic"
	DefaultVibe       = "calm"
	DefaultReactivity = "static"
	DefaultFidelity   = "high"
	DefaultPalette    = "monochrome"
)

// Documented ranges and defaults of the continuous knobs.
var (
	IntensityRange    = Range{0, 2}
	SpeedRange        = Range{0, 5}
	ContourLinesRange = Range{4, 64}
	AngleRange        = Range{0, 360}
	GrainRange        = Range{0, 1}
	GlowRange         = Range{0, 2}
	ChromaticRange    = Range{0, 1}
	VignetteRange     = Range{0, 1}
	BlurRange         = Range{0, 1}
)

const (
	defaultIntensity    = 1.0
	defaultSpeed        = 1.0
	defaultContourLines = 16
	defaultAngle        = 0.0
	defaultThermalGuard = true
	defaultWireframe    = false
)

// Config is a sparse selection of tokens and knobs. Empty token names and nil
// pointers mean "unset" and fall back to the documented defaults during
// resolution.
type Config struct {
	Surface    string `json:"surface,omitempty"`
	Vibe       string `json:"vibe,omitempty"`
	Reactivity string `json:"reactivity,omitempty"`
	Fidelity   string `json:"fidelity,omitempty"`
	Palette    string `json:"palette,omitempty"`

	Wireframe    *bool    `json:"wireframe,omitempty"`
	Intensity    *float64 `json:"intensity,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
	ContourLines *int     `json:"contourLines,omitempty"`
	ThermalGuard *bool    `json:"thermalGuard,omitempty"`
	Angle        *float64 `json:"angle,omitempty"`
	Grain        *float64 `json:"grain,omitempty"`
	Glow         *float64 `json:"glow,omitempty"`
	Chromatic    *float64 `json:"chromatic,omitempty"`
	Vignette     *float64 `json:"vignette,omitempty"`
	Blur         *float64 `json:"blur,omitempty"`
}

// Float returns a pointer to v, for populating Config knobs.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// DefaultConfig returns a fully populated Config holding every default.
func DefaultConfig() Config {
	return Config{
		Surface:      DefaultSurface,
		Vibe:         DefaultVibe,
		Reactivity:   DefaultReactivity,
		Fidelity:     DefaultFidelity,
		Palette:      DefaultPalette,
		Wireframe:    Bool(defaultWireframe),
		Intensity:    Float(defaultIntensity),
		Speed:        Float(defaultSpeed),
		ContourLines: Int(defaultContourLines),
		ThermalGuard: Bool(defaultThermalGuard),
		Angle:        Float(defaultAngle),
		Grain:        Float(0),
		Glow:         Float(0),
		Chromatic:    Float(0),
		Vignette:     Float(0),
		Blur:         Float(0),
	}
}

// Token returns the token selected for category c, or "" if unset.
func (c *Config) Token(cat Category) string {
	switch cat {
	case CategorySurface:
		return c.Surface
	case CategoryVibe:
		return c.Vibe
	case CategoryReactivity:
		return c.Reactivity
	case CategoryFidelity:
		return c.Fidelity
	case CategoryPalette:
		return c.Palette
	}
	return ""
}

// SetToken selects name for category c.
func (c *Config) SetToken(cat Category, name string) {
	switch cat {
	case CategorySurface:
		c.Surface = name
	case CategoryVibe:
		c.Vibe = name
	case CategoryReactivity:
		c.Reactivity = name
	case CategoryFidelity:
		c.Fidelity = name
	case CategoryPalette:
		c.Palette = name
	}
}

// Merge returns c with every field that is set in over replacing c's value.
// Neither receiver nor argument is modified; pointer fields are copied so the
// result shares no storage with either input.
func (c Config) Merge(over Config) Config {
	out := c.clone()
	for _, cat := range Categories {
		if v := over.Token(cat); v != "" {
			out.SetToken(cat, v)
		}
	}
	if over.Wireframe != nil {
		out.Wireframe = Bool(*over.Wireframe)
	}
	if over.ThermalGuard != nil {
		out.ThermalGuard = Bool(*over.ThermalGuard)
	}
	if over.ContourLines != nil {
		out.ContourLines = Int(*over.ContourLines)
	}
	for _, k := range floatKnobs {
		if v := *k.field(&over); v != nil {
			*k.field(&out) = Float(*v)
		}
	}
	return out
}

func (c Config) clone() Config {
	out := c
	if c.Wireframe != nil {
		out.Wireframe = Bool(*c.Wireframe)
	}
	if c.ThermalGuard != nil {
		out.ThermalGuard = Bool(*c.ThermalGuard)
	}
	if c.ContourLines != nil {
		out.ContourLines = Int(*c.ContourLines)
	}
	for _, k := range floatKnobs {
		if v := *k.field(&c); v != nil {
			*k.field(&out) = Float(*v)
		}
	}
	return out
}

// floatKnob describes one float-valued continuous knob of Config.
type floatKnob struct {
	name  string
	field func(c *Config) **float64
	rng   Range
	def   float64
}

var floatKnobs = []floatKnob{
	{"intensity", func(c *Config) **float64 { return &c.Intensity }, IntensityRange, defaultIntensity},
	{"speed", func(c *Config) **float64 { return &c.Speed }, SpeedRange, defaultSpeed},
	{"angle", func(c *Config) **float64 { return &c.Angle }, AngleRange, defaultAngle},
	{"grain", func(c *Config) **float64 { return &c.Grain }, GrainRange, 0},
	{"glow", func(c *Config) **float64 { return &c.Glow }, GlowRange, 0},
	{"chromatic", func(c *Config) **float64 { return &c.Chromatic }, ChromaticRange, 0},
	{"vignette", func(c *Config) **float64 { return &c.Vignette }, VignetteRange, 0},
	{"blur", func(c *Config) **float64 { return &c.Blur }, BlurRange, 0},
}

// LoadConfig parses a JSON configuration. Unknown fields are rejected so that
// typos surface instead of silently resolving to defaults.
func LoadConfig(jsonData []byte) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("smntc: failed to parse config JSON: %w", err)
	}
	return cfg, nil
}
