package smntc

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Preset is a named bundle of default configuration, optional custom tokens
// and optional allow-lists. An empty allow-list places no restriction on its
// category.
type Preset struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Defaults    Config      `json:"defaults"`
	Tokens      TokenTables `json:"tokens,omitempty"`

	AllowedSurfaces   []string `json:"allowedSurfaces,omitempty"`
	AllowedVibes      []string `json:"allowedVibes,omitempty"`
	AllowedReactivity []string `json:"allowedReactivity,omitempty"`
	AllowedFidelity   []string `json:"allowedFidelity,omitempty"`
	AllowedPalettes   []string `json:"allowedPalettes,omitempty"`
}

// Allowed returns the allow-list for category c.
func (p *Preset) Allowed(c Category) []string {
	switch c {
	case CategorySurface:
		return p.AllowedSurfaces
	case CategoryVibe:
		return p.AllowedVibes
	case CategoryReactivity:
		return p.AllowedReactivity
	case CategoryFidelity:
		return p.AllowedFidelity
	case CategoryPalette:
		return p.AllowedPalettes
	}
	return nil
}

// Apply merges partial over the preset defaults (explicit values win) and
// enforces the allow-lists against every token the merged configuration
// names. Tokens left unset fall back to the resolver defaults and are not
// checked. Neither p nor partial is modified.
func (p *Preset) Apply(partial Config) (Config, error) {
	merged := p.Defaults.Merge(partial)
	for _, c := range Categories {
		allowed := p.Allowed(c)
		v := merged.Token(c)
		if len(allowed) == 0 || v == "" {
			continue
		}
		if !slices.Contains(allowed, v) {
			return Config{}, &ConfigurationRejectedError{
				Preset:  p.Name,
				Field:   c,
				Value:   v,
				Allowed: slices.Clone(allowed),
			}
		}
	}
	return merged, nil
}

// PresetStore holds presets by name. Registering a preset merges its custom
// token tables into the store's registry, so those tokens are usable even
// without the preset.
type PresetStore struct {
	registry *Registry
	order    []string
	presets  map[string]*Preset
}

// NewPresetStore creates an empty store that registers custom tokens into r.
func NewPresetStore(r *Registry) *PresetStore {
	if r == nil {
		panic("smntc: NewPresetStore requires a registry")
	}
	return &PresetStore{registry: r, presets: make(map[string]*Preset)}
}

// NewDefaultPresetStore creates a store seeded with the built-in presets.
func NewDefaultPresetStore(r *Registry) *PresetStore {
	s := NewPresetStore(r)
	for _, p := range builtinPresets() {
		s.Register(p)
	}
	return s
}

// Register stores p by name, replacing any preset of the same name, and
// merges its custom tokens into the registry.
func (s *PresetStore) Register(p Preset) {
	if _, ok := s.presets[p.Name]; !ok {
		s.order = append(s.order, p.Name)
	}
	stored := p
	s.presets[p.Name] = &stored
	s.registry.Merge(p.Tokens)
	Logger().Debug("preset registered", "preset", p.Name)
}

// Get returns the preset registered under name.
func (s *PresetStore) Get(name string) (Preset, bool) {
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, false
	}
	return *p, true
}

// Names lists registered preset names in registration order.
func (s *PresetStore) Names() []string {
	return slices.Clone(s.order)
}

// Apply looks up the named preset and applies it to partial.
func (s *PresetStore) Apply(name string, partial Config) (Config, error) {
	p, ok := s.presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg, err := p.Apply(partial)
	if err != nil {
		Logger().Warn("preset rejected configuration", "preset", name, "err", err)
		return Config{}, err
	}
	return cfg, nil
}

// LoadPresets parses a JSON array of presets.
func LoadPresets(jsonData []byte) ([]Preset, error) {
	var presets []Preset
	if err := json.Unmarshal(jsonData, &presets); err != nil {
		return nil, fmt.Errorf("smntc: failed to parse presets JSON: %w", err)
	}
	for i, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("smntc: preset %d has no name", i)
		}
	}
	return presets, nil
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Name:        "hero",
			Description: "Bold fluid surface for landing sections.",
			Defaults: Config{
				Surface:    "fluid",
				Vibe:       "breathing",
				Reactivity: "magnetic",
				Palette:    "neon",
				Glow:       Float(0.6),
				Vignette:   Float(0.3),
			},
		},
		{
			Name:        "ambient",
			Description: "Quiet background terrain.",
			Defaults: Config{
				Surface:   "topographic",
				Vibe:      "stable",
				Palette:   "monochrome",
				Intensity: Float(0.6),
				Speed:     Float(0.5),
			},
			AllowedVibes:      []string{"stable", "calm", "breathing"},
			AllowedReactivity: []string{"static", "magnetic"},
		},
		{
			Name:        "alert",
			Description: "High-energy glitch field with shockwave pulses.",
			Defaults: Config{
				Surface:    "glitch",
				Vibe:       "agitated",
				Reactivity: "shockwave",
				Palette:    "ember",
				Chromatic:  Float(0.4),
				Grain:      Float(0.2),
			},
		},
		{
			Name:        "arctic-only",
			Description: "Brand lock: arctic palette only.",
			Defaults: Config{
				Surface: "crystalline",
			},
			AllowedPalettes: []string{"arctic"},
		},
	}
}
