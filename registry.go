package smntc

// SurfaceDef is the numeric definition behind a surface token.
type SurfaceDef struct {
	Mode       SurfaceMode `json:"mode"`
	NoiseScale float64     `json:"noiseScale"`
}

// VibeDef is the numeric definition behind a vibe token.
type VibeDef struct {
	Frequency  float64 `json:"frequency"`
	Amplitude  float64 `json:"amplitude"`
	Damping    float64 `json:"damping"`
	NoiseSpeed float64 `json:"noiseSpeed"`
}

// ReactivityDef is the numeric definition behind a reactivity token.
type ReactivityDef struct {
	Mode     ReactivityMode `json:"mode"`
	Strength float64        `json:"strength"`
	Radius   float64        `json:"radius"`
}

// FidelityDef is the numeric definition behind a fidelity token.
type FidelityDef struct {
	Segments  int     `json:"segments"`
	LineWidth float64 `json:"lineWidth"`
}

// PaletteDef is the numeric definition behind a palette token. Channels are
// normalized to [0, 1].
type PaletteDef struct {
	Primary    RGB `json:"primary"`
	Accent     RGB `json:"accent"`
	Background RGB `json:"background"`
}

// tokenTable is an insertion-ordered upsert map.
type tokenTable[T any] struct {
	order []string
	defs  map[string]T
}

func (t *tokenTable[T]) put(name string, def T) {
	if t.defs == nil {
		t.defs = make(map[string]T)
	}
	if _, ok := t.defs[name]; !ok {
		t.order = append(t.order, name)
	}
	t.defs[name] = def
}

func (t *tokenTable[T]) get(name string) (T, bool) {
	def, ok := t.defs[name]
	return def, ok
}

func (t *tokenTable[T]) names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// TokenList is an introspection snapshot of every registered token name,
// per category, in insertion order.
type TokenList struct {
	Surfaces   []string `json:"surfaces"`
	Vibes      []string `json:"vibes"`
	Reactivity []string `json:"reactivity"`
	Fidelity   []string `json:"fidelity"`
	Palettes   []string `json:"palettes"`
}

// Registry is a mutable token catalogue. NewRegistry seeds it with the
// built-in tables; Register* calls add or overwrite definitions (last write
// wins). Definitions are never removed.
//
// Registry does no locking. Register everything during configuration, then
// share it read-only between kernels.
type Registry struct {
	surfaces   tokenTable[SurfaceDef]
	vibes      tokenTable[VibeDef]
	reactivity tokenTable[ReactivityDef]
	fidelity   tokenTable[FidelityDef]
	palettes   tokenTable[PaletteDef]
}

// NewRegistry returns a registry seeded with the built-in tokens.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, e := range builtinSurfaces {
		r.RegisterSurface(e.name, e.def)
	}
	for _, e := range builtinVibes {
		r.RegisterVibe(e.name, e.def)
	}
	for _, e := range builtinReactivity {
		r.RegisterReactivity(e.name, e.def)
	}
	for _, e := range builtinFidelity {
		r.RegisterFidelity(e.name, e.def)
	}
	for _, e := range builtinPalettes {
		r.RegisterPalette(e.name, e.def)
	}
	return r
}

// NewEmptyRegistry returns a registry with no tokens at all.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// RegisterSurface adds or overwrites a surface token.
func (r *Registry) RegisterSurface(name string, def SurfaceDef) { r.surfaces.put(name, def) }

// RegisterVibe adds or overwrites a vibe token.
func (r *Registry) RegisterVibe(name string, def VibeDef) { r.vibes.put(name, def) }

// RegisterReactivity adds or overwrites a reactivity token.
func (r *Registry) RegisterReactivity(name string, def ReactivityDef) { r.reactivity.put(name, def) }

// RegisterFidelity adds or overwrites a fidelity token.
func (r *Registry) RegisterFidelity(name string, def FidelityDef) { r.fidelity.put(name, def) }

// RegisterPalette adds or overwrites a palette token.
func (r *Registry) RegisterPalette(name string, def PaletteDef) { r.palettes.put(name, def) }

// Surface looks up a surface token. ok is false when the name is unknown.
func (r *Registry) Surface(name string) (SurfaceDef, bool) { return r.surfaces.get(name) }

// Vibe looks up a vibe token.
func (r *Registry) Vibe(name string) (VibeDef, bool) { return r.vibes.get(name) }

// Reactivity looks up a reactivity token.
func (r *Registry) Reactivity(name string) (ReactivityDef, bool) { return r.reactivity.get(name) }

// Fidelity looks up a fidelity token.
func (r *Registry) Fidelity(name string) (FidelityDef, bool) { return r.fidelity.get(name) }

// Palette looks up a palette token.
func (r *Registry) Palette(name string) (PaletteDef, bool) { return r.palettes.get(name) }

// Names returns the registered names of one category in insertion order.
// The returned slice is a copy.
func (r *Registry) Names(c Category) []string {
	switch c {
	case CategorySurface:
		return r.surfaces.names()
	case CategoryVibe:
		return r.vibes.names()
	case CategoryReactivity:
		return r.reactivity.names()
	case CategoryFidelity:
		return r.fidelity.names()
	case CategoryPalette:
		return r.palettes.names()
	}
	return nil
}

// Has reports whether name is registered in category c.
func (r *Registry) Has(c Category, name string) bool {
	var ok bool
	switch c {
	case CategorySurface:
		_, ok = r.surfaces.get(name)
	case CategoryVibe:
		_, ok = r.vibes.get(name)
	case CategoryReactivity:
		_, ok = r.reactivity.get(name)
	case CategoryFidelity:
		_, ok = r.fidelity.get(name)
	case CategoryPalette:
		_, ok = r.palettes.get(name)
	}
	return ok
}

// List returns a snapshot of every registered name per category.
func (r *Registry) List() TokenList {
	return TokenList{
		Surfaces:   r.surfaces.names(),
		Vibes:      r.vibes.names(),
		Reactivity: r.reactivity.names(),
		Fidelity:   r.fidelity.names(),
		Palettes:   r.palettes.names(),
	}
}

// TokenTables is a bundle of custom definitions, as carried by a Preset.
type TokenTables struct {
	Surfaces   map[string]SurfaceDef    `json:"surfaces,omitempty"`
	Vibes      map[string]VibeDef       `json:"vibes,omitempty"`
	Reactivity map[string]ReactivityDef `json:"reactivity,omitempty"`
	Fidelity   map[string]FidelityDef   `json:"fidelity,omitempty"`
	Palettes   map[string]PaletteDef    `json:"palettes,omitempty"`
}

// Merge registers every definition in t. Map iteration order is randomized,
// so names are registered in sorted order to keep List output stable.
func (r *Registry) Merge(t TokenTables) {
	for _, name := range sortedKeys(t.Surfaces) {
		r.RegisterSurface(name, t.Surfaces[name])
	}
	for _, name := range sortedKeys(t.Vibes) {
		r.RegisterVibe(name, t.Vibes[name])
	}
	for _, name := range sortedKeys(t.Reactivity) {
		r.RegisterReactivity(name, t.Reactivity[name])
	}
	for _, name := range sortedKeys(t.Fidelity) {
		r.RegisterFidelity(name, t.Fidelity[name])
	}
	for _, name := range sortedKeys(t.Palettes) {
		r.RegisterPalette(name, t.Palettes[name])
	}
}
