package smntc

import (
	"slices"
	"testing"
)

func TestNewRegistry_BuiltinOrder(t *testing.T) {
	l := NewRegistry().List()
	want := TokenList{
		Surfaces:   []string{"topographic", "crystalline", "fluid", "glitch"},
		Vibes:      []string{"stable", "calm", "breathing", "agitated", "chaotic"},
		Reactivity: []string{"static", "magnetic", "repel", "shockwave"},
		Fidelity:   []string{"low", "medium", "high", "ultra"},
		Palettes:   []string{"monochrome", "ember", "arctic", "neon", "phantom"},
	}
	if !slices.Equal(l.Surfaces, want.Surfaces) {
		t.Errorf("Surfaces = %v, want %v", l.Surfaces, want.Surfaces)
	}
	if !slices.Equal(l.Vibes, want.Vibes) {
		t.Errorf("Vibes = %v, want %v", l.Vibes, want.Vibes)
	}
	if !slices.Equal(l.Reactivity, want.Reactivity) {
		t.Errorf("Reactivity = %v, want %v", l.Reactivity, want.Reactivity)
	}
	if !slices.Equal(l.Fidelity, want.Fidelity) {
		t.Errorf("Fidelity = %v, want %v", l.Fidelity, want.Fidelity)
	}
	if !slices.Equal(l.Palettes, want.Palettes) {
		t.Errorf("Palettes = %v, want %v", l.Palettes, want.Palettes)
	}
}

func TestRegistry_UpsertLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.RegisterVibe("calm", VibeDef{Frequency: 9})
	r.RegisterVibe("calm", VibeDef{Frequency: 7})

	def, ok := r.Vibe("calm")
	if !ok || def.Frequency != 7 {
		t.Errorf("Vibe(calm) = %+v, %v; want frequency 7", def, ok)
	}
	names := r.Names(CategoryVibe)
	if len(names) != 5 {
		t.Errorf("overwrite changed count: %v", names)
	}
	if names[1] != "calm" {
		t.Errorf("overwrite moved calm to %v", names)
	}
}

func TestRegistry_NewNamesAppend(t *testing.T) {
	r := NewRegistry()
	r.RegisterPalette("sunset", PaletteDef{Primary: RGB{1, 0.5, 0}})
	names := r.Names(CategoryPalette)
	if names[len(names)-1] != "sunset" {
		t.Errorf("Names = %v, want sunset last", names)
	}
	if !r.Has(CategoryPalette, "sunset") {
		t.Error("Has(palette, sunset) = false")
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Surface("nope"); ok {
		t.Error("Surface(nope) ok = true")
	}
	if _, ok := r.Fidelity("nope"); ok {
		t.Error("Fidelity(nope) ok = true")
	}
	if r.Has(CategoryReactivity, "nope") {
		t.Error("Has(reactivity, nope) = true")
	}
	if got := r.Names(Category(42)); got != nil {
		t.Errorf("Names(invalid) = %v, want nil", got)
	}
}

func TestRegistry_NamesIsCopy(t *testing.T) {
	r := NewRegistry()
	names := r.Names(CategorySurface)
	names[0] = "mutated"
	if r.Names(CategorySurface)[0] != "topographic" {
		t.Error("mutating Names result changed the registry")
	}
}

func TestRegistry_MergeSortedOrder(t *testing.T) {
	r := NewEmptyRegistry()
	r.Merge(TokenTables{
		Surfaces: map[string]SurfaceDef{
			"zeta":  {Mode: SurfaceFluid},
			"alpha": {Mode: SurfaceGlitch},
			"mid":   {Mode: SurfaceCrystalline},
		},
	})
	want := []string{"alpha", "mid", "zeta"}
	if got := r.Names(CategorySurface); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestNewEmptyRegistry(t *testing.T) {
	r := NewEmptyRegistry()
	for _, c := range Categories {
		if n := len(r.Names(c)); n != 0 {
			t.Errorf("%s has %d names, want 0", c, n)
		}
	}
}

func TestDefaultLadder(t *testing.T) {
	want := []string{"low", "medium", "high", "ultra"}
	if got := DefaultLadder(); !slices.Equal(got, want) {
		t.Errorf("DefaultLadder() = %v, want %v", got, want)
	}
}
