package smntc

import (
	"maps"
	"slices"
)

// Built-in token tables. Order here is the insertion order reported by List.

var builtinSurfaces = []struct {
	name string
	def  SurfaceDef
}{
	{"topographic", SurfaceDef{Mode: SurfaceTopographic, NoiseScale: 1.0}},
	{"crystalline", SurfaceDef{Mode: SurfaceCrystalline, NoiseScale: 2.0}},
	{"fluid", SurfaceDef{Mode: SurfaceFluid, NoiseScale: 0.6}},
	{"glitch", SurfaceDef{Mode: SurfaceGlitch, NoiseScale: 3.5}},
}

var builtinVibes = []struct {
	name string
	def  VibeDef
}{
	{"stable", VibeDef{Frequency: 0.5, Amplitude: 0.05, Damping: 0.9, NoiseSpeed: 0.1}},
	{"calm", VibeDef{Frequency: 1.0, Amplitude: 0.12, Damping: 0.8, NoiseSpeed: 0.3}},
	{"breathing", VibeDef{Frequency: 0.8, Amplitude: 0.20, Damping: 0.5, NoiseSpeed: 0.2}},
	{"agitated", VibeDef{Frequency: 3.0, Amplitude: 0.25, Damping: 0.3, NoiseSpeed: 1.2}},
	{"chaotic", VibeDef{Frequency: 5.0, Amplitude: 0.40, Damping: 0.05, NoiseSpeed: 2.5}},
}

var builtinReactivity = []struct {
	name string
	def  ReactivityDef
}{
	{"static", ReactivityDef{Mode: ReactivityStatic, Strength: 0, Radius: 0}},
	{"magnetic", ReactivityDef{Mode: ReactivityMagnetic, Strength: 0.5, Radius: 1.5}},
	{"repel", ReactivityDef{Mode: ReactivityRepel, Strength: 0.8, Radius: 1.2}},
	{"shockwave", ReactivityDef{Mode: ReactivityShockwave, Strength: 1.0, Radius: 3.0}},
}

// builtinFidelity is also the default AutoScaler ladder, lowest first.
var builtinFidelity = []struct {
	name string
	def  FidelityDef
}{
	{"low", FidelityDef{Segments: 64, LineWidth: 1.5}},
	{"medium", FidelityDef{Segments: 128, LineWidth: 1.2}},
	{"high", FidelityDef{Segments: 256, LineWidth: 1.0}},
	{"ultra", FidelityDef{Segments: 512, LineWidth: 0.8}},
}

var builtinPalettes = []struct {
	name string
	def  PaletteDef
}{
	{"monochrome", PaletteDef{
		Primary:    RGB{0.92, 0.92, 0.92},
		Accent:     RGB{0.55, 0.55, 0.55},
		Background: RGB{0.04, 0.04, 0.04},
	}},
	{"ember", PaletteDef{
		Primary:    RGB{1.0, 0.42, 0.10},
		Accent:     RGB{1.0, 0.78, 0.25},
		Background: RGB{0.10, 0.02, 0.01},
	}},
	{"arctic", PaletteDef{
		Primary:    RGB{0.70, 0.90, 1.0},
		Accent:     RGB{0.30, 0.60, 0.95},
		Background: RGB{0.02, 0.05, 0.10},
	}},
	{"neon", PaletteDef{
		Primary:    RGB{1.0, 0.10, 0.80},
		Accent:     RGB{0.10, 1.0, 0.90},
		Background: RGB{0.03, 0.0, 0.08},
	}},
	{"phantom", PaletteDef{
		Primary:    RGB{0.62, 0.50, 0.90},
		Accent:     RGB{0.35, 0.95, 0.70},
		Background: RGB{0.02, 0.02, 0.05},
	}},
}

// DefaultLadder is the ordered fidelity tier ladder used by the AutoScaler
// when no other ladder is configured.
func DefaultLadder() []string {
	out := make([]string, len(builtinFidelity))
	for i, e := range builtinFidelity {
		out[i] = e.name
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
