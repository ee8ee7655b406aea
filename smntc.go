package smntc

import (
	"fmt"
	"image/color"
)

// Vec3 is a 3D vector used for world-space pointer positions.
type Vec3 struct {
	X, Y, Z float64
}

// RGB is a color triplet with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Category identifies one of the five token catalogues.
type Category uint8

const (
	CategorySurface    Category = iota // surface shape (displacement discriminant + noise scale)
	CategoryVibe                       // motion character (frequency, amplitude, damping, noise speed)
	CategoryReactivity                 // pointer response (mode, strength, radius)
	CategoryFidelity                   // quality tier (segments, line width)
	CategoryPalette                    // three-color scheme
)

// Categories lists every category in declaration order.
var Categories = [...]Category{
	CategorySurface,
	CategoryVibe,
	CategoryReactivity,
	CategoryFidelity,
	CategoryPalette,
}

var categoryNames = [...]string{
	CategorySurface:    "surface",
	CategoryVibe:       "vibe",
	CategoryReactivity: "reactivity",
	CategoryFidelity:   "fidelity",
	CategoryPalette:    "palette",
}

// String returns the lowercase configuration field name of the category.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory maps a configuration field name back to its Category.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// SurfaceMode is the displacement discriminant consumed by the shader.
type SurfaceMode uint8

const (
	SurfaceTopographic SurfaceMode = iota // layered contour terrain
	SurfaceCrystalline                    // faceted, quantized displacement
	SurfaceFluid                          // smooth rolling waves
	SurfaceGlitch                         // stepped, time-sliced displacement
)

// ReactivityMode selects how the surface responds to the pointer.
type ReactivityMode uint8

const (
	ReactivityStatic    ReactivityMode = iota // ignores the pointer
	ReactivityMagnetic                        // pulls the surface toward the pointer
	ReactivityRepel                           // pushes the surface away from the pointer
	ReactivityShockwave                       // radiates a ring from the last trigger
)

// Discrete reports whether the mode is driven by discrete triggers rather
// than continuous pointer tracking.
func (m ReactivityMode) Discrete() bool {
	return m == ReactivityShockwave
}

// Tracking reports whether the mode needs a pointer signal at all.
func (m ReactivityMode) Tracking() bool {
	return m != ReactivityStatic
}

// Range is a closed numeric interval [Min, Max].
type Range struct {
	Min, Max float64
}

// Clamp saturates v into the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies inside the range. Bounds are inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// toRGBA converts to an opaque 8-bit color for image fills.
func (c RGB) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: 255,
	}
}
