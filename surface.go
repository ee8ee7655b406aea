package smntc

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxGridCells caps cells per side so vertex indices fit in uint16.
// (255+1)^2 = 65536 vertices, the largest square grid addressable.
const maxGridCells = 255

// Surface is an Ebitengine render target for a Kernel. It owns a grid mesh
// whose resolution follows the fidelity segment count, displaces it on the
// CPU according to the surface mode, and shades it with a Kage shader whose
// uniforms are the kernel's animated constants.
type Surface struct {
	Width, Height int

	c     ShaderConstants
	phase float64 // accumulated noise time, scaled by speed
	time  float64

	cells int
	rest  []Vec3 // plane coordinates in [-1, 1]
	verts []ebiten.Vertex
	inds  []uint16

	offscreen *ebiten.Image
	blurTemps []*ebiten.Image
	imgOp     ebiten.DrawImageOptions
	shaderOp  ebiten.DrawTrianglesShaderOptions
	uniforms  map[string]any

	// Persistent uniform buffers, pre-stored in uniforms to avoid per-frame
	// slice allocation.
	primary, accent, background [3]float32
	resolution                  [2]float32
}

// NewSurface creates a surface that renders into a width x height area.
// No GPU resources are allocated until the first Draw.
func NewSurface(width, height int) *Surface {
	s := &Surface{
		Width:    width,
		Height:   height,
		uniforms: make(map[string]any, 13),
	}
	s.uniforms["Primary"] = s.primary[:]
	s.uniforms["Accent"] = s.accent[:]
	s.uniforms["Background"] = s.background[:]
	s.uniforms["Resolution"] = s.resolution[:]
	return s
}

// SetConstants implements Target. A change in segment count rebuilds the grid.
func (s *Surface) SetConstants(c *ShaderConstants) {
	s.c = *c
	if cells := gridCells(c.Segments); cells != s.cells {
		s.buildGrid(cells)
	}
	s.writeUniforms()
}

// Resize changes the render area. The offscreen target is reallocated on the
// next Draw.
func (s *Surface) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.resolution = [2]float32{float32(width), float32(height)}
}

// Constants returns the last constants received.
func (s *Surface) Constants() ShaderConstants { return s.c }

// Cells returns the number of grid cells per side.
func (s *Surface) Cells() int { return s.cells }

// Vertices returns the current displaced vertices. The slice is reused
// between frames and must not be retained.
func (s *Surface) Vertices() []ebiten.Vertex { return s.verts }

// Indices returns the grid triangle indices.
func (s *Surface) Indices() []uint16 { return s.inds }

func gridCells(segments int) int {
	return max(1, min(segments, maxGridCells))
}

// buildGrid lays out a (cells+1)^2 vertex grid over the [-1, 1] plane.
func (s *Surface) buildGrid(cells int) {
	vcols := cells + 1
	n := vcols * vcols
	s.cells = cells
	s.rest = make([]Vec3, n)
	s.verts = make([]ebiten.Vertex, n)
	s.inds = make([]uint16, cells*cells*6)

	for r := 0; r < vcols; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			s.rest[idx] = Vec3{
				X: float64(c)/float64(cells)*2 - 1,
				Y: float64(r)/float64(cells)*2 - 1,
			}
			s.verts[idx] = ebiten.Vertex{ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
		}
	}

	ii := 0
	for r := 0; r < cells; r++ {
		for c := 0; c < cells; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			s.inds[ii+0] = tl
			s.inds[ii+1] = bl
			s.inds[ii+2] = tr
			s.inds[ii+3] = tr
			s.inds[ii+4] = bl
			s.inds[ii+5] = br
			ii += 6
		}
	}
}

func (s *Surface) writeUniforms() {
	c := &s.c
	s.primary = [3]float32{float32(c.Primary.R), float32(c.Primary.G), float32(c.Primary.B)}
	s.accent = [3]float32{float32(c.Accent.R), float32(c.Accent.G), float32(c.Accent.B)}
	s.background = [3]float32{float32(c.Background.R), float32(c.Background.G), float32(c.Background.B)}
	s.resolution = [2]float32{float32(s.Width), float32(s.Height)}
	s.uniforms["ContourLines"] = float32(c.ContourLines)
	s.uniforms["LineWidth"] = float32(c.LineWidth)
	var wf float32
	if c.Wireframe {
		wf = 1
	}
	s.uniforms["Wireframe"] = wf
	s.uniforms["Glow"] = float32(c.Glow)
	s.uniforms["Grain"] = float32(c.Grain)
	s.uniforms["Chromatic"] = float32(c.Chromatic)
	s.uniforms["Vignette"] = float32(c.Vignette)
	s.uniforms["Time"] = float32(s.time)
}

// Advance moves the surface clock by dt seconds. Noise phase advances at
// Speed*NoiseSpeed so speed changes never jump the pattern.
func (s *Surface) Advance(dt float64) {
	s.time += dt
	s.phase += dt * s.c.Speed * s.c.NoiseSpeed
	s.uniforms["Time"] = float32(s.time)
}

// Displacement returns the height of plane point p for the current
// constants, in plane units.
func (s *Surface) Displacement(p Vec3) float64 {
	c := &s.c
	f := c.Frequency * c.NoiseScale
	t := s.phase
	var h float64
	switch c.SurfaceMode {
	case SurfaceCrystalline:
		h = waveNoise(p.X*f, p.Y*f, t, c.Damping)
		h = math.Round(h*4) / 4
	case SurfaceFluid:
		h = 0.5*math.Sin(p.X*f+t) + 0.5*math.Sin(p.Y*f*1.3-t*0.8)
	case SurfaceGlitch:
		ts := math.Floor(t*8) / 8
		band := math.Floor((p.Y + 1) * 6)
		h = waveNoise(p.X*f+band, p.Y*f, ts, c.Damping)
		if int(band)%2 == 1 {
			h = -h
		}
	default:
		h = waveNoise(p.X*f, p.Y*f, t, c.Damping)
	}
	h *= c.Amplitude * c.Intensity

	if c.ReactivityMode.Tracking() && c.ReactivityRadius > 0 {
		d := math.Hypot(p.X-c.Pointer.X, p.Y-c.Pointer.Y)
		fall := max(0, 1-d/c.ReactivityRadius)
		switch c.ReactivityMode {
		case ReactivityMagnetic:
			h += c.ReactivityStrength * fall * 0.25
		case ReactivityRepel:
			h -= c.ReactivityStrength * fall * 0.25
		case ReactivityShockwave:
			if c.ShockTime >= 0 {
				ring := d - c.ShockTime*2
				h += c.ReactivityStrength * math.Exp(-ring*ring*8) * math.Exp(-c.ShockTime) * 0.3
			}
		}
	}
	return h
}

// waveNoise is two octaves of interfering sines. damping attenuates the
// second octave.
func waveNoise(x, y, t, damping float64) float64 {
	a := math.Sin(x+t) * math.Cos(y*0.8+t*0.7)
	b := math.Sin(x*2.1-t*1.3) * math.Cos(y*1.9+t*0.5)
	return (a + b*(1-clamp01(damping))*0.5) / 1.5
}

// Displace recomputes every vertex position and height attribute.
func (s *Surface) Displace() {
	cx := float64(s.Width) / 2
	cy := float64(s.Height) / 2
	scale := 0.45 * float64(min(s.Width, s.Height))
	sin, cos := math.Sincos(s.c.Angle * math.Pi / 180)
	for i, p := range s.rest {
		h := s.Displacement(p)
		rx := p.X*cos - p.Y*sin
		ry := p.X*sin + p.Y*cos
		v := &s.verts[i]
		v.DstX = float32(cx + rx*scale)
		v.DstY = float32(cy + (ry*0.5-h)*scale)
		v.SrcX = float32(clamp01(h + 0.5))
		v.SrcY = 0
	}
}

// PointerToWorld maps screen coordinates onto the surface plane, ignoring
// displacement. It inverts the projection used by Displace.
func (s *Surface) PointerToWorld(x, y float64) Vec3 {
	scale := 0.45 * float64(min(s.Width, s.Height))
	if scale == 0 {
		return Vec3{}
	}
	rx := (x - float64(s.Width)/2) / scale
	ry := (y - float64(s.Height)/2) / scale / 0.5
	sin, cos := math.Sincos(-s.c.Angle * math.Pi / 180)
	return Vec3{X: rx*cos - ry*sin, Y: rx*sin + ry*cos}
}

// CapturePointer feeds the cursor position and left clicks into sig if it
// accepts them. A nil sig is ignored.
func (s *Surface) CapturePointer(sig Signal) {
	if sig == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	if p, ok := sig.(interface{ SetPosition(Vec3) }); ok {
		p.SetPosition(s.PointerToWorld(float64(x), float64(y)))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if t, ok := sig.(interface{ Trigger() }); ok {
			t.Trigger()
		}
	}
}

// Draw displaces the grid and renders it into dst, then applies blur.
func (s *Surface) Draw(dst *ebiten.Image) {
	if s.cells == 0 {
		return
	}
	s.Displace()
	s.ensureOffscreen()
	s.offscreen.Fill(s.c.Background.toRGBA())
	s.shaderOp.Uniforms = s.uniforms
	s.offscreen.DrawTrianglesShader(s.verts, s.inds, ensureSurfaceShader(), &s.shaderOp)
	s.blur(s.offscreen, dst, int(math.Round(s.c.Blur*8)))
}

func (s *Surface) ensureOffscreen() {
	if s.offscreen != nil {
		b := s.offscreen.Bounds()
		if b.Dx() == s.Width && b.Dy() == s.Height {
			return
		}
		s.offscreen.Deallocate()
	}
	s.offscreen = ebiten.NewImage(max(s.Width, 1), max(s.Height, 1))
}

// blur renders a Kawase-style blur of src into dst using bilinear
// downscale/upscale passes. radius 0 is a straight copy.
func (s *Surface) blur(src, dst *ebiten.Image, radius int) {
	op := &s.imgOp
	if radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}
	passes := max(int(math.Ceil(math.Log2(float64(radius)))), 1)
	for len(s.blurTemps) < passes {
		s.blurTemps = append(s.blurTemps, nil)
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		t := s.blurTemps[i]
		if t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			t = ebiten.NewImage(w, h)
			s.blurTemps[i] = t
		} else {
			t.Clear()
		}
		scaleInto(op, current, t)
		t.DrawImage(current, op)
		current = t
	}
	for i := passes - 2; i >= 0; i-- {
		s.blurTemps[i].Clear()
		scaleInto(op, current, s.blurTemps[i])
		s.blurTemps[i].DrawImage(current, op)
		current = s.blurTemps[i]
	}
	scaleInto(op, current, dst)
	dst.DrawImage(current, op)
}

func scaleInto(op *ebiten.DrawImageOptions, from, to *ebiten.Image) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	fb, tb := from.Bounds(), to.Bounds()
	op.GeoM.Scale(float64(tb.Dx())/float64(fb.Dx()), float64(tb.Dy())/float64(fb.Dy()))
	op.Filter = ebiten.FilterLinear
}

// Dispose releases GPU images held by the surface.
func (s *Surface) Dispose() {
	if s.offscreen != nil {
		s.offscreen.Deallocate()
		s.offscreen = nil
	}
	for _, t := range s.blurTemps {
		if t != nil {
			t.Deallocate()
		}
	}
	s.blurTemps = nil
}
