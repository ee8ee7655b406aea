package smntc

import "github.com/hajimehoshi/ebiten/v2"

// surfaceShaderSrc shades the displaced grid. Vertex SrcX carries the
// normalized height in [0, 1]; no source image is sampled.
const surfaceShaderSrc = `//kage:unit pixels
package main

var Primary vec3
var Accent vec3
var Background vec3
var ContourLines float
var LineWidth float
var Wireframe float
var Glow float
var Grain float
var Chromatic float
var Vignette float
var Time float
var Resolution vec2

func hash(p vec2) float {
	return fract(sin(dot(p, vec2(12.9898, 78.233))) * 43758.5453)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	h := clamp(src.x, 0, 1)
	band := fract(h * ContourLines)
	w := max(fwidth(h*ContourLines)*LineWidth, 0.0001)
	line := 1 - smoothstep(0, w, min(band, 1-band))

	base := mix(Background, Primary, h)
	if Wireframe > 0.5 {
		base = Background
	}
	col := mix(base, Accent, line)
	col = col + col*Glow*line*0.5

	uv := dst.xy / Resolution
	off := (uv.x - 0.5) * Chromatic * 0.1
	col = col + vec3(off, 0, -off)

	d := distance(uv, vec2(0.5))
	col = col * (1 - Vignette*smoothstep(0.3, 0.8, d))

	n := hash(dst.xy + vec2(Time))
	col = col + vec3((n-0.5)*Grain*0.2)

	col = clamp(col, 0, 1)
	return vec4(col*color.a, color.a)
}
`

// Lazy shader compilation (no sync.Once, rendering is single-threaded).
var surfaceShader *ebiten.Shader

func ensureSurfaceShader() *ebiten.Shader {
	if surfaceShader == nil {
		s, err := ebiten.NewShader([]byte(surfaceShaderSrc))
		if err != nil {
			panic("smntc: failed to compile surface shader: " + err.Error())
		}
		surfaceShader = s
	}
	return surfaceShader
}
