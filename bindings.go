package smntc

// slotKind classifies how a resolved constant reaches the shader.
type slotKind uint8

const (
	slotContinuous slotKind = iota // routed through a spring every change
	slotDiscrete                   // written immediately, never interpolated
)

// slot binds one shader constant to its update policy. Continuous slots
// expose the float field the spring drives; discrete slots copy their value
// from the resolved record into the live record.
type slot struct {
	key      string
	kind     slotKind
	fidelity bool // re-resolved on AutoScaler transitions
	field    func(c *ShaderConstants) *float64
	copy     func(dst, src *ShaderConstants)
}

// slots is the full constant table. The kernel's per-tick write loop and its
// setters are derived from it; there are no per-field branches elsewhere.
var slots = []slot{
	{key: "surfaceMode", kind: slotDiscrete, copy: func(d, s *ShaderConstants) { d.SurfaceMode = s.SurfaceMode }},
	{key: "noiseScale", field: func(c *ShaderConstants) *float64 { return &c.NoiseScale }},

	{key: "frequency", field: func(c *ShaderConstants) *float64 { return &c.Frequency }},
	{key: "amplitude", field: func(c *ShaderConstants) *float64 { return &c.Amplitude }},
	{key: "damping", field: func(c *ShaderConstants) *float64 { return &c.Damping }},
	{key: "noiseSpeed", field: func(c *ShaderConstants) *float64 { return &c.NoiseSpeed }},

	{key: "reactivityMode", kind: slotDiscrete, copy: func(d, s *ShaderConstants) { d.ReactivityMode = s.ReactivityMode }},
	{key: "reactivityStrength", field: func(c *ShaderConstants) *float64 { return &c.ReactivityStrength }},
	{key: "reactivityRadius", field: func(c *ShaderConstants) *float64 { return &c.ReactivityRadius }},

	{key: "segments", kind: slotDiscrete, fidelity: true, copy: func(d, s *ShaderConstants) { d.Segments = s.Segments }},
	{key: "lineWidth", fidelity: true, field: func(c *ShaderConstants) *float64 { return &c.LineWidth }},

	// Color triplets animate as independent scalar channels.
	{key: "primary.r", field: func(c *ShaderConstants) *float64 { return &c.Primary.R }},
	{key: "primary.g", field: func(c *ShaderConstants) *float64 { return &c.Primary.G }},
	{key: "primary.b", field: func(c *ShaderConstants) *float64 { return &c.Primary.B }},
	{key: "accent.r", field: func(c *ShaderConstants) *float64 { return &c.Accent.R }},
	{key: "accent.g", field: func(c *ShaderConstants) *float64 { return &c.Accent.G }},
	{key: "accent.b", field: func(c *ShaderConstants) *float64 { return &c.Accent.B }},
	{key: "background.r", field: func(c *ShaderConstants) *float64 { return &c.Background.R }},
	{key: "background.g", field: func(c *ShaderConstants) *float64 { return &c.Background.G }},
	{key: "background.b", field: func(c *ShaderConstants) *float64 { return &c.Background.B }},

	{key: "wireframe", kind: slotDiscrete, copy: func(d, s *ShaderConstants) { d.Wireframe = s.Wireframe }},
	{key: "thermalGuard", kind: slotDiscrete, copy: func(d, s *ShaderConstants) { d.ThermalGuard = s.ThermalGuard }},

	{key: "intensity", field: func(c *ShaderConstants) *float64 { return &c.Intensity }},
	{key: "speed", field: func(c *ShaderConstants) *float64 { return &c.Speed }},
	{key: "contourLines", field: func(c *ShaderConstants) *float64 { return &c.ContourLines }},
	{key: "angle", field: func(c *ShaderConstants) *float64 { return &c.Angle }},
	{key: "grain", field: func(c *ShaderConstants) *float64 { return &c.Grain }},
	{key: "glow", field: func(c *ShaderConstants) *float64 { return &c.Glow }},
	{key: "chromatic", field: func(c *ShaderConstants) *float64 { return &c.Chromatic }},
	{key: "vignette", field: func(c *ShaderConstants) *float64 { return &c.Vignette }},
	{key: "blur", field: func(c *ShaderConstants) *float64 { return &c.Blur }},
}

// continuousSlots and discreteSlots partition slots by kind, in table order.
var continuousSlots, discreteSlots = partitionSlots(slots)

func partitionSlots(all []slot) (cont, disc []slot) {
	for _, s := range all {
		if s.kind == slotContinuous {
			cont = append(cont, s)
		} else {
			disc = append(disc, s)
		}
	}
	return cont, disc
}

// SpringKeys lists the spring keys a kernel animates, in table order.
func SpringKeys() []string {
	out := make([]string, len(continuousSlots))
	for i, s := range continuousSlots {
		out[i] = s.key
	}
	return out
}
