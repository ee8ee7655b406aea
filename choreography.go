package smntc

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// choreoStep is one action in a choreography script.
type choreoStep struct {
	Action   string  `json:"action"`
	Field    string  `json:"field,omitempty"`
	Token    string  `json:"token,omitempty"`
	Value    float64 `json:"value,omitempty"`
	To       float64 `json:"to,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Ease     string  `json:"ease,omitempty"`
	Seconds  float64 `json:"seconds,omitempty"`
	Preset   string  `json:"preset,omitempty"`
}

type choreoScript struct {
	Steps []choreoStep `json:"steps"`
}

// Choreography plays a scripted sequence of semantic changes against a
// kernel, one step per frame. Supported actions:
//
//	{"action": "set", "field": "vibe", "token": "chaotic"}
//	{"action": "set", "field": "intensity", "value": 1.5}
//	{"action": "tween", "field": "angle", "to": 90, "duration": 2, "ease": "inOutSine"}
//	{"action": "wait", "seconds": 1.5}
//	{"action": "preset", "preset": "hero"}
//	{"action": "trigger"}
//
// Tweens drive a knob's setter every frame, so the springs smooth the eased
// curve rather than replacing it.
type Choreography struct {
	steps  []choreoStep
	cursor int
	wait   float64
	tween  *gween.Tween
	setter knobSetter
	done   bool
}

// knobSetter applies a continuous value through the kernel's setter path.
type knobSetter func(k *Kernel, v float64) error

// knobSetters maps script field names to kernel setters and the resolved
// value a tween starts from.
var knobSetters = map[string]struct {
	set knobSetter
	get func(c *ShaderConstants) float64
}{
	"intensity":    {(*Kernel).SetIntensity, func(c *ShaderConstants) float64 { return c.Intensity }},
	"speed":        {(*Kernel).SetSpeed, func(c *ShaderConstants) float64 { return c.Speed }},
	"angle":        {(*Kernel).SetAngle, func(c *ShaderConstants) float64 { return c.Angle }},
	"grain":        {(*Kernel).SetGrain, func(c *ShaderConstants) float64 { return c.Grain }},
	"glow":         {(*Kernel).SetGlow, func(c *ShaderConstants) float64 { return c.Glow }},
	"chromatic":    {(*Kernel).SetChromatic, func(c *ShaderConstants) float64 { return c.Chromatic }},
	"vignette":     {(*Kernel).SetVignette, func(c *ShaderConstants) float64 { return c.Vignette }},
	"blur":         {(*Kernel).SetBlur, func(c *ShaderConstants) float64 { return c.Blur }},
	"contourLines": {setContourLines, func(c *ShaderConstants) float64 { return c.ContourLines }},
	"wireframe":    {setWireframe, boolGetter(func(c *ShaderConstants) bool { return c.Wireframe })},
	"thermalGuard": {setThermalGuard, boolGetter(func(c *ShaderConstants) bool { return c.ThermalGuard })},
}

func setContourLines(k *Kernel, v float64) error { return k.SetContourLines(int(v + 0.5)) }
func setWireframe(k *Kernel, v float64) error    { return k.SetWireframe(v != 0) }
func setThermalGuard(k *Kernel, v float64) error { return k.SetThermalGuard(v != 0) }

func boolGetter(fn func(c *ShaderConstants) bool) func(c *ShaderConstants) float64 {
	return func(c *ShaderConstants) float64 {
		if fn(c) {
			return 1
		}
		return 0
	}
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// LoadChoreography parses and validates a JSON choreography script.
func LoadChoreography(jsonData []byte) (*Choreography, error) {
	var script choreoScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("smntc: parse choreography: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("smntc: parse choreography: no steps")
	}
	for i, st := range script.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("smntc: parse choreography: step %d: %w", i, err)
		}
	}
	return &Choreography{steps: script.Steps}, nil
}

func validateStep(st choreoStep) error {
	switch st.Action {
	case "set":
		if _, ok := ParseCategory(st.Field); ok {
			if st.Token == "" {
				return fmt.Errorf("set %s needs a token", st.Field)
			}
			return nil
		}
		if _, ok := knobSetters[st.Field]; !ok {
			return fmt.Errorf("unknown field %q", st.Field)
		}
	case "tween":
		if _, ok := knobSetters[st.Field]; !ok {
			return fmt.Errorf("cannot tween field %q", st.Field)
		}
		if st.Duration <= 0 {
			return fmt.Errorf("tween duration must be positive")
		}
		if _, ok := easings[st.Ease]; !ok {
			return fmt.Errorf("unknown ease %q", st.Ease)
		}
	case "wait":
		if st.Seconds <= 0 {
			return fmt.Errorf("wait needs positive seconds")
		}
	case "preset":
		if st.Preset == "" {
			return fmt.Errorf("preset step needs a name")
		}
	case "trigger":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run and no tween or wait is pending.
func (c *Choreography) Done() bool { return c.done }

// Reset rewinds the script to its first step.
func (c *Choreography) Reset() {
	c.cursor = 0
	c.wait = 0
	c.tween = nil
	c.setter = nil
	c.done = false
}

// Update advances the script by dt seconds against k. A failing step stops
// the choreography and returns the kernel's error.
func (c *Choreography) Update(k *Kernel, dt float64) error {
	if c.done {
		return nil
	}
	if c.tween != nil {
		v, finished := c.tween.Update(float32(dt))
		if finished {
			c.tween = nil
		}
		if err := c.setter(k, float64(v)); err != nil {
			c.done = true
			return err
		}
		c.finishIfDone()
		return nil
	}
	if c.wait > 0 {
		c.wait -= dt
		c.finishIfDone()
		return nil
	}
	if c.cursor >= len(c.steps) {
		c.done = true
		return nil
	}

	st := c.steps[c.cursor]
	c.cursor++
	if err := c.run(k, st); err != nil {
		c.done = true
		return err
	}
	c.finishIfDone()
	return nil
}

func (c *Choreography) run(k *Kernel, st choreoStep) error {
	switch st.Action {
	case "set":
		if cat, ok := ParseCategory(st.Field); ok {
			return k.Configure(tokenConfig(cat, st.Token))
		}
		return knobSetters[st.Field].set(k, st.Value)
	case "tween":
		knob := knobSetters[st.Field]
		targets := k.Targets()
		from := knob.get(&targets)
		c.tween = gween.New(float32(from), float32(st.To), float32(st.Duration), easings[st.Ease])
		c.setter = knob.set
	case "wait":
		c.wait = st.Seconds
	case "preset":
		return k.ApplyPreset(st.Preset, Config{})
	case "trigger":
		if t, ok := k.Signal().(interface{ Trigger() }); ok {
			t.Trigger()
		}
	}
	return nil
}

func (c *Choreography) finishIfDone() {
	if c.cursor >= len(c.steps) && c.tween == nil && c.wait <= 0 {
		c.done = true
	}
}

func tokenConfig(cat Category, name string) Config {
	var cfg Config
	cfg.SetToken(cat, name)
	return cfg
}
