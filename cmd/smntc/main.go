// Command smntc inspects the semantic token catalogue: it lists tokens and
// presets, resolves configuration files into shader constants, and samples
// the default spring so tuning can be checked without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/smntc"
)

const usage = `usage: smntc [-v] <command> [args]

commands:
  tokens                 list every registered token per category
  presets                list built-in presets and their allow-lists
  resolve [-preset name] <file|->
                         resolve a JSON config into shader constants
  spring <from> <to>     sample the default spring at 60 Hz until settled
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("smntc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log debug output to stderr")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *verbose {
		smntc.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer smntc.SetLogger(nil)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	reg := smntc.NewRegistry()
	presets := smntc.NewDefaultPresetStore(reg)

	var err error
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "tokens":
		printTokens(stdout, reg)
	case "presets":
		printPresets(stdout, presets)
	case "resolve":
		err = resolveCmd(rest, stdin, stdout, stderr, reg, presets)
	case "spring":
		err = springCmd(rest, stdout)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

var errUsage = errors.New("bad arguments")

func printTokens(w io.Writer, reg *smntc.Registry) {
	for _, c := range smntc.Categories {
		fmt.Fprintln(w, headerStyle.Render(c.String()))
		var lines []string
		for _, name := range reg.Names(c) {
			lines = append(lines, nameStyle.Render(name)+" "+valueStyle.Render(describeToken(reg, c, name)))
		}
		fmt.Fprintln(w, sectionStyle.Render(strings.Join(lines, "\n")))
	}
}

func describeToken(reg *smntc.Registry, c smntc.Category, name string) string {
	switch c {
	case smntc.CategorySurface:
		d, _ := reg.Surface(name)
		return fmt.Sprintf("mode=%d noiseScale=%g", d.Mode, d.NoiseScale)
	case smntc.CategoryVibe:
		d, _ := reg.Vibe(name)
		return fmt.Sprintf("freq=%g amp=%g damping=%g noiseSpeed=%g", d.Frequency, d.Amplitude, d.Damping, d.NoiseSpeed)
	case smntc.CategoryReactivity:
		d, _ := reg.Reactivity(name)
		return fmt.Sprintf("mode=%d strength=%g radius=%g", d.Mode, d.Strength, d.Radius)
	case smntc.CategoryFidelity:
		d, _ := reg.Fidelity(name)
		return fmt.Sprintf("segments=%d lineWidth=%g", d.Segments, d.LineWidth)
	case smntc.CategoryPalette:
		d, _ := reg.Palette(name)
		return fmt.Sprintf("primary=%s accent=%s background=%s", hex(d.Primary), hex(d.Accent), hex(d.Background))
	}
	return ""
}

func hex(c smntc.RGB) string {
	to8 := func(v float64) int { return int(v*255 + 0.5) }
	return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B))
}

func printPresets(w io.Writer, store *smntc.PresetStore) {
	for _, name := range store.Names() {
		p, _ := store.Get(name)
		fmt.Fprintln(w, headerStyle.Render(name)+" "+dimStyle.Render(p.Description))
		var lines []string
		for _, c := range smntc.Categories {
			v := p.Defaults.Token(c)
			allowed := p.Allowed(c)
			if v == "" && len(allowed) == 0 {
				continue
			}
			line := nameStyle.Render(c.String())
			if v != "" {
				line += " " + valueStyle.Render(v)
			}
			if len(allowed) > 0 {
				line += " " + dimStyle.Render("only "+strings.Join(allowed, ", "))
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			fmt.Fprintln(w, sectionStyle.Render(strings.Join(lines, "\n")))
		}
	}
}

func resolveCmd(args []string, stdin io.Reader, stdout, stderr io.Writer, reg *smntc.Registry, presets *smntc.PresetStore) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	preset := fs.String("preset", "", "apply the config as a partial over this preset")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: resolve takes one file (or - for stdin)", errUsage)
	}

	var data []byte
	var err error
	if path := fs.Arg(0); path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	cfg, err := smntc.LoadConfig(data)
	if err != nil {
		return err
	}
	if *preset != "" {
		if cfg, err = presets.Apply(*preset, cfg); err != nil {
			return err
		}
	}
	c, err := smntc.NewDictionary(reg).Resolve(cfg)
	if err != nil {
		return err
	}
	printConstants(stdout, &c)
	return nil
}

func printConstants(w io.Writer, c *smntc.ShaderConstants) {
	rows := [][2]string{
		{"surfaceMode", strconv.Itoa(int(c.SurfaceMode))},
		{"noiseScale", ff(c.NoiseScale)},
		{"frequency", ff(c.Frequency)},
		{"amplitude", ff(c.Amplitude)},
		{"damping", ff(c.Damping)},
		{"noiseSpeed", ff(c.NoiseSpeed)},
		{"reactivityMode", strconv.Itoa(int(c.ReactivityMode))},
		{"reactivityStrength", ff(c.ReactivityStrength)},
		{"reactivityRadius", ff(c.ReactivityRadius)},
		{"segments", strconv.Itoa(c.Segments)},
		{"lineWidth", ff(c.LineWidth)},
		{"primary", hex(c.Primary)},
		{"accent", hex(c.Accent)},
		{"background", hex(c.Background)},
		{"wireframe", strconv.FormatBool(c.Wireframe)},
		{"thermalGuard", strconv.FormatBool(c.ThermalGuard)},
		{"intensity", ff(c.Intensity)},
		{"speed", ff(c.Speed)},
		{"contourLines", ff(c.ContourLines)},
		{"angle", ff(c.Angle)},
		{"grain", ff(c.Grain)},
		{"glow", ff(c.Glow)},
		{"chromatic", ff(c.Chromatic)},
		{"vignette", ff(c.Vignette)},
		{"blur", ff(c.Blur)},
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	key := nameStyle.Width(width + 1)
	var lines []string
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, key.Render(r[0]), valueStyle.Render(r[1])))
	}
	fmt.Fprintln(w, sectionStyle.Render(strings.Join(lines, "\n")))
}

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func springCmd(args []string, w io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: spring takes <from> <to>", errUsage)
	}
	from, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	to, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	const dt = 1.0 / 60
	s := smntc.NewSpring(from, smntc.DefaultSpringConfig())
	s.SetTarget(to)
	frames := 0
	for s.Step(dt) && frames < 600 {
		frames++
		if frames%6 == 0 {
			fmt.Fprintf(w, "%s %s\n", dimStyle.Render(fmt.Sprintf("%5.2fs", float64(frames)*dt)), valueStyle.Render(ff(s.Value())))
		}
	}
	frames++
	if !s.Settled() {
		return fmt.Errorf("spring still moving after %d frames", frames)
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("settled at %s after %d frames (%.2fs)", ff(s.Value()), frames, float64(frames)*dt)))
	return nil
}
