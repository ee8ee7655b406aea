package smntc

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ShowHUD draws the FPS / fidelity overlay.
	ShowHUD bool
	// Choreography, if set, is played against the kernel from the first tick.
	Choreography *Choreography
	// OnUpdate is called once per tick after the kernel has updated.
	// Returning ebiten.Termination ends the loop cleanly.
	OnUpdate func() error
}

// Run attaches k to a full-window Surface and runs the Ebitengine loop until
// the window closes. The kernel is disposed on return.
func Run(k *Kernel, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 540
	}
	g := newRunner(k, cfg)
	if err := k.Attach(g.surface); err != nil {
		return err
	}
	defer g.dispose()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// runner adapts a Kernel and Surface to ebiten.Game.
type runner struct {
	kernel  *Kernel
	surface *Surface
	hud     *HUD
	choreo  *Choreography
	hook    func() error
}

func newRunner(k *Kernel, cfg RunConfig) *runner {
	g := &runner{
		kernel:  k,
		surface: NewSurface(cfg.Width, cfg.Height),
		choreo:  cfg.Choreography,
		hook:    cfg.OnUpdate,
	}
	if cfg.ShowHUD {
		g.hud = NewHUD(k)
	}
	return g
}

func (g *runner) Update() error {
	g.surface.CapturePointer(g.kernel.Signal())

	tick := 1.0 / float64(ebiten.TPS())
	if g.choreo != nil {
		if err := g.choreo.Update(g.kernel, tick); err != nil {
			return err
		}
	}

	// The kernel measures wall time itself so the AutoScaler sees real frame
	// durations; the surface follows the kernel's elapsed time.
	before := g.kernel.Elapsed()
	g.kernel.Update(0)
	dt := g.kernel.Elapsed() - before
	g.surface.Advance(dt)
	if g.hud != nil {
		g.hud.Update(dt)
	}

	if g.hook != nil {
		return g.hook()
	}
	return nil
}

func (g *runner) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
}

func (g *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.surface.Width || outsideHeight != g.surface.Height {
		g.surface.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *runner) dispose() {
	g.kernel.Dispose()
	g.surface.Dispose()
}
