package smntc

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudWidth     = 160
	hudHeight    = 44
	hudBarHeight = 4
	hudRefresh   = 0.5 // seconds between text redraws
)

// HUD is a small overlay showing FPS, the active fidelity tier and a
// frame-budget bar. The bar is smoothed by a spring so it reads calmly
// under jittery frame times.
type HUD struct {
	kernel *Kernel
	img    *ebiten.Image
	op     ebiten.DrawImageOptions

	spring   harmonica.Spring
	bar, vel float64
	since    float64
	text     string
}

// NewHUD creates an overlay reporting on k.
func NewHUD(k *Kernel) *HUD {
	return &HUD{
		kernel: k,
		spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
		since:  hudRefresh,
	}
}

// Update advances the bar spring and refreshes the text every half second.
func (h *HUD) Update(dt float64) {
	h.bar, h.vel = h.spring.Update(h.bar, h.vel, h.budgetRatio())
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0
	h.text = h.describe(ebiten.ActualFPS())
}

// budgetRatio is the rolling average frame time over the target, or 0 while
// the scaler has no full window.
func (h *HUD) budgetRatio() float64 {
	sc := h.kernel.Scaler()
	avg := sc.Average()
	if avg == 0 {
		return 0
	}
	return avg.Seconds() / sc.cfg.TargetFrame.Seconds()
}

func (h *HUD) describe(fps float64) string {
	guard := "off"
	if h.kernel.Scaler().Enabled() {
		guard = "on"
	}
	return fmt.Sprintf("FPS: %.1f\nTier: %s (guard %s)", fps, h.kernel.Fidelity(), guard)
}

// Text returns the last rendered HUD text.
func (h *HUD) Text() string { return h.text }

// Bar returns the smoothed frame-budget ratio (1 = on budget).
func (h *HUD) Bar() float64 { return h.bar }

// Draw renders the overlay at the top-left corner of dst.
func (h *HUD) Draw(dst *ebiten.Image) {
	if h.img == nil {
		h.img = ebiten.NewImage(hudWidth, hudHeight)
	}
	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)

	// Bar: green under budget, red over.
	w := clamp01(h.bar/2) * hudWidth
	if w >= 1 {
		bar := h.img.SubImage(image.Rect(0, hudHeight-hudBarHeight, int(w), hudHeight)).(*ebiten.Image)
		c := color.RGBA{40, 200, 90, 255}
		if h.bar > 1 {
			c = color.RGBA{220, 60, 40, 255}
		}
		bar.Fill(c)
	}

	h.op.GeoM.Reset()
	dst.DrawImage(h.img, &h.op)
}
