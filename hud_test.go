package smntc

import (
	"strings"
	"testing"
)

func TestHUD_Describe(t *testing.T) {
	k, _, _ := newTestKernel(t, Config{})
	h := NewHUD(k)
	if got := h.describe(59.94); got != "FPS: 59.9\nTier: high (guard on)" {
		t.Errorf("describe = %q", got)
	}
	if err := k.SetThermalGuard(false); err != nil {
		t.Fatal(err)
	}
	if err := k.SetFidelity("low"); err != nil {
		t.Fatal(err)
	}
	if got := h.describe(30); !strings.Contains(got, "Tier: low (guard off)") {
		t.Errorf("describe = %q", got)
	}
}

func TestHUD_BudgetBar(t *testing.T) {
	k, _, _ := newTestKernel(t, Config{})
	h := NewHUD(k)
	if h.budgetRatio() != 0 {
		t.Errorf("budgetRatio() = %v before the window fills", h.budgetRatio())
	}

	// 30 frames at twice the budget fill the default window without
	// reaching the downgrade streak.
	for range 30 {
		k.Update(2.0 / 60)
	}
	if r := h.budgetRatio(); !approxEqual(r, 2, 1e-3) {
		t.Errorf("budgetRatio() = %v, want 2", r)
	}

	for range 120 {
		h.Update(frame)
	}
	if !approxEqual(h.Bar(), 2, 0.05) {
		t.Errorf("Bar() = %v, want to settle near 2", h.Bar())
	}
	if h.Text() == "" {
		t.Error("Text() empty after Update")
	}
}
