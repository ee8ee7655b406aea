package ecs

import (
	"github.com/phanxgames/smntc"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FidelityChange is published whenever the kernel's AutoScaler moves to a
// new tier.
type FidelityChange struct {
	Tier      string
	Segments  int
	LineWidth float64
}

// FidelityChangeType is the Donburi event type for fidelity transitions.
var FidelityChangeType = events.NewEventType[FidelityChange]()

// Notifier forwards kernel callbacks into a Donburi world.
type Notifier struct {
	world  donburi.World
	kernel *smntc.Kernel
}

// NewDonburiNotifier installs itself as k's fidelity-change callback. Events
// are queued and delivered by ProcessEvents, so systems see them on their own
// schedule rather than inside the kernel tick.
func NewDonburiNotifier(world donburi.World, k *smntc.Kernel) *Notifier {
	n := &Notifier{world: world, kernel: k}
	k.OnFidelityChange(n.publish)
	return n
}

func (n *Notifier) publish(tier string) {
	e := FidelityChange{Tier: tier}
	if def, ok := n.kernel.Registry().Fidelity(tier); ok {
		e.Segments = def.Segments
		e.LineWidth = def.LineWidth
	}
	FidelityChangeType.Publish(n.world, e)
}

// Close detaches the notifier from the kernel.
func (n *Notifier) Close() {
	n.kernel.OnFidelityChange(nil)
}

// TriggerShockwave fires a discrete trigger on k's signal. It reports false
// when no signal is subscribed or the signal does not accept triggers.
func TriggerShockwave(k *smntc.Kernel) bool {
	t, ok := k.Signal().(interface{ Trigger() })
	if !ok {
		return false
	}
	t.Trigger()
	return true
}
