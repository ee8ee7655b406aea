// Package ecs bridges smntc kernels into a [Donburi] world.
//
// [NewDonburiNotifier] republishes a kernel's fidelity transitions as typed
// events, and [TriggerShockwave] lets ECS systems fire discrete reactivity
// triggers. Subscribe to [FidelityChangeType] in your systems:
//
//	n := ecs.NewDonburiNotifier(world, kernel)
//	ecs.FidelityChangeType.Subscribe(world, func(w donburi.World, e ecs.FidelityChange) {
//		// drop particle counts, swap LOD meshes, ...
//	})
//	defer n.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
