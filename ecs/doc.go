// Package ecs provides ECS adapters for grasp.
//
// [NewDonburiSink] bridges grasp capture lifecycle events (capture, grab
// start, grab end, capture lost, release) into a [Donburi] world as typed
// events. Subscribe to [CaptureEventType] in your ECS systems to receive
// them.
//
// [SyncTransforms] mirrors handler transforms and grab state into entities
// carrying [GrabbableComponent] and [TransformComponent], so rendering
// systems can read them without touching the grasp.System.
//
// Usage:
//
//	sys.SetEventSink(ecs.NewDonburiSink(world))
//	sys.Update(frame)
//	ecs.SyncTransforms(world, sys)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
