// Package grasp arbitrates which input source controls an interactive object
// and moves the object while it is grabbed.
//
// A [Handler] is a capturable object with a proximity [Field]. An
// [InputMethod] is one frame's reading of a pointing source: a tracked hand,
// an XR controller or a mouse ray. Each frame the host collects readings
// into a [Frame] and hands it to [System.Update], which
//
//   - evaluates every (handler, method) pair with the handler's
//     [CaptureCondition] (default [DefaultCaptureCondition]),
//   - resolves positive decisions nearest first, so each handler has at
//     most one owner and each method owns at most one handler,
//   - runs the grab state machine (Idle, Grabbed) for every owned handler,
//   - rewrites Handler.Local for grabbed handlers so they follow their
//     owner at the offset recorded when the grab began.
//
// # Quick start
//
//	sys := grasp.NewSystem(grasp.DefaultConfig())
//	cube := grasp.NewHandler(10, "cube", grasp.SphereField{Radius: 0.1})
//	sys.AddHandler(cube)
//
//	// every frame
//	f := grasp.Collect(mouseReader, controllerReader)
//	sys.Update(f)
//	render(cube.Local)
//
// # Gestures
//
// Hands grab by pinching (thumb and index tips within [GrabSeparation] of
// touching), controllers by squeezing, mice by holding the left button.
// Pointer methods are measured along their ray, up to [Config.RayLength].
// Mouse scroll pushes and pulls a grabbed handler along the pointer ray.
// A reading whose gesture is nil never grabs but may still capture through
// the pointer fallback.
//
// # Hierarchy
//
// Handlers may be parented to other handlers or to external anchors whose
// world transforms arrive in [Frame.Anchors]. A grabbed handler's local
// transform is expressed relative to its parent, so parents can move while
// a child is held.
//
// # Events
//
// Capture, grab start, grab end, capture lost and release are delivered to
// callbacks registered with [System.On] and to an optional [EventSink]; the
// ecs subpackage bridges them into a [Donburi] world.
//
// # Readers
//
// [MouseReader], [ControllerReader] and [SimulatedHand] turn raw input into
// readings. [EbitenSource] supplies them from [Ebitengine]. [ScriptRunner]
// replays JSON input scripts for tests.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package grasp
