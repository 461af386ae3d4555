package ecs

import (
	"github.com/phanxgames/grasp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CaptureEventType is the Donburi event type for grasp lifecycle events.
var CaptureEventType = events.NewEventType[grasp.Event]()

// Grabbable links an entity to the grasp handler that moves it.
type Grabbable struct {
	Handler grasp.EntityID
}

// GrabbableComponent tags entities driven by a grasp handler.
var GrabbableComponent = donburi.NewComponentType[Grabbable]()

// TransformData is the mirrored handler state.
type TransformData struct {
	Local      grasp.Transform
	Grabbed    bool
	CapturedBy grasp.EntityID
}

// TransformComponent receives handler state from SyncTransforms.
var TransformComponent = donburi.NewComponentType[TransformData]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to CaptureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) grasp.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event grasp.Event) {
	CaptureEventType.Publish(s.world, event)
}

// SpawnGrabbable creates an entity linked to handler id with its transform
// initialized from the system.
func SpawnGrabbable(world donburi.World, sys *grasp.System, id grasp.EntityID) donburi.Entity {
	e := world.Create(GrabbableComponent, TransformComponent)
	entry := world.Entry(e)
	GrabbableComponent.SetValue(entry, Grabbable{Handler: id})
	if h, ok := sys.Handler(id); ok {
		TransformComponent.SetValue(entry, snapshot(h))
	}
	return e
}

// SyncTransforms copies every linked handler's local transform, grab state
// and owner into its entity. Entities whose handler is gone are left
// untouched. Returns the number of entities updated.
func SyncTransforms(world donburi.World, sys *grasp.System) int {
	n := 0
	q := donburi.NewQuery(filter.Contains(GrabbableComponent, TransformComponent))
	q.Each(world, func(entry *donburi.Entry) {
		h, ok := sys.Handler(GrabbableComponent.Get(entry).Handler)
		if !ok {
			return
		}
		*TransformComponent.Get(entry) = snapshot(h)
		n++
	})
	return n
}

func snapshot(h *grasp.Handler) TransformData {
	return TransformData{
		Local:      h.Local,
		Grabbed:    h.State() == grasp.StateGrabbed,
		CapturedBy: h.CapturedBy(),
	}
}
