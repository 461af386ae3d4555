package grasp

// Frame is one frame's consistent snapshot of everything the System reads:
// the active input methods and the world transforms of external parents.
type Frame struct {
	Methods []InputMethod
	// Anchors maps external parent IDs (scene nodes that are not handlers)
	// to their world transforms.
	Anchors map[EntityID]Transform
}

// Reader is a capability reader: an adapter that turns one input source
// into input method readings.
type Reader interface {
	// Read appends this frame's readings to f.Methods.
	Read(f *Frame)
}

// Collect builds a frame from the given readers, in order.
func Collect(readers ...Reader) Frame {
	var f Frame
	for _, r := range readers {
		r.Read(&f)
	}
	return f
}

// Add appends a method reading.
func (f *Frame) Add(m InputMethod) {
	f.Methods = append(f.Methods, m)
}

// SetAnchor records an external parent's world transform.
func (f *Frame) SetAnchor(id EntityID, world Transform) {
	if f.Anchors == nil {
		f.Anchors = make(map[EntityID]Transform)
	}
	f.Anchors[id] = world
}

// Method returns the reading for id, if present.
func (f *Frame) Method(id EntityID) (InputMethod, bool) {
	for i := range f.Methods {
		if f.Methods[i].ID == id {
			return f.Methods[i], true
		}
	}
	return InputMethod{}, false
}
