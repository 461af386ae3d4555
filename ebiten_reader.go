package grasp

import "github.com/hajimehoshi/ebiten/v2"

// EbitenSource reads mouse and standard-layout gamepads through ebiten.
// Call it from inside ebiten's Update.
type EbitenSource struct {
	// SqueezeButton is the gamepad button read as the grip. Defaults to
	// the left trigger.
	SqueezeButton ebiten.StandardGamepadButton

	ids []ebiten.GamepadID
}

// NewEbitenSource returns a source that reads the left trigger as the grip.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{SqueezeButton: ebiten.StandardGamepadButtonFrontBottomLeft}
}

// CursorPosition returns the cursor position in screen pixels.
func (s *EbitenSource) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// LeftPressed reports whether the left mouse button is held.
func (s *EbitenSource) LeftPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Wheel returns this frame's wheel delta.
func (s *EbitenSource) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// Squeeze returns the grip button value of the pad-th connected gamepad.
func (s *EbitenSource) Squeeze(pad int) (float64, bool) {
	id, ok := s.gamepad(pad)
	if !ok {
		return 0, false
	}
	return ebiten.StandardGamepadButtonValue(id, s.SqueezeButton), true
}

// Stick returns the left stick of the pad-th connected gamepad.
func (s *EbitenSource) Stick(pad int) (float64, float64) {
	id, ok := s.gamepad(pad)
	if !ok {
		return 0, 0
	}
	return ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
}

func (s *EbitenSource) gamepad(pad int) (ebiten.GamepadID, bool) {
	s.ids = ebiten.AppendGamepadIDs(s.ids[:0])
	if pad < 0 || pad >= len(s.ids) {
		return 0, false
	}
	id := s.ids[pad]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return 0, false
	}
	return id, true
}
