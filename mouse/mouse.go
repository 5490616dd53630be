// Package mouse turns mouse-action keymap entries into a relative HID
// mouse report.
package mouse

import "github.com/francisrstokes/split2040-fw/keymap"

const (
	movementDelta = 4
	wheelDelta    = 4
)

// Button bits of the mouse report.
const (
	ButtonLeft   = 0x01
	ButtonRight  = 0x02
	ButtonMiddle = 0x04
)

// Report is the 4-byte relative mouse report.
type Report struct {
	Buttons uint8
	X       int8
	Y       int8
	Wheel   int8
}

// Bytes serializes the report for the interrupt endpoint.
func (r Report) Bytes() [4]uint8 {
	return [4]uint8{r.Buttons, uint8(r.X), uint8(r.Y), uint8(r.Wheel)}
}

type states struct {
	leftClick   bool
	middleClick bool
	rightClick  bool

	moveLeft  bool
	moveRight bool
	moveUp    bool
	moveDown  bool
}

// Behavior latches mouse actions between press and release and rebuilds
// the report each tick.
type Behavior struct {
	states states
}

func New() *Behavior { return &Behavior{} }

func (b *Behavior) set(action uint8, on bool) bool {
	switch action {
	case keymap.MouseLeftClick:
		b.states.leftClick = on
	case keymap.MouseMiddleClick:
		b.states.middleClick = on
	case keymap.MouseRightClick:
		b.states.rightClick = on
	case keymap.MouseMoveLeft:
		b.states.moveLeft = on
	case keymap.MouseMoveRight:
		b.states.moveRight = on
	case keymap.MouseMoveUp:
		b.states.moveUp = on
	case keymap.MouseMoveDown:
		b.states.moveDown = on
	default:
		return false
	}
	return true
}

func (b *Behavior) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeMouse {
		return false
	}
	b.set(e.Keycode(), true)
	return true
}

func (b *Behavior) OnKeyRelease(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeMouse {
		return false
	}
	b.set(e.Keycode(), false)
	return true
}

// Update writes the latched state into the report for this tick.
func (b *Behavior) Update(r *Report) {
	if b.states.leftClick {
		r.Buttons |= ButtonLeft
	}
	if b.states.middleClick {
		r.Buttons |= ButtonMiddle
	}
	if b.states.rightClick {
		r.Buttons |= ButtonRight
	}
	if b.states.moveLeft {
		r.X = -movementDelta
	}
	if b.states.moveRight {
		r.X = movementDelta
	}
	if b.states.moveUp {
		r.Y = -movementDelta
	}
	if b.states.moveDown {
		r.Y = movementDelta
	}
}
