// Package layers implements momentary layer switching.
package layers

import (
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/matrix"
)

// State tracks the base and current layer. Outside a momentary hold the
// two are equal; precedence in resolution is solely the current layer.
type State struct {
	base    uint8
	current uint8
	max     uint8

	matrix  *matrix.State
	postSet func(layer uint8)
}

// New creates the layer state. postSet is invoked after every layer
// change (LED recolor and the like); it may be nil.
func New(base, max uint8, m *matrix.State, postSet func(uint8)) *State {
	s := &State{base: base, current: base, max: max, matrix: m, postSet: postSet}
	return s
}

func (s *State) Current() uint8 { return s.current }
func (s *State) Base() uint8    { return s.base }

// Set switches the current layer. Out-of-range layers are ignored.
func (s *State) Set(layer uint8) {
	if layer >= s.max {
		return
	}
	s.current = layer
	if s.postSet != nil {
		s.postSet(layer)
	}
}

// OnKeyPress claims momentary layer-switch entries. The switch is only
// active while the key is held, so the key is marked handled and nothing
// is emitted for it.
func (s *State) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeLayer || e.Arg8() != keymap.LayerMomentary {
		return false
	}
	s.Set(e.Keycode())
	s.matrix.MarkHandled(row, col)
	return true
}

// OnKeyRelease drops back to the base layer. Keys still held from the
// momentary layer are suppressed until released so they do not turn into
// base-layer keys mid-press.
func (s *State) OnKeyRelease(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeLayer || e.Arg8() != keymap.LayerMomentary {
		return false
	}
	s.Set(s.base)
	s.matrix.SuppressHeldUntilRelease()
	return true
}

// OnVirtualKey handles layer entries reaching SendKey outside the event
// chain (combo outputs, macros).
func (s *State) OnVirtualKey(e keymap.Entry) bool {
	if e.Type() != keymap.TypeLayer || e.Arg8() != keymap.LayerMomentary {
		return false
	}
	s.Set(e.Keycode())
	return true
}
