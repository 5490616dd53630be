// Package macro plays recorded strings as HID keystrokes, one character
// per tick so the host sees every keydown.
package macro

import (
	"github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
)

// DefaultSlots is the size of the macro table.
const DefaultSlots = 8

// Def is a macro definition. Only send-string macros exist; characters
// outside the ASCII map are skipped.
type Def struct {
	Text string
}

type slot struct {
	Def

	used   bool
	active bool
	index  int
}

// Behavior owns the macro table and playback state.
type Behavior struct {
	slots []slot

	send func(keymap.Entry)
	// clear empties the report so an in-flight macro owns it for the tick.
	clear func()
}

func New(defs []Def, slots int, send func(keymap.Entry), clear func()) *Behavior {
	if slots <= 0 {
		slots = DefaultSlots
	}
	b := &Behavior{slots: make([]slot, slots), send: send, clear: clear}
	for i := 0; i < len(defs) && i < slots; i++ {
		b.slots[i] = slot{Def: defs[i], used: true}
	}
	return b
}

// Start begins playback of the indexed macro from its first character.
func (b *Behavior) Start(index uint8) {
	i := int(index)
	if i >= len(b.slots) || !b.slots[i].used || len(b.slots[i].Text) == 0 {
		return
	}
	b.slots[i].active = true
	b.slots[i].index = 0
}

// AnyActive reports whether any macro is mid-playback.
func (b *Behavior) AnyActive() bool {
	for i := range b.slots {
		if b.slots[i].active {
			return true
		}
	}
	return false
}

// OnKeyPress claims macro entries and starts the indexed macro.
func (b *Behavior) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeMacro {
		return false
	}
	b.Start(e.Keycode())
	return true
}

// OnKeyRelease never claims; playback continues after release.
func (b *Behavior) OnKeyRelease(row, col int, e keymap.Entry) bool {
	return false
}

// OnVirtualKey starts macros reached through SendKey (combo outputs).
func (b *Behavior) OnVirtualKey(e keymap.Entry) bool {
	if e.Type() != keymap.TypeMacro {
		return false
	}
	b.Start(e.Keycode())
	return true
}

// Update emits one character per active macro and reports whether any
// macro was active this tick; the dispatcher then skips the other
// behavior updates so the macro owns the report.
func (b *Behavior) Update() bool {
	anyActive := false
	cleared := false

	for i := range b.slots {
		s := &b.slots[i]
		if !s.active {
			continue
		}
		anyActive = true

		if !cleared {
			b.clear()
			cleared = true
		}

		ch := s.Text[s.index]
		if kc, ok := keycode.FromASCII[ch]; ok {
			var mods uint8
			if keycode.NeedsShift[ch] {
				mods = keycode.ModLeftShift
			}
			b.send(keymap.Entry(kc) | keymap.Entry(mods)<<8)
		}

		s.index++
		if s.index >= len(s.Text) {
			s.active = false
		}
	}
	return anyActive
}
