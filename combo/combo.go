// Package combo detects chords: a set of keys pressed together inside a
// short window resolves to a single output key. Half-finished chords go
// through a cooldown that swallows straggler taps.
package combo

import (
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/matrix"
)

// KeysMax is the number of keys a single chord can name.
const KeysMax = 4

// DefaultSlots is the size of the combo table.
const DefaultSlots = 16

type state uint8

const (
	// invalid marks unused table slots; the first one terminates scans.
	invalid state = iota
	inactive
	active
	cooldown
	waitForAllReleased
	singleHeld
)

// Def names the chord keys and the output entry. Unused key positions
// stay None.
type Def struct {
	Keys [KeysMax]keymap.Entry
	Out  keymap.Entry
}

// Def2 builds a two-key chord definition.
func Def2(k0, k1, out keymap.Entry) Def {
	return Def{Keys: [KeysMax]keymap.Entry{k0, k1}, Out: out}
}

// Def3 builds a three-key chord definition.
func Def3(k0, k1, k2, out keymap.Entry) Def {
	return Def{Keys: [KeysMax]keymap.Entry{k0, k1, k2}, Out: out}
}

type position struct {
	row int
	col int
}

type comboSlot struct {
	Def

	state           state
	sinceFirstPress uint16
	pressedMask     uint8
	positions       [KeysMax]position
	heldIndex       int
}

type Config struct {
	// DelayMS is the chord collection window.
	DelayMS uint16
	// CancelSuppressMS is how long a cancelled chord swallows its keys.
	CancelSuppressMS uint16
	ScanIntervalMS   uint16
	// Slots sizes the table; definitions beyond it are dropped.
	Slots int
}

// Behavior owns the combo table. Definitions keep table order; the first
// match for a key wins for that event.
type Behavior struct {
	cfg   Config
	slots []comboSlot
	state *matrix.State
	send  func(keymap.Entry)
}

func New(cfg Config, defs []Def, m *matrix.State, send func(keymap.Entry)) *Behavior {
	if cfg.Slots <= 0 {
		cfg.Slots = DefaultSlots
	}
	b := &Behavior{
		cfg:   cfg,
		slots: make([]comboSlot, cfg.Slots),
		state: m,
		send:  send,
	}
	for i := 0; i < len(defs) && i < cfg.Slots; i++ {
		b.slots[i] = comboSlot{Def: defs[i], state: inactive}
	}
	return b
}

// keyIndex returns the chord position of key within slot i, or -1.
func (b *Behavior) keyIndex(i int, key keymap.Entry) int {
	for k := 0; k < KeysMax; k++ {
		if b.slots[i].Keys[k] == keymap.None {
			return -1
		}
		if b.slots[i].Keys[k] == key {
			return k
		}
	}
	return -1
}

// nextWithKey finds the next slot at or after start containing key. The
// first invalid slot terminates the scan.
func (b *Behavior) nextWithKey(start int, key keymap.Entry) int {
	for i := start; i < len(b.slots); i++ {
		if b.slots[i].state == invalid {
			return -1
		}
		if b.keyIndex(i, key) != -1 {
			return i
		}
	}
	return -1
}

func (b *Behavior) start(i int) {
	s := &b.slots[i]
	s.state = active
	s.sinceFirstPress = 0
	s.pressedMask = 0
	// Row and col 0 are valid positions; poison the table so stale
	// entries cannot alias a real key.
	for k := range s.positions {
		s.positions[k] = position{row: -1, col: -1}
	}
}

func (b *Behavior) recordKey(i, keyIdx, row, col int) {
	s := &b.slots[i]
	s.pressedMask |= 1 << keyIdx
	s.positions[keyIdx] = position{row: row, col: col}
	b.state.MarkHandled(row, col)
}

func (b *Behavior) complete(i int) bool {
	s := &b.slots[i]
	for k := 0; k < KeysMax; k++ {
		if s.Keys[k] == keymap.None {
			break
		}
		if s.pressedMask&(1<<k) == 0 {
			return false
		}
	}
	return true
}

// singlePressedIndex returns the chord position of the only pressed key,
// or -1 when zero or more than one are pressed.
func (b *Behavior) singlePressedIndex(i int) int {
	mask := b.slots[i].pressedMask
	for k := 0; k < KeysMax; k++ {
		if b.slots[i].Keys[k] == keymap.None {
			return -1
		}
		if mask&(1<<k) != 0 {
			if mask&^(1<<k) != 0 {
				return -1
			}
			return k
		}
	}
	return -1
}

func (b *Behavior) markKeysHandled(i int) {
	s := &b.slots[i]
	for k := 0; k < KeysMax; k++ {
		if s.Keys[k] == keymap.None {
			break
		}
		if s.positions[k].row >= 0 {
			b.state.MarkHandled(s.positions[k].row, s.positions[k].col)
		}
	}
}

// cancelOverlapping puts every other combo sharing a key with combo i
// into cooldown, so a fired chord cannot leak presses through a
// half-matched sibling.
func (b *Behavior) cancelOverlapping(i int) {
	for k := 0; k < KeysMax; k++ {
		key := b.slots[i].Keys[k]
		if key == keymap.None {
			break
		}
		for other := range b.slots {
			if other == i {
				continue
			}
			if b.slots[other].state == invalid {
				break
			}
			if b.keyIndex(other, key) != -1 {
				b.slots[other].state = cooldown
				b.slots[other].sinceFirstPress = 0
			}
		}
	}
}

// OnKeyPress records a chord key press in every combo that names it and
// claims the event. A completed chord emits its output immediately.
func (b *Behavior) OnKeyPress(row, col int, key keymap.Entry) bool {
	wasHandled := false
	for i := b.nextWithKey(0, key); i != -1; i = b.nextWithKey(i+1, key) {
		keyIdx := b.keyIndex(i, key)
		s := &b.slots[i]

		switch s.state {
		case cooldown:
			// Swallow; the user is still releasing a cancelled chord.
			b.state.MarkHandled(row, col)
			wasHandled = true

		case waitForAllReleased:
			s.pressedMask |= 1 << keyIdx
			wasHandled = true

		case inactive, active:
			wasHandled = true
			if s.state == inactive {
				b.start(i)
			}
			b.recordKey(i, keyIdx, row, col)

			if b.complete(i) {
				b.send(s.Out)
				s.state = waitForAllReleased
				b.cancelOverlapping(i)
			}
		}
	}
	return wasHandled
}

// OnKeyRelease resolves an active chord that loses a key: the single
// remaining key is emitted as itself, anything else enters cooldown.
func (b *Behavior) OnKeyRelease(row, col int, key keymap.Entry) bool {
	for i := b.nextWithKey(0, key); i != -1; i = b.nextWithKey(i+1, key) {
		keyIdx := b.keyIndex(i, key)
		s := &b.slots[i]

		switch s.state {
		case cooldown:
			// Ignored until the cooldown expires.

		case waitForAllReleased:
			s.pressedMask &^= 1 << keyIdx
			if s.pressedMask == 0 {
				s.state = inactive
			}

		case singleHeld:
			s.state = inactive

		case active:
			if single := b.singlePressedIndex(i); single != -1 {
				// Only one chord key was down: emit it as a plain press.
				b.send(s.Keys[single])
				s.state = inactive
			} else {
				s.state = cooldown
				s.sinceFirstPress = 0
				s.pressedMask &^= 1 << keyIdx
			}
		}
	}
	return false
}

// Update advances timers. Active chords that outlive the collection
// window degrade to a held single key or a cooldown; cooldowns swallow
// their keys until they expire. Returns true while any chord is still
// collecting.
func (b *Behavior) Update() bool {
	unresolved := false
	for i := range b.slots {
		s := &b.slots[i]
		if s.state == invalid {
			break
		}

		switch s.state {
		case cooldown:
			s.sinceFirstPress += b.cfg.ScanIntervalMS
			if s.sinceFirstPress >= b.cfg.CancelSuppressMS {
				s.state = inactive
			} else {
				b.markKeysHandled(i)
			}

		case waitForAllReleased:
			b.markKeysHandled(i)

		case active:
			unresolved = true
			s.sinceFirstPress += b.cfg.ScanIntervalMS
			if s.sinceFirstPress >= b.cfg.DelayMS {
				if single := b.singlePressedIndex(i); single != -1 {
					// A lone chord key held past the window becomes a
					// key-repeat of itself.
					b.send(s.Keys[single])
					s.state = singleHeld
					s.heldIndex = single
				} else {
					s.state = cooldown
					s.sinceFirstPress = 0
					b.markKeysHandled(i)
				}
			}

		case singleHeld:
			b.send(s.Keys[s.heldIndex])
		}
	}
	return unresolved
}
