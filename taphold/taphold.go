// Package taphold implements tap-hold (mod-tap) keys: a plain key when
// tapped inside the decision window, a modifier decoration when held past
// it. Resolution is timing-based only; a chord press during the window
// does not force either outcome.
package taphold

import (
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/matrix"
	"github.com/francisrstokes/split2040-fw/pool"
)

type slot struct {
	row   int
	col   int
	layer uint8

	holdCounter uint16
	holdFired   bool
}

// Config carries the timing parameters and pool size.
type Config struct {
	// DelayMS is the base decision window.
	DelayMS uint16
	// ScanIntervalMS is added to every slot counter per tick.
	ScanIntervalMS uint16
	// Capacity bounds concurrent undecided tap-holds.
	Capacity int
	// Offsets adjusts the decision window per tap keycode; index-finger
	// keys typically hold faster, thumb keys slower.
	Offsets map[uint8]int16
}

// Behavior owns the tap-hold slot pool.
type Behavior struct {
	cfg   Config
	pool  *pool.Pool[slot]
	state *matrix.State

	resolveOnLayer func(row, col int, layer uint8) keymap.Entry
	currentLayer   func() uint8
	send           func(keymap.Entry)
}

func New(
	cfg Config,
	m *matrix.State,
	resolveOnLayer func(row, col int, layer uint8) keymap.Entry,
	currentLayer func() uint8,
	send func(keymap.Entry),
) *Behavior {
	return &Behavior{
		cfg:            cfg,
		pool:           pool.New[slot](cfg.Capacity),
		state:          m,
		resolveOnLayer: resolveOnLayer,
		currentLayer:   currentLayer,
		send:           send,
	}
}

func (b *Behavior) holdTime(e keymap.Entry) uint16 {
	t := int32(b.cfg.DelayMS)
	if off, ok := b.cfg.Offsets[e.Tap().Keycode()]; ok {
		t += int32(off)
	}
	if t < int32(b.cfg.ScanIntervalMS) {
		t = int32(b.cfg.ScanIntervalMS)
	}
	return uint16(t)
}

// AnyActive reports whether any slot exists, decided or not. The
// dispatcher uses it to keep tap-holds out of combo detection.
func (b *Behavior) AnyActive() bool {
	return b.pool.ActiveHead() != pool.Nil
}

// OnKeyPress claims tap-hold entries by allocating a slot. On pool
// exhaustion the press is dropped without claiming, so the event falls
// through unmodified.
func (b *Behavior) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeTapHold {
		return false
	}
	i := b.pool.AllocTail()
	if i == pool.Nil {
		return false
	}
	*b.pool.At(i) = slot{row: row, col: col, layer: b.currentLayer()}
	b.state.MarkHandled(row, col)
	return true
}

// OnKeyRelease resolves the slot at the released position: a tap if the
// hold decoration has not fired yet, nothing extra if it already has. The
// slot is freed either way.
func (b *Behavior) OnKeyRelease(row, col int, e keymap.Entry) bool {
	handled := false
	for i := b.pool.ActiveHead(); i != pool.Nil; {
		next := b.pool.Next(i)
		s := b.pool.At(i)
		if s.row == row && s.col == col {
			handled = true
			entry := b.resolveOnLayer(s.row, s.col, s.layer)
			if !s.holdFired {
				b.send(entry.Tap())
			}
			b.pool.Free(i)
		}
		i = next
	}
	return handled
}

// Update advances every slot's counter. Once a counter passes its
// computed hold time it clamps there and the hold decoration is emitted,
// again on every following tick until release. Returns true while any
// slot is still inside its decision window.
func (b *Behavior) Update() bool {
	undetermined := false
	for i := b.pool.ActiveHead(); i != pool.Nil; i = b.pool.Next(i) {
		s := b.pool.At(i)
		entry := b.resolveOnLayer(s.row, s.col, s.layer)
		hold := b.holdTime(entry)

		s.holdCounter += b.cfg.ScanIntervalMS
		if s.holdCounter > hold {
			s.holdCounter = hold
			s.holdFired = true
			b.send(entry.Hold())
		} else {
			undetermined = true
		}
	}
	return undetermined
}
