// Package doubletap implements double-tap keys: tap once for the plain
// key, tap twice inside the window for the decorated variant.
package doubletap

import (
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/matrix"
	"github.com/francisrstokes/split2040-fw/pool"
)

type state uint8

const (
	waitFirstRelease state = iota
	waitSecondPress
	singleTap
	doubleTap
)

type slot struct {
	row   int
	col   int
	layer uint8

	sinceFirstTap uint16
	state         state
}

type Config struct {
	DelayMS        uint16
	ScanIntervalMS uint16
	Capacity       int
}

// Behavior owns the double-tap slot pool. At most one slot exists per
// double-tap entry at a time.
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

// find locates the active slot whose entry resolves to e on the layer the
// slot was created on.
func (b *Behavior) find(e keymap.Entry) int {
	for i := b.pool.ActiveHead(); i != pool.Nil; i = b.pool.Next(i) {
		s := b.pool.At(i)
		if b.resolveOnLayer(s.row, s.col, s.layer) == e {
			return i
		}
	}
	return pool.Nil
}

// OnKeyPress starts tracking a double-tap entry, or promotes an existing
// slot waiting for its second press. Pool exhaustion drops the press
// without claiming it.
func (b *Behavior) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeDoubleTap {
		return false
	}
	i := b.find(e)
	if i == pool.Nil {
		i = b.pool.AllocTail()
		if i == pool.Nil {
			return false
		}
		*b.pool.At(i) = slot{row: row, col: col, layer: b.currentLayer(), state: waitFirstRelease}
		b.state.MarkHandled(row, col)
		return true
	}
	s := b.pool.At(i)
	if s.state == waitSecondPress {
		s.state = doubleTap
		return true
	}
	return false
}

// OnKeyRelease advances the state machine on release. Releasing a
// resolved slot frees it; the key simply stops appearing in the report.
func (b *Behavior) OnKeyRelease(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeDoubleTap {
		return false
	}
	i := b.find(e)
	if i == pool.Nil {
		return false
	}
	s := b.pool.At(i)
	if s.state == waitFirstRelease {
		s.state = waitSecondPress
		return true
	}
	if s.state == singleTap || s.state == doubleTap {
		b.pool.Free(i)
	}
	return false
}

// Update advances timers and emits outcomes. A slot that times out while
// waiting for the second press sends exactly one keydown and is freed; a
// slot resolved while its key is still held re-emits every tick until
// release. Returns true while any slot is undetermined.
func (b *Behavior) Update() bool {
	undetermined := false
	for i := b.pool.ActiveHead(); i != pool.Nil; {
		next := b.pool.Next(i)
		s := b.pool.At(i)
		entry := b.resolveOnLayer(s.row, s.col, s.layer)

		becameInactive := false
		s.sinceFirstTap += b.cfg.ScanIntervalMS
		if s.sinceFirstTap >= b.cfg.DelayMS {
			s.sinceFirstTap = b.cfg.DelayMS
			if s.state != doubleTap {
				becameInactive = s.state == waitSecondPress
				s.state = singleTap
			}
		} else {
			undetermined = true
		}

		switch s.state {
		case singleTap:
			b.send(entry.Tap())
		case doubleTap:
			b.send(entry.Double())
		}

		if becameInactive {
			b.pool.Free(i)
		}
		i = next
	}
	return undetermined
}
