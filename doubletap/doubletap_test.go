package doubletap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francisrstokes/split2040-fw/doubletap"
	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/matrix"
)

var spcEnt = keymap.DoubleTap(keymap.Key(kc.Space), kc.Enter, 0)

type harness struct {
	b    *doubletap.Behavior
	m    *matrix.State
	sent []keymap.Entry
}

func newHarness(capacity int) *harness {
	h := &harness{m: matrix.New(4, 12)}
	resolve := func(row, col int, layer uint8) keymap.Entry {
		if row == 3 && col == 5 {
			return spcEnt
		}
		return keymap.None
	}
	h.b = doubletap.New(doubletap.Config{
		DelayMS:        200,
		ScanIntervalMS: 10,
		Capacity:       capacity,
	}, h.m, resolve, func() uint8 { return 0 }, func(e keymap.Entry) { h.sent = append(h.sent, e) })
	return h
}

func (h *harness) count(kcWant uint8) int {
	n := 0
	for _, e := range h.sent {
		if e.Keycode() == kcWant {
			n++
		}
	}
	return n
}

func TestQuickDoubleTapEmitsDecoration(t *testing.T) {
	h := newHarness(8)

	h.m.Apply([]uint32{0, 0, 0, 0b100000})
	require.True(t, h.b.OnKeyPress(3, 5, spcEnt))
	assert.False(t, h.m.Pressed(3, 5, false)) // claimed

	for i := 0; i < 8; i++ {
		assert.True(t, h.b.Update())
	}

	h.m.Apply([]uint32{0, 0, 0, 0})
	assert.True(t, h.b.OnKeyRelease(3, 5, spcEnt))

	for i := 0; i < 4; i++ {
		assert.True(t, h.b.Update())
	}
	assert.Empty(t, h.sent)

	// Second press inside the window: the decorated key, every tick
	// while held.
	h.m.Apply([]uint32{0, 0, 0, 0b100000})
	assert.True(t, h.b.OnKeyPress(3, 5, spcEnt))
	h.b.Update()
	assert.Equal(t, 1, h.count(kc.Enter))
	assert.Equal(t, 0, h.count(kc.Space))
	h.b.Update()
	assert.Equal(t, 2, h.count(kc.Enter))

	// Release frees the slot; nothing more is emitted.
	h.m.Apply([]uint32{0, 0, 0, 0})
	h.b.OnKeyRelease(3, 5, spcEnt)
	assert.False(t, h.b.Update())
	assert.Equal(t, 2, h.count(kc.Enter))
}

func TestTimeoutWhileHeldEmitsTapRepeatedly(t *testing.T) {
	h := newHarness(8)

	h.m.Apply([]uint32{0, 0, 0, 0b100000})
	h.b.OnKeyPress(3, 5, spcEnt)

	// Timer runs out with the key still held: the tap appears in the
	// report while the key is down, and repeats.
	for i := 0; i < 20; i++ {
		h.b.Update()
	}
	assert.Equal(t, 1, h.count(kc.Space))
	h.b.Update()
	assert.Equal(t, 2, h.count(kc.Space))
	assert.Equal(t, 0, h.count(kc.Enter))

	h.m.Apply([]uint32{0, 0, 0, 0})
	h.b.OnKeyRelease(3, 5, spcEnt)
	assert.False(t, h.b.Update())
	assert.Equal(t, 2, h.count(kc.Space))
}

func TestTimeoutAfterReleaseEmitsSingleKeydown(t *testing.T) {
	h := newHarness(8)

	h.m.Apply([]uint32{0, 0, 0, 0b100000})
	h.b.OnKeyPress(3, 5, spcEnt)
	h.b.Update()

	h.m.Apply([]uint32{0, 0, 0, 0})
	h.b.OnKeyRelease(3, 5, spcEnt)

	// Waiting for the second press that never comes: on timeout exactly
	// one keydown, then the slot is gone.
	for i := 0; i < 30; i++ {
		h.b.Update()
	}
	assert.Equal(t, 1, h.count(kc.Space))
	assert.False(t, h.b.Update())
}

func TestPoolExhaustionDropsPress(t *testing.T) {
	h := newHarness(0)
	h.m.Apply([]uint32{0, 0, 0, 0b100000})
	assert.False(t, h.b.OnKeyPress(3, 5, spcEnt))
	assert.True(t, h.m.Pressed(3, 5, false))
}

func TestNonDoubleTapEntriesIgnored(t *testing.T) {
	h := newHarness(8)
	assert.False(t, h.b.OnKeyPress(0, 0, keymap.Key(kc.A)))
	assert.False(t, h.b.OnKeyRelease(0, 0, keymap.Key(kc.A)))
}
