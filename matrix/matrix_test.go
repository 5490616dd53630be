package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/francisrstokes/split2040-fw/matrix"
)

func TestEdgeDetection(t *testing.T) {
	s := matrix.New(2, 4)

	s.Apply([]uint32{0b0001, 0})
	assert.True(t, s.Pressed(0, 0, false))
	assert.True(t, s.PressedThisScan(0, 0))
	assert.False(t, s.ReleasedThisScan(0, 0))

	// Still held: no longer an edge.
	s.Apply([]uint32{0b0001, 0})
	assert.True(t, s.Pressed(0, 0, false))
	assert.False(t, s.PressedThisScan(0, 0))

	// Released: release edge for exactly one scan.
	s.Apply([]uint32{0, 0})
	assert.False(t, s.Pressed(0, 0, false))
	assert.True(t, s.ReleasedThisScan(0, 0))

	s.Apply([]uint32{0, 0})
	assert.False(t, s.ReleasedThisScan(0, 0))
}

// pressed == pressed_this_scan | (prev_pressed & !released_this_scan),
// checked over a few scans with overlapping keys.
func TestBitmapInvariant(t *testing.T) {
	s := matrix.New(1, 8)
	scans := []uint32{0b0011, 0b0110, 0b0110, 0b1000, 0}

	prev := uint32(0)
	for _, scan := range scans {
		s.Apply([]uint32{scan})

		var pressed, pressedThis, releasedThis uint32
		for c := 0; c < 8; c++ {
			if s.Pressed(0, c, true) {
				pressed |= 1 << c
			}
			if s.PressedThisScan(0, c) {
				pressedThis |= 1 << c
			}
			if s.ReleasedThisScan(0, c) {
				releasedThis |= 1 << c
			}
		}
		assert.Equal(t, pressedThis|(prev&^releasedThis), pressed)
		prev = pressed
	}
}

func TestHandledMaskClearsEachScan(t *testing.T) {
	s := matrix.New(1, 4)
	s.Apply([]uint32{0b0001})

	s.MarkHandled(0, 0)
	assert.False(t, s.Pressed(0, 0, false))
	assert.True(t, s.Pressed(0, 0, true))

	s.MarkUnhandled(0, 0)
	assert.True(t, s.Pressed(0, 0, false))
	s.MarkHandled(0, 0)

	// The next scan clears the claim.
	s.Apply([]uint32{0b0001})
	assert.True(t, s.Pressed(0, 0, false))
}

func TestSuppressHeldUntilRelease(t *testing.T) {
	s := matrix.New(1, 4)
	s.Apply([]uint32{0b0011})
	s.SuppressHeldUntilRelease()

	// Suppressed keys read as not pressed even with handled included.
	assert.False(t, s.Pressed(0, 0, false))
	assert.False(t, s.Pressed(0, 0, true))

	// Suppression survives scans while the key stays down.
	s.Apply([]uint32{0b0011})
	assert.False(t, s.Pressed(0, 0, true))
	assert.False(t, s.Pressed(0, 1, true))

	// Releasing one key clears only its bit.
	s.Apply([]uint32{0b0010})
	assert.False(t, s.Pressed(0, 1, true))
	s.Apply([]uint32{0b0011})
	assert.True(t, s.Pressed(0, 0, true))
	assert.False(t, s.Pressed(0, 1, true))
}

func TestSuppressKeyUntilRelease(t *testing.T) {
	s := matrix.New(1, 4)
	s.Apply([]uint32{0b0001})

	// Only held keys can be suppressed.
	s.SuppressKeyUntilRelease(0, 1)
	s.Apply([]uint32{0b0011})
	assert.True(t, s.Pressed(0, 1, false))

	s.SuppressKeyUntilRelease(0, 0)
	assert.False(t, s.Pressed(0, 0, false))
}

func TestOutOfRangeOpsAreIgnored(t *testing.T) {
	s := matrix.New(2, 4)
	s.Apply([]uint32{0b0001, 0})

	assert.False(t, s.Pressed(5, 0, false))
	assert.False(t, s.Pressed(0, 17, false))
	assert.False(t, s.PressedThisScan(-1, 0))
	assert.False(t, s.ReleasedThisScan(0, -1))

	// Mutations outside the matrix must not panic.
	s.MarkHandled(9, 9)
	s.SuppressKeyUntilRelease(-3, 2)
}

func TestColumnsBeyondWidthIgnored(t *testing.T) {
	s := matrix.New(1, 4)
	s.Apply([]uint32{0xffff})
	assert.True(t, s.Pressed(0, 3, false))
	assert.False(t, s.Pressed(0, 4, false))
}
