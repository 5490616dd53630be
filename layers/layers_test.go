package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/layers"
	"github.com/francisrstokes/split2040-fw/matrix"
)

func TestMomentaryPressAndRelease(t *testing.T) {
	m := matrix.New(4, 12)
	var changes []uint8
	s := layers.New(0, 5, m, func(l uint8) { changes = append(changes, l) })

	mo := keymap.MO(2)

	m.Apply([]uint32{0, 0, 0, 1})
	assert.True(t, s.OnKeyPress(3, 0, mo))
	assert.Equal(t, uint8(2), s.Current())
	assert.Equal(t, uint8(0), s.Base())
	// The layer key itself is claimed.
	assert.False(t, m.Pressed(3, 0, false))

	// Another key held through the layer release gets suppressed.
	m.Apply([]uint32{1, 0, 0, 1})
	m.Apply([]uint32{1, 0, 0, 0})
	assert.True(t, s.OnKeyRelease(3, 0, mo))
	assert.Equal(t, uint8(0), s.Current())
	assert.False(t, m.Pressed(0, 0, true))

	assert.Equal(t, []uint8{2, 0}, changes)
}

func TestNonLayerEntriesIgnored(t *testing.T) {
	m := matrix.New(4, 12)
	s := layers.New(0, 5, m, nil)

	assert.False(t, s.OnKeyPress(0, 0, keymap.Key(kc.A)))
	assert.False(t, s.OnKeyRelease(0, 0, keymap.Key(kc.A)))
	assert.False(t, s.OnVirtualKey(keymap.Key(kc.A)))
	assert.Equal(t, uint8(0), s.Current())
}

func TestOutOfRangeLayerIgnored(t *testing.T) {
	m := matrix.New(4, 12)
	s := layers.New(0, 3, m, nil)

	s.Set(7)
	assert.Equal(t, uint8(0), s.Current())
}

func TestVirtualKeySwitchesLayer(t *testing.T) {
	m := matrix.New(4, 12)
	s := layers.New(0, 5, m, nil)

	assert.True(t, s.OnVirtualKey(keymap.MO(1)))
	assert.Equal(t, uint8(1), s.Current())
}
