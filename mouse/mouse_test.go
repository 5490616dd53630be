package mouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/mouse"
)

func TestPressAndReleaseLatch(t *testing.T) {
	b := mouse.New()

	assert.True(t, b.OnKeyPress(0, 0, keymap.Mouse(keymap.MouseMoveRight)))
	assert.True(t, b.OnKeyPress(0, 1, keymap.Mouse(keymap.MouseLeftClick)))

	var r mouse.Report
	b.Update(&r)
	assert.Equal(t, int8(4), r.X)
	assert.Equal(t, uint8(mouse.ButtonLeft), r.Buttons)

	assert.True(t, b.OnKeyRelease(0, 0, keymap.Mouse(keymap.MouseMoveRight)))
	r = mouse.Report{}
	b.Update(&r)
	assert.Equal(t, int8(0), r.X)
	assert.Equal(t, uint8(mouse.ButtonLeft), r.Buttons)
}

func TestOpposingDirectionsLastWriterWins(t *testing.T) {
	b := mouse.New()
	b.OnKeyPress(0, 0, keymap.Mouse(keymap.MouseMoveUp))
	b.OnKeyPress(0, 1, keymap.Mouse(keymap.MouseMoveDown))

	var r mouse.Report
	b.Update(&r)
	assert.Equal(t, int8(4), r.Y)
}

func TestNonMouseEntriesIgnored(t *testing.T) {
	b := mouse.New()
	assert.False(t, b.OnKeyPress(0, 0, keymap.Key(kc.A)))
	assert.False(t, b.OnKeyRelease(0, 0, keymap.Key(kc.A)))
}

func TestReportBytes(t *testing.T) {
	r := mouse.Report{Buttons: 1, X: -4, Y: 4}
	assert.Equal(t, [4]uint8{1, 0xFC, 4, 0}, r.Bytes())
}
