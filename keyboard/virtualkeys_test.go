package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francisrstokes/split2040-fw/keyboard"
	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/macro"
	"github.com/francisrstokes/split2040-fw/matrix"
	"github.com/francisrstokes/split2040-fw/mouse"
)

// A one-row board exercising the virtual key types directly.
func newVirtualTimeline(t *testing.T) *timeline {
	t.Helper()
	m, err := keymap.New([][][]keymap.Entry{
		{
			{
				keymap.Macro(0),
				keymap.Consumer(kc.ConsumerVolumeUp),
				keymap.Mouse(keymap.MouseMoveUp),
				keymap.Mouse(keymap.MouseLeftClick),
				keymap.Key(kc.A),
				keymap.Key(kc.B),
			},
		},
	})
	require.NoError(t, err)

	core, err := keyboard.New(keyboard.Config{
		Keymap: m,
		Macros: []macro.Def{{Text: "hi"}},
	})
	require.NoError(t, err)
	return &timeline{
		t:       t,
		core:    core,
		sim:     matrix.NewSim(1, 6),
		reports: map[int][8]uint8{},
	}
}

func TestMacroOwnsReportWhilePlaying(t *testing.T) {
	l := newVirtualTimeline(t)

	// The macro key and a plain key together: playback wins the report
	// until it finishes.
	l.press([2]int{0, 0})
	l.press([2]int{0, 4})
	l.tickUntil(40)

	l.assertReport(0, 0, kc.H)
	l.assertReport(10, 0, kc.I)
	// Playback over: the held plain key reappears.
	l.assertReport(20, 0, kc.A)
	l.assertReport(30, 0, kc.A)
}

func TestConsumerUsageHeld(t *testing.T) {
	l := newVirtualTimeline(t)

	l.press([2]int{0, 1})
	l.tickUntil(20)
	assert.Equal(t, [2]uint8{0xE9, 0x00}, l.core.ConsumerReport())
	// The keyboard report stays empty for consumer keys.
	l.assertReport(20, 0)

	l.release([2]int{0, 1})
	l.tickUntil(40)
	assert.Equal(t, [2]uint8{0, 0}, l.core.ConsumerReport())
}

func TestMouseActions(t *testing.T) {
	l := newVirtualTimeline(t)

	l.press([2]int{0, 2})
	l.press([2]int{0, 3})
	l.tickUntil(20)

	ms := l.core.MouseReport()
	assert.Equal(t, int8(-4), ms.Y)
	assert.Equal(t, uint8(0x01), ms.Buttons)
	l.assertReport(20, 0)

	l.release([2]int{0, 2})
	l.tickUntil(40)
	ms = l.core.MouseReport()
	assert.Equal(t, int8(0), ms.Y)
	assert.Equal(t, uint8(0x01), ms.Buttons)

	l.release([2]int{0, 3})
	l.tickUntil(60)
	assert.Equal(t, uint8(0), l.core.MouseReport().Buttons)
}

func TestScanCompleteHookSeesEveryTick(t *testing.T) {
	m, err := keymap.New([][][]keymap.Entry{{{keymap.Key(kc.A)}}})
	require.NoError(t, err)

	var ticks int
	var lastKB [8]uint8
	core, err := keyboard.New(keyboard.Config{
		Keymap: m,
		Hooks: keyboard.Hooks{
			OnScanComplete: func(kb [8]uint8, consumer [2]uint8, _ mouse.Report) {
				ticks++
				lastKB = kb
			},
		},
	})
	require.NoError(t, err)

	sim := matrix.NewSim(1, 1)
	core.Tick(sim.Bitmap())
	sim.Press(0, 0)
	core.Tick(sim.Bitmap())

	assert.Equal(t, 2, ticks)
	assert.Equal(t, uint8(kc.A), lastKB[2])
}

func TestLEDReportHook(t *testing.T) {
	m, err := keymap.New([][][]keymap.Entry{{{keymap.Key(kc.A)}}})
	require.NoError(t, err)

	var got uint8
	core, err := keyboard.New(keyboard.Config{
		Keymap: m,
		Hooks: keyboard.Hooks{
			OnLEDReport: func(leds uint8) { got = leds },
		},
	})
	require.NoError(t, err)

	core.SetLEDState(kc.LEDCapsLock)
	assert.Equal(t, uint8(kc.LEDCapsLock), got)
}
