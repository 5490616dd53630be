package keymap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
)

func TestEntryPacking(t *testing.T) {
	type testCase struct {
		name    string
		entry   keymap.Entry
		typ     keymap.Type
		keycode uint8
		mods    uint8
		arg8    uint8
		arg4    uint8
	}

	cases := []testCase{
		{
			name:    "plain key",
			entry:   keymap.Key(kc.A),
			typ:     keymap.TypeKey,
			keycode: kc.A,
		},
		{
			name:    "shifted key",
			entry:   keymap.Sft(keymap.Key(kc.Num9)),
			typ:     keymap.TypeKey,
			keycode: kc.Num9,
			mods:    kc.ModLeftShift,
		},
		{
			name:    "momentary layer",
			entry:   keymap.MO(2),
			typ:     keymap.TypeLayer,
			keycode: 2,
		},
		{
			name:    "mod tap",
			entry:   keymap.SftT(keymap.Key(kc.D)),
			typ:     keymap.TypeTapHold,
			keycode: kc.D,
			arg4:    kc.ModLeftShift,
		},
		{
			name:    "tap hold with hold keycode",
			entry:   keymap.TapHold(keymap.Key(kc.Escape), kc.Grave, 0),
			typ:     keymap.TypeTapHold,
			keycode: kc.Escape,
			arg8:    kc.Grave,
		},
		{
			name:    "double tap",
			entry:   keymap.DoubleTap(keymap.Key(kc.Space), kc.Enter, 0),
			typ:     keymap.TypeDoubleTap,
			keycode: kc.Space,
			arg8:    kc.Enter,
		},
		{
			name:    "macro",
			entry:   keymap.Macro(3),
			typ:     keymap.TypeMacro,
			keycode: 3,
		},
		{
			name:    "mouse",
			entry:   keymap.Mouse(keymap.MouseMoveUp),
			typ:     keymap.TypeMouse,
			keycode: keymap.MouseMoveUp,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.typ, tc.entry.Type())
			assert.Equal(t, tc.keycode, tc.entry.Keycode())
			assert.Equal(t, tc.mods, tc.entry.Mods())
			assert.Equal(t, tc.arg8, tc.entry.Arg8())
			assert.Equal(t, tc.arg4, tc.entry.Arg4())
		})
	}
}

func TestTapAndHoldParts(t *testing.T) {
	// LS_T(LS(KC_3)): taps a shifted 3, holds to shift.
	e := keymap.SftT(keymap.Sft(keymap.Key(kc.Num3)))

	tap := e.Tap()
	assert.Equal(t, uint8(kc.Num3), tap.Keycode())
	assert.Equal(t, uint8(kc.ModLeftShift), tap.Mods())

	hold := e.Hold()
	assert.Equal(t, uint8(kc.None), hold.Keycode())
	assert.Equal(t, uint8(kc.ModLeftShift), hold.Mods())
	assert.Equal(t, keymap.TypeKey, hold.Type())
}

func TestDoubleDecoration(t *testing.T) {
	e := keymap.DoubleTap(keymap.Key(kc.Space), kc.Enter, 0)
	d := e.Double()
	assert.Equal(t, uint8(kc.Enter), d.Keycode())
	assert.Equal(t, uint8(0), d.Mods())
	assert.Equal(t, keymap.TypeKey, d.Type())
}

func TestConsumerEntryRoundTrip(t *testing.T) {
	e := keymap.Consumer(kc.ConsumerVolumeUp)
	assert.Equal(t, keymap.TypeKbCtrl, e.Type())
	assert.Equal(t, uint8(keymap.CtrlConsumer), e.Keycode())
	assert.Equal(t, uint16(kc.ConsumerVolumeUp), e.ConsumerUsage())
}

func TestBootloaderEntry(t *testing.T) {
	e := keymap.Bootloader()
	assert.Equal(t, keymap.TypeKbCtrl, e.Type())
	assert.Equal(t, uint8(keymap.CtrlBootloader), e.Keycode())
}
