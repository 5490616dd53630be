// Package split2040 carries the static configuration of the split2040
// board: keymap, combos, macros, and per-key hold-time offsets.
package split2040

import (
	"github.com/francisrstokes/split2040-fw/combo"
	"github.com/francisrstokes/split2040-fw/keyboard"
	kc "github.com/francisrstokes/split2040-fw/keycode"
	km "github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/macro"
)

// Layer indices.
const (
	LayerQwerty = iota
	LayerLower
	LayerRaise
	LayerFn
	LayerSplit

	LayerMax
)

// Matrix dimensions (both halves side by side).
const (
	Rows = 4
	Cols = 12
)

// Bootmagic position: held at power-on, the board jumps to its
// bootloader before the core ever runs.
const (
	BootmagicRow = 0
	BootmagicCol = 0
)

var (
	trans = km.Transparent

	lower = km.MO(LayerLower)
	raise = km.MO(LayerRaise)
	fn    = km.MO(LayerFn)

	grvEsc = km.TapHold(km.Key(kc.Escape), kc.Grave, 0)
	spcEnt = km.DoubleTap(km.Key(kc.Space), kc.Enter, 0)

	cLeft  = km.Ctl(km.Key(kc.Left))
	cDown  = km.Ctl(km.Key(kc.Down))
	cUp    = km.Ctl(km.Key(kc.Up))
	cRight = km.Ctl(km.Key(kc.Right))
)

func shifted(n uint8) km.Entry { return km.Sft(km.Key(n)) }

var layerTable = [][][]km.Entry{
	LayerQwerty: {
		{grvEsc, km.Key(kc.Q), km.Key(kc.W), km.Key(kc.E), km.Key(kc.R), km.Key(kc.T) /* split */, km.Key(kc.Y), km.Key(kc.U), km.Key(kc.I), km.Key(kc.O), km.Key(kc.P), km.Key(kc.Backspace)},
		{km.Key(kc.Tab), km.GuiT(km.Key(kc.A)), km.AltT(km.Key(kc.S)), km.SftT(km.Key(kc.D)), km.CtlT(km.Key(kc.F)), km.Key(kc.G) /* split */, km.Key(kc.H), km.CtlT(km.Key(kc.J)), km.SftT(km.Key(kc.K)), km.AltT(km.Key(kc.L)), km.GuiT(km.Key(kc.Semicolon)), km.Key(kc.Apostrophe)},
		{km.Key(kc.LeftShift), km.Key(kc.Z), km.Key(kc.X), km.Key(kc.C), km.Key(kc.V), km.Key(kc.B) /* split */, km.Key(kc.N), km.Key(kc.M), km.Key(kc.Comma), km.Key(kc.Period), km.Key(kc.Slash), km.Key(kc.Enter)},
		{km.Key(kc.LeftCtrl), km.Key(kc.Home), km.Key(kc.LeftAlt), km.Key(kc.LeftGUI), lower, spcEnt /* split */, km.Key(kc.Space), raise, km.Key(kc.End), km.Key(kc.Home), km.Key(kc.RightShift), km.Key(kc.RightCtrl)},
	},

	LayerLower: {
		{km.Key(kc.F1), km.Key(kc.F2), km.Key(kc.F3), km.Key(kc.F4), km.Key(kc.F5), km.Key(kc.F6) /* split */, km.Key(kc.F7), km.Key(kc.F8), km.Key(kc.F9), km.Key(kc.F10), km.Key(kc.F11), km.Key(kc.F12)},
		{trans, km.GuiT(km.Key(kc.Num1)), km.AltT(km.Key(kc.Num2)), km.SftT(km.Key(kc.Num3)), km.CtlT(km.Key(kc.Num4)), km.Key(kc.Num5) /* split */, km.Key(kc.Num6), km.CtlT(km.Key(kc.Num7)), km.SftT(km.Key(kc.Num8)), km.AltT(km.Key(kc.Num9)), km.GuiT(km.Key(kc.Num0)), km.Key(kc.Minus)},
		{trans, cLeft, cDown, cUp, cRight, trans /* split */, trans, km.Key(kc.Left), km.Key(kc.Down), km.Key(kc.Up), km.Key(kc.Right), trans},
		{trans, trans, trans, trans, trans, trans /* split */, trans, fn, trans, trans, trans, trans},
	},

	LayerRaise: {
		{trans, km.Key(kc.LeftBrace), km.Key(kc.RightBrace), shifted(kc.LeftBrace), shifted(kc.RightBrace), trans /* split */, trans, shifted(kc.Backslash), km.Key(kc.Backslash), km.Key(kc.Equal), trans, trans},
		{trans, km.GuiT(shifted(kc.Num1)), km.AltT(shifted(kc.Num2)), km.SftT(shifted(kc.Num3)), km.CtlT(shifted(kc.Num4)), shifted(kc.Num5) /* split */, shifted(kc.Num6), km.CtlT(shifted(kc.Num7)), km.SftT(shifted(kc.Num8)), km.AltT(shifted(kc.Num9)), km.GuiT(shifted(kc.Num0)), shifted(kc.Minus)},
		{trans, trans, trans, trans, trans, trans /* split */, trans, km.Key(kc.Left), km.Key(kc.Down), km.Key(kc.Up), km.Key(kc.Right), trans},
		{km.Key(kc.CapsLock), trans, trans, trans, fn, trans /* split */, trans, trans, trans, trans, trans, trans},
	},

	LayerFn: {
		{km.Bootloader(), trans, trans, trans, trans, trans /* split */, trans, trans, trans, trans, trans, trans},
		{trans, trans, trans, trans, trans, trans /* split */, km.Mouse(km.MouseMoveLeft), km.Mouse(km.MouseMoveDown), km.Mouse(km.MouseMoveUp), km.Mouse(km.MouseMoveRight), km.Mouse(km.MouseLeftClick), km.Mouse(km.MouseRightClick)},
		{trans, km.Consumer(kc.ConsumerPlayPause), km.Consumer(kc.ConsumerScanPrev), km.Consumer(kc.ConsumerScanNext), km.Consumer(kc.ConsumerMute), trans /* split */, trans, km.Consumer(kc.ConsumerVolumeDown), km.Consumer(kc.ConsumerVolumeUp), trans, trans, trans},
		{trans, trans, trans, trans, trans, km.Macro(0) /* split */, km.Macro(1), trans, trans, trans, trans, trans},
	},

	LayerSplit: {
		{trans, trans, trans, trans, trans, trans /* split */, trans, trans, trans, trans, trans, trans},
		{trans, trans, trans, trans, trans, trans /* split */, trans, trans, trans, trans, trans, trans},
		{trans, trans, trans, trans, trans, trans /* split */, trans, trans, trans, trans, trans, trans},
		{trans, trans, trans, trans, trans, trans /* split */, trans, trans, trans, trans, trans, trans},
	},
}

// Combos mirrors the board's chord table: adjacent-key chords for
// brackets, tab and caps lock.
var Combos = []combo.Def{
	combo.Def2(km.Key(kc.E), km.Key(kc.R), shifted(kc.Num9)),          // (
	combo.Def2(km.Key(kc.U), km.Key(kc.I), shifted(kc.Num0)),          // )
	combo.Def2(km.Key(kc.C), km.Key(kc.V), km.Key(kc.LeftBrace)),      // [
	combo.Def2(km.Key(kc.M), km.Key(kc.Comma), km.Key(kc.RightBrace)), // ]
	combo.Def2(km.Key(kc.V), km.Key(kc.B), shifted(kc.LeftBrace)),     // {
	combo.Def2(km.Key(kc.N), km.Key(kc.M), shifted(kc.RightBrace)),    // }
	combo.Def2(km.Key(kc.W), km.Key(kc.E), km.Key(kc.Tab)),
	combo.Def2(km.Key(kc.I), km.Key(kc.O), km.Key(kc.Tab)),
	combo.Def2(km.Key(kc.O), km.Key(kc.P), km.Key(kc.CapsLock)),
	combo.Def2(km.Key(kc.Q), km.Key(kc.W), km.Key(kc.CapsLock)),
}

// Macros played from the Fn layer thumb keys.
var Macros = []macro.Def{
	{Text: "git status\n"},
	{Text: "francis@split2040.dev"},
}

// HoldTimeOffsets tightens the hold window for the middle-finger shift
// keys (D, K) and widens it where rolls misfire.
var HoldTimeOffsets = map[uint8]int16{
	kc.D: -50,
	kc.K: -50,
	kc.A: +100,
	kc.L: +20,
	kc.S: +20,
}

// Keymap builds the board's immutable keymap table.
func Keymap() (*km.Keymap, error) {
	return km.New(layerTable)
}

// Config assembles the full core configuration for this board. Hooks are
// left for the caller.
func Config() (keyboard.Config, error) {
	m, err := Keymap()
	if err != nil {
		return keyboard.Config{}, err
	}
	return keyboard.Config{
		Keymap:                m,
		BaseLayer:             LayerQwerty,
		Combos:                Combos,
		Macros:                Macros,
		HoldTimeOffsets:       HoldTimeOffsets,
		CornerChordBootloader: true,
	}, nil
}
