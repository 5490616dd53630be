// Package keymap implements the packed 32-bit keymap entry encoding, the
// layered keymap table, and entry resolution.
package keymap

import "github.com/francisrstokes/split2040-fw/keycode"

// Entry is a packed keymap cell.
//
// Bit layout:
//
//	[31:28] Type
//	[27:24] Arg4 (nibble)
//	[23:16] Arg8
//	[15:8]  Modifiers
//	[7:0]   Keycode
type Entry uint32

// Type is the entry type nibble.
type Type uint8

const (
	TypeKey Type = iota
	TypeLayer
	TypeTapHold
	TypeDoubleTap
	TypeKbCtrl
	TypeMouse
	TypeMacro
)

const (
	typeShift = 28
	arg4Shift = 24
	arg8Shift = 16
	modsShift = 8

	arg4Mask = 0x0f
	arg8Mask = 0xff
	modsMask = 0xff
	kcMask   = 0xff

	// tapMask covers the keycode plus the low modifier nibble, the part of
	// a tap-hold or double-tap entry that fires on a tap.
	tapMask = 0xfff
)

// None is the empty entry; Transparent defers to the base layer.
const (
	None        Entry = 0x00
	Transparent Entry = 0x01
)

// Layer commands (Arg8 of a TypeLayer entry).
const (
	LayerMomentary = 0x00
)

// Firmware-control commands (Keycode of a TypeKbCtrl entry).
const (
	CtrlBootloader = 0x01
	CtrlConsumer   = 0x02
)

// Mouse actions (Keycode of a TypeMouse entry).
const (
	MouseLeftClick = iota + 1
	MouseMiddleClick
	MouseRightClick
	MouseMoveLeft
	MouseMoveRight
	MouseMoveUp
	MouseMoveDown
)

func (e Entry) Type() Type     { return Type(e >> typeShift) }
func (e Entry) Arg4() uint8    { return uint8(e>>arg4Shift) & arg4Mask }
func (e Entry) Arg8() uint8    { return uint8(e >> arg8Shift) }
func (e Entry) Mods() uint8    { return uint8(e >> modsShift) }
func (e Entry) Keycode() uint8 { return uint8(e) }

// Tap returns the part of a tap-hold or double-tap entry that is emitted
// on a tap: the keycode plus the low modifier nibble.
func (e Entry) Tap() Entry { return e & tapMask }

// Hold returns the decoration emitted when a tap-hold resolves to a hold:
// Arg8 as the keycode and Arg4 as the modifier nibble.
func (e Entry) Hold() Entry { return Entry(e.Arg8()) | Entry(e.Arg4())<<modsShift }

// Double returns the decoration emitted on a double tap, encoded the same
// way as Hold.
func (e Entry) Double() Entry { return Entry(e.Arg8()) | Entry(e.Arg4())<<modsShift }

// ConsumerUsage returns the 16-bit consumer usage of a CtrlConsumer entry
// (Arg4:Arg8, 12 usable bits).
func (e Entry) ConsumerUsage() uint16 {
	return uint16(e.Arg8()) | uint16(e.Arg4())<<8
}

// Key builds a plain keycode entry.
func Key(kc uint8) Entry { return Entry(kc) }

// Modifier wrappers, matching the matrix shorthand of the C keymaps.
func Ctl(e Entry) Entry { return e | Entry(keycode.ModLeftCtrl)<<modsShift }
func Sft(e Entry) Entry { return e | Entry(keycode.ModLeftShift)<<modsShift }
func Alt(e Entry) Entry { return e | Entry(keycode.ModLeftAlt)<<modsShift }
func Gui(e Entry) Entry { return e | Entry(keycode.ModLeftGUI)<<modsShift }

// MO builds a momentary layer-switch entry.
func MO(layer uint8) Entry {
	return Entry(TypeLayer)<<typeShift | Entry(LayerMomentary)<<arg8Shift | Entry(layer)
}

// TapHold builds an entry that taps tap (an entry whose low 12 bits are
// used) and holds to holdKC decorated with holdMods.
func TapHold(tap Entry, holdKC uint8, holdMods uint8) Entry {
	return Entry(TypeTapHold)<<typeShift |
		Entry(holdKC)<<arg8Shift |
		Entry(holdMods&arg4Mask)<<arg4Shift |
		tap&tapMask
}

// ModTap is a TapHold whose hold emits only modifiers.
func ModTap(tap Entry, mods uint8) Entry { return TapHold(tap, keycode.None, mods) }

func CtlT(tap Entry) Entry { return ModTap(tap, keycode.ModLeftCtrl) }
func SftT(tap Entry) Entry { return ModTap(tap, keycode.ModLeftShift) }
func AltT(tap Entry) Entry { return ModTap(tap, keycode.ModLeftAlt) }
func GuiT(tap Entry) Entry { return ModTap(tap, keycode.ModLeftGUI) }

// DoubleTap builds an entry that emits tap on a single tap and the
// doubleKC/doubleMods decoration on a double tap.
func DoubleTap(tap Entry, doubleKC uint8, doubleMods uint8) Entry {
	return Entry(TypeDoubleTap)<<typeShift |
		Entry(doubleKC)<<arg8Shift |
		Entry(doubleMods&arg4Mask)<<arg4Shift |
		tap&tapMask
}

// Macro builds an entry that starts the macro at the given slot index.
func Macro(index uint8) Entry {
	return Entry(TypeMacro)<<typeShift | Entry(index)
}

// Mouse builds a mouse-action entry.
func Mouse(action uint8) Entry {
	return Entry(TypeMouse)<<typeShift | Entry(action)
}

// Bootloader is the reset-to-bootloader virtual key.
func Bootloader() Entry {
	return Entry(TypeKbCtrl)<<typeShift | CtrlBootloader
}

// Consumer builds a consumer-control entry for a 16-bit usage (the top
// four bits are discarded; all defined usages fit).
func Consumer(usage uint16) Entry {
	return Entry(TypeKbCtrl)<<typeShift |
		Entry(usage&0xff)<<arg8Shift |
		Entry(usage>>8&arg4Mask)<<arg4Shift |
		CtrlConsumer
}
