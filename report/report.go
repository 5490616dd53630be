// Package report assembles boot-protocol HID keyboard reports and the
// 16-bit consumer-control report.
package report

import "github.com/francisrstokes/split2040-fw/keycode"

// Len is the boot-protocol keyboard report length.
const Len = 8

// MaxKeys is the boot-protocol rollover limit; keys beyond it are
// silently dropped.
const MaxKeys = 6

// Builder accumulates one tick's report. The zero value is ready to use.
//
// Report layout (8 bytes):
//
//	Byte 0: Modifier bitmap (LCtrl bit 0 .. RGUI bit 7)
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Up to six usage IDs, no duplicates
type Builder struct {
	report     [Len]uint8
	pressCount int
	consumer   uint16
}

// Clear resets the report and the consumer-control usage for a new tick.
func (b *Builder) Clear() {
	b.report = [Len]uint8{}
	b.pressCount = 0
	b.consumer = 0
}

// AddMods ORs a modifier bitmap into byte 0.
func (b *Builder) AddMods(mods uint8) {
	b.report[0] |= mods
}

// AddKey places a usage into the report. Modifier usages set their bit in
// byte 0; regular usages are deduplicated and appended until the six-key
// limit, beyond which they are dropped.
func (b *Builder) AddKey(kc uint8) {
	if kc == keycode.None {
		return
	}
	if keycode.IsModifier(kc) {
		b.report[0] |= keycode.ModifierBit(kc)
		return
	}
	for i := 2; i < Len; i++ {
		if b.report[i] == kc {
			return
		}
	}
	if b.pressCount >= MaxKeys {
		return
	}
	b.report[2+b.pressCount] = kc
	b.pressCount++
}

// SetConsumer records the consumer-control usage for this tick. The last
// writer wins; 0 means none.
func (b *Builder) SetConsumer(usage uint16) { b.consumer = usage }

func (b *Builder) Consumer() uint16 { return b.consumer }

// Mods returns the modifier byte.
func (b *Builder) Mods() uint8 { return b.report[0] }

// KeyCount returns the number of regular usages in the report.
func (b *Builder) KeyCount() int { return b.pressCount }

// Bytes returns the 8-byte report snapshot.
func (b *Builder) Bytes() [Len]uint8 { return b.report }

// ConsumerBytes returns the 2-byte consumer-control report, little
// endian.
func (b *Builder) ConsumerBytes() [2]uint8 {
	return [2]uint8{uint8(b.consumer), uint8(b.consumer >> 8)}
}
