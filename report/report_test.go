package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/report"
)

func TestPlainKeyPlacement(t *testing.T) {
	var b report.Builder
	b.AddKey(keycode.A)
	b.AddKey(keycode.B)

	got := b.Bytes()
	assert.Equal(t, [8]uint8{0, 0, keycode.A, keycode.B, 0, 0, 0, 0}, got)
	assert.Equal(t, 2, b.KeyCount())
}

func TestReservedByteStaysZero(t *testing.T) {
	var b report.Builder
	b.AddMods(0xff)
	for kc := uint8(keycode.A); kc < keycode.A+10; kc++ {
		b.AddKey(kc)
	}
	assert.Equal(t, uint8(0), b.Bytes()[1])
}

func TestDuplicateKeysCollapse(t *testing.T) {
	var b report.Builder
	b.AddKey(keycode.A)
	b.AddKey(keycode.A)
	b.AddKey(keycode.A)

	got := b.Bytes()
	assert.Equal(t, uint8(keycode.A), got[2])
	assert.Equal(t, uint8(0), got[3])
	assert.Equal(t, 1, b.KeyCount())
}

func TestOverflowDropsSilently(t *testing.T) {
	var b report.Builder
	for i := 0; i < 10; i++ {
		b.AddKey(keycode.A + uint8(i))
	}

	got := b.Bytes()
	assert.Equal(t, report.MaxKeys, b.KeyCount())
	for i := 2; i < 8; i++ {
		assert.Equal(t, keycode.A+uint8(i-2), got[i])
	}
}

func TestModifierUsagesSetBits(t *testing.T) {
	type testCase struct {
		name string
		kc   uint8
		want uint8
	}

	cases := []testCase{
		{name: "left ctrl", kc: keycode.LeftCtrl, want: keycode.ModLeftCtrl},
		{name: "left shift", kc: keycode.LeftShift, want: keycode.ModLeftShift},
		{name: "right alt", kc: keycode.RightAlt, want: keycode.ModRightAlt},
		{name: "right gui", kc: keycode.RightGUI, want: keycode.ModRightGUI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b report.Builder
			b.AddKey(tc.kc)
			got := b.Bytes()
			assert.Equal(t, tc.want, got[0])
			// Pure modifiers never take a key slot.
			assert.Equal(t, 0, b.KeyCount())
		})
	}
}

func TestNoneIsIgnored(t *testing.T) {
	var b report.Builder
	b.AddKey(keycode.None)
	assert.Equal(t, [8]uint8{}, b.Bytes())
}

func TestClearResetsEverything(t *testing.T) {
	var b report.Builder
	b.AddMods(keycode.ModLeftShift)
	b.AddKey(keycode.A)
	b.SetConsumer(keycode.ConsumerVolumeUp)

	b.Clear()
	assert.Equal(t, [8]uint8{}, b.Bytes())
	assert.Equal(t, uint16(0), b.Consumer())
	assert.Equal(t, 0, b.KeyCount())
}

func TestConsumerBytesLittleEndian(t *testing.T) {
	var b report.Builder
	b.SetConsumer(keycode.ConsumerVolumeUp)
	assert.Equal(t, [2]uint8{0xE9, 0x00}, b.ConsumerBytes())
}
