package usb_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francisrstokes/split2040-fw/usb"
)

func TestDeviceDescriptorLength(t *testing.T) {
	b := usb.Split2040.Device.Bytes()
	require.Len(t, b, usb.DeviceDescLen)
	assert.Equal(t, uint8(usb.DeviceDescLen), b[0])
	assert.Equal(t, uint8(usb.DeviceDescType), b[1])
	assert.Equal(t, uint16(0x2E8A), binary.LittleEndian.Uint16(b[8:10]))
}

func TestConfigBundleTotalLength(t *testing.T) {
	bundle := usb.Split2040.ConfigBundle()

	total := binary.LittleEndian.Uint16(bundle[2:4])
	assert.Equal(t, int(total), len(bundle))

	want := usb.ConfigDescLen
	for _, intf := range usb.Split2040.Interfaces {
		want += usb.InterfaceDescLen + usb.HIDDescLen + len(intf.Endpoints)*usb.EndpointDescLen
	}
	assert.Equal(t, want, len(bundle))
	assert.Equal(t, uint8(len(usb.Split2040.Interfaces)), bundle[4])
}

func TestHIDDescriptorCarriesReportLength(t *testing.T) {
	bundle := usb.Split2040.ConfigBundle()

	// The first HID descriptor sits right after the config header and
	// first interface descriptor; its last two bytes are the report
	// descriptor length.
	off := usb.ConfigDescLen + usb.InterfaceDescLen
	hid := bundle[off : off+usb.HIDDescLen]
	assert.Equal(t, uint8(usb.HIDDescType), hid[1])
	gotLen := binary.LittleEndian.Uint16(hid[7:9])
	assert.Equal(t, uint16(len(usb.BootKeyboardReportDescriptor)), gotLen)
}

func TestBootKeyboardReportDescriptorShape(t *testing.T) {
	d := usb.BootKeyboardReportDescriptor
	// Application collection is opened and closed.
	assert.Equal(t, uint8(0xA1), d[4])
	assert.Equal(t, uint8(0xC0), d[len(d)-1])
}

func TestEncodeString(t *testing.T) {
	b := usb.EncodeString("ab")
	assert.Equal(t, []byte{6, usb.StringDescType, 'a', 0, 'b', 0}, b)
}

func TestLangDescriptor(t *testing.T) {
	assert.Equal(t, []byte{4, usb.StringDescType, 0x09, 0x04}, usb.LangDescriptor())
}
