// Package usb builds the static USB descriptors for the keyboard's two
// HID interfaces. The device controller plumbing lives outside the core;
// it consumes these byte tables verbatim.
package usb

import (
	"bytes"
	"encoding/binary"
)

// Descriptor type constants.
const (
	DeviceDescType    = 0x01
	ConfigDescType    = 0x02
	StringDescType    = 0x03
	InterfaceDescType = 0x04
	EndpointDescType  = 0x05
	HIDDescType       = 0x21
	ReportDescType    = 0x22
)

// Fixed descriptor lengths from the USB spec.
const (
	DeviceDescLen    = 18
	ConfigDescLen    = 9
	InterfaceDescLen = 9
	EndpointDescLen  = 7
	HIDDescLen       = 9
)

// DeviceDescriptor is the standard 18-byte device descriptor. BLength and
// BDescriptorType are implied.
type DeviceDescriptor struct {
	BcdUSB             uint16
	BDeviceClass       uint8
	BDeviceSubClass    uint8
	BDeviceProtocol    uint8
	BMaxPacketSize0    uint8
	IDVendor           uint16
	IDProduct          uint16
	BcdDevice          uint16
	IManufacturer      uint8
	IProduct           uint8
	ISerialNumber      uint8
	BNumConfigurations uint8
}

func (d DeviceDescriptor) Bytes() []byte {
	var b bytes.Buffer
	b.WriteByte(DeviceDescLen)
	b.WriteByte(DeviceDescType)
	_ = binary.Write(&b, binary.LittleEndian, d.BcdUSB)
	b.WriteByte(d.BDeviceClass)
	b.WriteByte(d.BDeviceSubClass)
	b.WriteByte(d.BDeviceProtocol)
	b.WriteByte(d.BMaxPacketSize0)
	_ = binary.Write(&b, binary.LittleEndian, d.IDVendor)
	_ = binary.Write(&b, binary.LittleEndian, d.IDProduct)
	_ = binary.Write(&b, binary.LittleEndian, d.BcdDevice)
	b.WriteByte(d.IManufacturer)
	b.WriteByte(d.IProduct)
	b.WriteByte(d.ISerialNumber)
	b.WriteByte(d.BNumConfigurations)
	return b.Bytes()
}

// InterfaceDescriptor is the 9-byte interface descriptor.
type InterfaceDescriptor struct {
	BInterfaceNumber   uint8
	BAlternateSetting  uint8
	BNumEndpoints      uint8
	BInterfaceClass    uint8
	BInterfaceSubClass uint8
	BInterfaceProtocol uint8
	IInterface         uint8
}

func (i InterfaceDescriptor) write(b *bytes.Buffer) {
	b.WriteByte(InterfaceDescLen)
	b.WriteByte(InterfaceDescType)
	b.WriteByte(i.BInterfaceNumber)
	b.WriteByte(i.BAlternateSetting)
	b.WriteByte(i.BNumEndpoints)
	b.WriteByte(i.BInterfaceClass)
	b.WriteByte(i.BInterfaceSubClass)
	b.WriteByte(i.BInterfaceProtocol)
	b.WriteByte(i.IInterface)
}

// EndpointDescriptor is the 7-byte endpoint descriptor.
type EndpointDescriptor struct {
	BEndpointAddress uint8
	BMAttributes     uint8
	WMaxPacketSize   uint16
	BInterval        uint8
}

func (e EndpointDescriptor) write(b *bytes.Buffer) {
	b.WriteByte(EndpointDescLen)
	b.WriteByte(EndpointDescType)
	b.WriteByte(e.BEndpointAddress)
	b.WriteByte(e.BMAttributes)
	_ = binary.Write(b, binary.LittleEndian, e.WMaxPacketSize)
	b.WriteByte(e.BInterval)
}

// HIDDescriptor is the 9-byte HID class descriptor with one subordinate
// report descriptor whose length is filled from the interface's report.
type HIDDescriptor struct {
	BcdHID       uint16
	BCountryCode uint8
}

func (h HIDDescriptor) write(b *bytes.Buffer, reportLen int) {
	b.WriteByte(HIDDescLen)
	b.WriteByte(HIDDescType)
	_ = binary.Write(b, binary.LittleEndian, h.BcdHID)
	b.WriteByte(h.BCountryCode)
	b.WriteByte(1) // bNumDescriptors
	b.WriteByte(ReportDescType)
	_ = binary.Write(b, binary.LittleEndian, uint16(reportLen))
}

// Interface groups the descriptors of one HID interface.
type Interface struct {
	Descriptor InterfaceDescriptor
	HID        HIDDescriptor
	Report     []byte
	Endpoints  []EndpointDescriptor
}

// ConfigHeader is the 9-byte configuration descriptor header;
// WTotalLength is patched while assembling the bundle.
type ConfigHeader struct {
	BConfigurationValue uint8
	IConfiguration      uint8
	BMAttributes        uint8
	BMaxPower           uint8
}

// Device is the full static descriptor set.
type Device struct {
	Device     DeviceDescriptor
	Config     ConfigHeader
	Interfaces []Interface
	// Strings are indexed from 1 (index 0 is the language ID
	// descriptor).
	Strings []string
}

// ConfigBundle assembles the configuration descriptor with all
// interface, HID, and endpoint descriptors concatenated, wTotalLength
// patched in.
func (d Device) ConfigBundle() []byte {
	var body bytes.Buffer
	for _, intf := range d.Interfaces {
		intf.Descriptor.write(&body)
		intf.HID.write(&body, len(intf.Report))
		for _, ep := range intf.Endpoints {
			ep.write(&body)
		}
	}

	total := ConfigDescLen + body.Len()
	var b bytes.Buffer
	b.WriteByte(ConfigDescLen)
	b.WriteByte(ConfigDescType)
	_ = binary.Write(&b, binary.LittleEndian, uint16(total))
	b.WriteByte(uint8(len(d.Interfaces)))
	b.WriteByte(d.Config.BConfigurationValue)
	b.WriteByte(d.Config.IConfiguration)
	b.WriteByte(d.Config.BMAttributes)
	b.WriteByte(d.Config.BMaxPower)
	b.Write(body.Bytes())
	return b.Bytes()
}

// EncodeString converts a UTF-8 string to a USB string descriptor
// (UTF-16LE payload).
func EncodeString(s string) []byte {
	runes := []rune(s)
	buf := make([]byte, 2+len(runes)*2)
	buf[0] = uint8(len(buf))
	buf[1] = StringDescType
	for i, r := range runes {
		buf[2+i*2] = uint8(r)
		buf[2+i*2+1] = uint8(r >> 8)
	}
	return buf
}

// LangDescriptor is the string descriptor at index 0: en-US.
func LangDescriptor() []byte {
	return []byte{4, StringDescType, 0x09, 0x04}
}
