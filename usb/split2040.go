package usb

// Interface numbers.
const (
	KeyboardInterface = 0
	ConsumerInterface = 1
)

// BootKeyboardReportDescriptor is the report descriptor for the 8-byte
// boot-protocol keyboard report: 8 modifier bits, a reserved byte, five
// LED output bits, and a six-slot key array.
var BootKeyboardReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)

	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0xE0, //   Usage Minimum (Left Control)
	0x29, 0xE7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Var, Abs)

	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Const)

	0x95, 0x05, //   Report Count (5)
	0x75, 0x01, //   Report Size (1)
	0x05, 0x08, //   Usage Page (LEDs)
	0x19, 0x01, //   Usage Minimum (Num Lock)
	0x29, 0x05, //   Usage Maximum (Kana)
	0x91, 0x02, //   Output (Data, Var, Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x03, //   Report Size (3)
	0x91, 0x01, //   Output (Const)

	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x65, //   Logical Maximum (101)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0x65, //   Usage Maximum (101)
	0x81, 0x00, //   Input (Data, Array)

	0xC0, // End Collection
}

// ConsumerControlReportDescriptor describes the 16-bit consumer usage
// report.
var ConsumerControlReportDescriptor = []byte{
	0x05, 0x0C, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xA1, 0x01, // Collection (Application)

	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x03, //   Logical Maximum (1023)
	0x19, 0x00, //   Usage Minimum (0)
	0x2A, 0xFF, 0x03, //   Usage Maximum (1023)
	0x75, 0x10, //   Report Size (16)
	0x95, 0x01, //   Report Count (1)
	0x81, 0x00, //   Input (Data, Array)

	0xC0, // End Collection
}

// Split2040 is the board's descriptor set: a boot keyboard on endpoint
// 0x81 and consumer control on 0x82.
var Split2040 = Device{
	Device: DeviceDescriptor{
		BcdUSB:             0x0110,
		BMaxPacketSize0:    64,
		IDVendor:           0x2E8A, // Raspberry Pi
		IDProduct:          0x0010,
		BcdDevice:          0x0100,
		IManufacturer:      1,
		IProduct:           2,
		ISerialNumber:      3,
		BNumConfigurations: 1,
	},
	Config: ConfigHeader{
		BConfigurationValue: 1,
		BMAttributes:        0xA0, // bus powered, remote wakeup
		BMaxPower:           50,   // 100 mA
	},
	Interfaces: []Interface{
		{
			Descriptor: InterfaceDescriptor{
				BInterfaceNumber:   KeyboardInterface,
				BNumEndpoints:      1,
				BInterfaceClass:    0x03, // HID
				BInterfaceSubClass: 0x01, // boot
				BInterfaceProtocol: 0x01, // keyboard
			},
			HID:    HIDDescriptor{BcdHID: 0x0111},
			Report: BootKeyboardReportDescriptor,
			Endpoints: []EndpointDescriptor{
				{
					BEndpointAddress: 0x81,
					BMAttributes:     0x03, // interrupt
					WMaxPacketSize:   8,
					BInterval:        10,
				},
			},
		},
		{
			Descriptor: InterfaceDescriptor{
				BInterfaceNumber: ConsumerInterface,
				BNumEndpoints:    1,
				BInterfaceClass:  0x03, // HID
			},
			HID:    HIDDescriptor{BcdHID: 0x0111},
			Report: ConsumerControlReportDescriptor,
			Endpoints: []EndpointDescriptor{
				{
					BEndpointAddress: 0x82,
					BMAttributes:     0x03, // interrupt
					WMaxPacketSize:   2,
					BInterval:        10,
				},
			},
		},
	},
	Strings: []string{"Francis Stokes", "split2040", "1337"},
}
