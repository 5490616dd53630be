package cmd

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/usb"
)

// Check validates a board profile and the static USB descriptor set.
type Check struct {
	Profile string `arg:"" optional:"" help:"Board profile (YAML/TOML/JSON); built-in split2040 tables when omitted" type:"path"`
}

func (c *Check) Run(logger *slog.Logger) error {
	cfg, err := loadCoreConfig(c.Profile)
	if err != nil {
		return err
	}

	logger.Info("keymap",
		"layers", cfg.Keymap.Layers(),
		"rows", cfg.Keymap.Rows(),
		"cols", cfg.Keymap.Cols(),
		"baseLayer", cfg.BaseLayer)
	logger.Info("behaviors",
		"combos", len(cfg.Combos),
		"macros", len(cfg.Macros),
		"holdTimeOffsets", len(cfg.HoldTimeOffsets))

	for i, m := range cfg.Macros {
		for j := 0; j < len(m.Text); j++ {
			if _, ok := keycode.FromASCII[m.Text[j]]; !ok {
				logger.Warn("macro character has no HID mapping and will be skipped",
					"macro", i, "offset", j, "char", fmt.Sprintf("%q", m.Text[j]))
			}
		}
	}

	if err := checkDescriptors(logger); err != nil {
		return err
	}

	logger.Info("profile ok")
	return nil
}

func checkDescriptors(logger *slog.Logger) error {
	dev := usb.Split2040

	devDesc := dev.Device.Bytes()
	if len(devDesc) != usb.DeviceDescLen {
		return fmt.Errorf("device descriptor is %d bytes, want %d", len(devDesc), usb.DeviceDescLen)
	}

	bundle := dev.ConfigBundle()
	total := binary.LittleEndian.Uint16(bundle[2:4])
	if int(total) != len(bundle) {
		return fmt.Errorf("config descriptor wTotalLength %d does not match %d assembled bytes", total, len(bundle))
	}

	want := usb.ConfigDescLen
	for _, intf := range dev.Interfaces {
		want += usb.InterfaceDescLen + usb.HIDDescLen + len(intf.Endpoints)*usb.EndpointDescLen
	}
	if len(bundle) != want {
		return fmt.Errorf("config descriptor is %d bytes, want %d", len(bundle), want)
	}

	logger.Info("usb descriptors",
		"configBytes", len(bundle),
		"interfaces", len(dev.Interfaces),
		"kbReportDesc", len(usb.BootKeyboardReportDescriptor),
		"ccReportDesc", len(usb.ConsumerControlReportDescriptor))
	return nil
}
