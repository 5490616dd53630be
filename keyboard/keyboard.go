// Package keyboard is the input-processing core: it turns debounced
// key-matrix bitmaps into boot-protocol HID reports, routing every press
// and release through the behavior chain (layers, tap-hold, double-tap,
// combos, macros, mouse, firmware control).
package keyboard

import (
	"fmt"

	"github.com/francisrstokes/split2040-fw/combo"
	"github.com/francisrstokes/split2040-fw/doubletap"
	"github.com/francisrstokes/split2040-fw/kbctrl"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/layers"
	"github.com/francisrstokes/split2040-fw/macro"
	"github.com/francisrstokes/split2040-fw/matrix"
	"github.com/francisrstokes/split2040-fw/mouse"
	"github.com/francisrstokes/split2040-fw/report"
	"github.com/francisrstokes/split2040-fw/taphold"
)

// Timing and capacity defaults, in scan-interval multiples of 10 ms.
const (
	DefaultScanIntervalMS        = 10
	DefaultTapHoldDelayMS        = 200
	DefaultDoubleTapDelayMS      = 200
	DefaultComboDelayMS          = 50
	DefaultComboCancelSuppressMS = 150

	DefaultTapHoldCapacity   = 8
	DefaultDoubleTapCapacity = 8
	DefaultMacroSlots        = 8
	DefaultComboSlots        = 16
)

// Hooks is the capability set a board hands to the core. Every field is
// optional.
type Hooks struct {
	// BeforeSendKey may rewrite a plain key just before it enters the
	// report (e.g. snake mode turning Space into Shift+Minus).
	BeforeSendKey func(keymap.Entry) keymap.Entry
	// OnScanComplete receives the assembled reports at the end of every
	// tick; the USB layer commits them from here.
	OnScanComplete func(kb [report.Len]uint8, consumer [2]uint8, m mouse.Report)
	// OnLayerChange fires after every layer switch (LED recolor).
	OnLayerChange func(layer uint8)
	// OnLEDReport receives host LED output reports (caps lock and co).
	OnLEDReport func(leds uint8)
	// EnterBootloader resets the board into its bootloader.
	EnterBootloader func()
}

// Config assembles a core. Zero timing or capacity fields take the
// defaults above.
type Config struct {
	Keymap    *keymap.Keymap
	BaseLayer uint8

	ScanIntervalMS        uint16
	TapHoldDelayMS        uint16
	DoubleTapDelayMS      uint16
	ComboDelayMS          uint16
	ComboCancelSuppressMS uint16

	TapHoldCapacity   int
	DoubleTapCapacity int
	MacroSlots        int
	ComboSlots        int

	Combos []combo.Def
	Macros []macro.Def

	// HoldTimeOffsets adjusts the tap-hold window per tap keycode.
	HoldTimeOffsets map[uint8]int16

	// CornerChordBootloader enables the three-corner chord escape hatch
	// into the bootloader.
	CornerChordBootloader bool

	Hooks Hooks
}

func (c *Config) applyDefaults() {
	if c.ScanIntervalMS == 0 {
		c.ScanIntervalMS = DefaultScanIntervalMS
	}
	if c.TapHoldDelayMS == 0 {
		c.TapHoldDelayMS = DefaultTapHoldDelayMS
	}
	if c.DoubleTapDelayMS == 0 {
		c.DoubleTapDelayMS = DefaultDoubleTapDelayMS
	}
	if c.ComboDelayMS == 0 {
		c.ComboDelayMS = DefaultComboDelayMS
	}
	if c.ComboCancelSuppressMS == 0 {
		c.ComboCancelSuppressMS = DefaultComboCancelSuppressMS
	}
	if c.TapHoldCapacity == 0 {
		c.TapHoldCapacity = DefaultTapHoldCapacity
	}
	if c.DoubleTapCapacity == 0 {
		c.DoubleTapCapacity = DefaultDoubleTapCapacity
	}
	if c.MacroSlots == 0 {
		c.MacroSlots = DefaultMacroSlots
	}
	if c.ComboSlots == 0 {
		c.ComboSlots = DefaultComboSlots
	}
}

// handler is one link of the press/release chains; returning true claims
// the event and stops propagation.
type handler struct {
	press   func(row, col int, e keymap.Entry) bool
	release func(row, col int, e keymap.Entry) bool
	// skipPress gates the press handler per event (combo skip while a
	// tap-hold is deciding).
	skipPress func() bool
}

// Core is the single top-level value of the input pipeline. It is
// constructed once at init and driven by Tick from the scan timer; it is
// not safe for concurrent use and does not need to be.
type Core struct {
	cfg    Config
	keymap *keymap.Keymap
	state  *matrix.State

	builder     report.Builder
	mouseReport mouse.Report

	layers    *layers.State
	taphold   *taphold.Behavior
	doubletap *doubletap.Behavior
	combos    *combo.Behavior
	macros    *macro.Behavior
	mouse     *mouse.Behavior
	ctrl      *kbctrl.Behavior

	chain []handler
}

// New wires the behaviors together in handler-chain order.
func New(cfg Config) (*Core, error) {
	if cfg.Keymap == nil {
		return nil, fmt.Errorf("keyboard: config needs a keymap")
	}
	cfg.applyDefaults()
	if int(cfg.BaseLayer) >= cfg.Keymap.Layers() {
		return nil, fmt.Errorf("keyboard: base layer %d outside keymap with %d layers", cfg.BaseLayer, cfg.Keymap.Layers())
	}

	c := &Core{
		cfg:    cfg,
		keymap: cfg.Keymap,
		state:  matrix.New(cfg.Keymap.Rows(), cfg.Keymap.Cols()),
	}

	c.layers = layers.New(cfg.BaseLayer, uint8(cfg.Keymap.Layers()), c.state, cfg.Hooks.OnLayerChange)
	c.taphold = taphold.New(taphold.Config{
		DelayMS:        cfg.TapHoldDelayMS,
		ScanIntervalMS: cfg.ScanIntervalMS,
		Capacity:       cfg.TapHoldCapacity,
		Offsets:        cfg.HoldTimeOffsets,
	}, c.state, c.resolveOnLayer, c.layers.Current, c.SendKey)
	c.doubletap = doubletap.New(doubletap.Config{
		DelayMS:        cfg.DoubleTapDelayMS,
		ScanIntervalMS: cfg.ScanIntervalMS,
		Capacity:       cfg.DoubleTapCapacity,
	}, c.state, c.resolveOnLayer, c.layers.Current, c.SendKey)
	c.combos = combo.New(combo.Config{
		DelayMS:          cfg.ComboDelayMS,
		CancelSuppressMS: cfg.ComboCancelSuppressMS,
		ScanIntervalMS:   cfg.ScanIntervalMS,
		Slots:            cfg.ComboSlots,
	}, cfg.Combos, c.state, c.SendKey)
	c.macros = macro.New(cfg.Macros, cfg.MacroSlots, c.SendKey, c.builder.Clear)
	c.mouse = mouse.New()
	c.ctrl = kbctrl.New(cfg.Hooks.EnterBootloader, c.builder.SetConsumer)

	// First claimer wins. Combos sit before layers so layer keys can take
	// part in chords, but step aside while a tap-hold is deciding so the
	// undecided key is not mistaken for the start of a chord.
	c.chain = []handler{
		{press: c.ctrl.OnKeyPress, release: c.ctrl.OnKeyRelease},
		{press: c.macros.OnKeyPress, release: c.macros.OnKeyRelease},
		{press: c.combos.OnKeyPress, release: c.combos.OnKeyRelease, skipPress: c.taphold.AnyActive},
		{press: c.layers.OnKeyPress, release: c.layers.OnKeyRelease},
		{press: c.taphold.OnKeyPress, release: c.taphold.OnKeyRelease},
		{press: c.doubletap.OnKeyPress, release: c.doubletap.OnKeyRelease},
		{press: c.mouse.OnKeyPress, release: c.mouse.OnKeyRelease},
	}
	return c, nil
}

// Matrix exposes the matrix view, mainly to tests and the simulator.
func (c *Core) Matrix() *matrix.State { return c.state }

// Layer returns the current layer.
func (c *Core) Layer() uint8 { return c.layers.Current() }

// Report returns the keyboard report assembled by the last tick.
func (c *Core) Report() [report.Len]uint8 { return c.builder.Bytes() }

// ConsumerReport returns the consumer-control report of the last tick.
func (c *Core) ConsumerReport() [2]uint8 { return c.builder.ConsumerBytes() }

// MouseReport returns the mouse report of the last tick.
func (c *Core) MouseReport() mouse.Report { return c.mouseReport }

// SetLEDState feeds a host LED output report to the board hook.
func (c *Core) SetLEDState(leds uint8) {
	if c.cfg.Hooks.OnLEDReport != nil {
		c.cfg.Hooks.OnLEDReport(leds)
	}
}

// ResolveKey resolves (row, col) on the current layer with transparent
// fall-through.
func (c *Core) ResolveKey(row, col int) keymap.Entry {
	return c.keymap.Resolve(row, col, int(c.layers.Current()), int(c.layers.Base()))
}

func (c *Core) resolveOnLayer(row, col int, layer uint8) keymap.Entry {
	return c.keymap.Resolve(row, col, int(layer), int(c.layers.Base()))
}
