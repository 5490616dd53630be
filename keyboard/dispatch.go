package keyboard

import (
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/mouse"
)

// Tick ingests one debounced scan and runs the pipeline. This is the
// entry point the scan timer drives every interval.
func (c *Core) Tick(pressed []uint32) {
	c.state.Apply(pressed)
	c.PostScan()
}

// PostScan runs the per-tick pipeline against the already-applied matrix
// state:
//
//  1. reset the report
//  2. release events, then press events, through the handler chain
//  3. macro playback (macros own the report while active)
//  4. combo, tap-hold, double-tap updates
//  5. remaining unhandled presses as plain keys, unless a behavior is
//     still deciding
//  6. mouse/consumer assembly and the scan-complete hook
func (c *Core) PostScan() {
	c.builder.Clear()
	c.mouseReport = mouse.Report{}

	if c.cfg.CornerChordBootloader && c.cornerChordHeld() {
		if c.cfg.Hooks.EnterBootloader != nil {
			c.cfg.Hooks.EnterBootloader()
		}
	}

	// Releases before presses, both in scan order.
	for row := 0; row < c.state.Rows(); row++ {
		for col := 0; col < c.state.Cols(); col++ {
			if c.state.ReleasedThisScan(row, col) {
				c.dispatchRelease(row, col)
			}
		}
	}
	for row := 0; row < c.state.Rows(); row++ {
		for col := 0; col < c.state.Cols(); col++ {
			if c.state.PressedThisScan(row, col) {
				c.dispatchPress(row, col)
			}
		}
	}

	if !c.macros.Update() {
		comboUnresolved := c.combos.Update()
		tapholdUnresolved := c.taphold.Update()
		doubleTapUnresolved := c.doubletap.Update()

		if !(comboUnresolved || tapholdUnresolved || doubleTapUnresolved) {
			c.emitRemainingPresses()
		}
	}

	c.mouse.Update(&c.mouseReport)
	c.ctrl.Update()

	if c.cfg.Hooks.OnScanComplete != nil {
		c.cfg.Hooks.OnScanComplete(c.builder.Bytes(), c.builder.ConsumerBytes(), c.mouseReport)
	}
}

func (c *Core) dispatchPress(row, col int) {
	e := c.ResolveKey(row, col)
	for i := range c.chain {
		h := &c.chain[i]
		if h.skipPress != nil && h.skipPress() {
			continue
		}
		if h.press(row, col, e) {
			return
		}
	}
}

func (c *Core) dispatchRelease(row, col int) {
	e := c.ResolveKey(row, col)
	for i := range c.chain {
		if c.chain[i].release(row, col, e) {
			return
		}
	}
}

// emitRemainingPresses sends every held, unhandled, unsuppressed plain
// key. Non-plain entries never reach the report from here; their
// behaviors own them.
func (c *Core) emitRemainingPresses() {
	for row := 0; row < c.state.Rows(); row++ {
		for col := 0; col < c.state.Cols(); col++ {
			if !c.state.Pressed(row, col, false) {
				continue
			}
			if e := c.ResolveKey(row, col); e.Type() == keymap.TypeKey {
				c.SendKey(e)
			}
		}
	}
}

// SendKey places an entry into the outgoing report. Non-plain entries are
// routed to the virtual-key handlers instead (a combo can emit a layer
// switch or start a macro).
func (c *Core) SendKey(e keymap.Entry) {
	if e.Type() != keymap.TypeKey {
		c.sendVirtualKey(e)
		return
	}
	if c.cfg.Hooks.BeforeSendKey != nil {
		e = c.cfg.Hooks.BeforeSendKey(e)
	}
	c.builder.AddMods(e.Mods())
	c.builder.AddKey(e.Keycode())
}

// SendModifiers ORs extra modifiers into the report.
func (c *Core) SendModifiers(mods uint8) {
	c.builder.AddMods(mods)
}

func (c *Core) sendVirtualKey(e keymap.Entry) {
	if c.layers.OnVirtualKey(e) {
		return
	}
	if c.macros.OnVirtualKey(e) {
		return
	}
	c.ctrl.OnVirtualKey(e)
}

// cornerChordHeld checks the three-corner bootloader escape hatch.
func (c *Core) cornerChordHeld() bool {
	return c.state.Pressed(0, 0, true) &&
		c.state.Pressed(1, 1, true) &&
		c.state.Pressed(2, 2, true)
}
