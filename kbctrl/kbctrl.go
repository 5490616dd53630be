// Package kbctrl handles firmware-command keys: bootloader entry and
// consumer-control usages.
package kbctrl

import "github.com/francisrstokes/split2040-fw/keymap"

// Behavior latches the held consumer usage and routes bootloader
// requests to the board hook.
type Behavior struct {
	heldUsage uint16
	// Position of the latched press. The release is matched by position,
	// not by entry: leaving a momentary layer mid-hold retargets the
	// resolve, and the usage must still clear when the key lifts.
	heldRow int
	heldCol int

	enterBootloader func()
	setConsumer     func(usage uint16)
}

// New creates the behavior. enterBootloader may be nil when the board has
// no bootloader hook (the simulator); setConsumer writes the tick's
// consumer-control report.
func New(enterBootloader func(), setConsumer func(uint16)) *Behavior {
	return &Behavior{heldRow: -1, heldCol: -1, enterBootloader: enterBootloader, setConsumer: setConsumer}
}

func (b *Behavior) OnKeyPress(row, col int, e keymap.Entry) bool {
	if e.Type() != keymap.TypeKbCtrl {
		return false
	}
	switch e.Keycode() {
	case keymap.CtrlBootloader:
		if b.enterBootloader != nil {
			b.enterBootloader()
		}
	case keymap.CtrlConsumer:
		b.heldUsage = e.ConsumerUsage()
		b.heldRow = row
		b.heldCol = col
	}
	return true
}

func (b *Behavior) OnKeyRelease(row, col int, e keymap.Entry) bool {
	if b.heldUsage != 0 && row == b.heldRow && col == b.heldCol {
		b.heldUsage = 0
		b.heldRow = -1
		b.heldCol = -1
	}
	return e.Type() == keymap.TypeKbCtrl
}

// OnVirtualKey handles control entries arriving through SendKey. A
// consumer usage from a combo or macro is a one-tick pulse rather than a
// latch; there is no release to clear it.
func (b *Behavior) OnVirtualKey(e keymap.Entry) bool {
	if e.Type() != keymap.TypeKbCtrl {
		return false
	}
	switch e.Keycode() {
	case keymap.CtrlBootloader:
		if b.enterBootloader != nil {
			b.enterBootloader()
		}
	case keymap.CtrlConsumer:
		if b.setConsumer != nil {
			b.setConsumer(e.ConsumerUsage())
		}
	}
	return true
}

// Update re-asserts the held consumer usage into the cleared report.
func (b *Behavior) Update() {
	if b.heldUsage != 0 && b.setConsumer != nil {
		b.setConsumer(b.heldUsage)
	}
}
