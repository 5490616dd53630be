package keycode

// Consumer page usage IDs carried by the optional consumer-control
// interface (16-bit usages).
const (
	ConsumerPlayPause  = 0x00CD
	ConsumerScanNext   = 0x00B5
	ConsumerScanPrev   = 0x00B6
	ConsumerStop       = 0x00B7
	ConsumerMute       = 0x00E2
	ConsumerVolumeUp   = 0x00E9
	ConsumerVolumeDown = 0x00EA
)

// ConsumerName maps consumer usages to the names accepted in keymap
// profiles.
var ConsumerName = map[uint16]string{
	ConsumerPlayPause:  "PLAY",
	ConsumerScanNext:   "NEXT",
	ConsumerScanPrev:   "PREV",
	ConsumerStop:       "STOP",
	ConsumerMute:       "MUTE",
	ConsumerVolumeUp:   "VOL_UP",
	ConsumerVolumeDown: "VOL_DOWN",
}
