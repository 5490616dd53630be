package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell"

	"github.com/francisrstokes/split2040-fw/internal/log"
	"github.com/francisrstokes/split2040-fw/keyboard"
	"github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/leds"
	"github.com/francisrstokes/split2040-fw/matrix"
	"github.com/francisrstokes/split2040-fw/mouse"
)

// Run drives the core interactively: a terminal view of the matrix with
// a cursor, keys toggled held or tapped, and the assembled reports
// rendered every scan tick.
type Run struct {
	Profile   string `help:"Board profile (YAML/TOML/JSON); built-in split2040 tables when omitted" type:"path" env:"SPLIT2040_PROFILE"`
	SnakeMode bool   `help:"Rewrite Space to Shift+Minus before sending"`
}

func (r *Run) Run(logger *slog.Logger, reportLog log.ReportLogger) error {
	cfg, err := loadCoreConfig(r.Profile)
	if err != nil {
		return err
	}

	var tick uint64
	var ledColor leds.Color

	cfg.Hooks.OnLayerChange = func(layer uint8) {
		ledColor = leds.ForLayer(layer)
	}
	cfg.Hooks.OnScanComplete = func(kb [8]uint8, consumer [2]uint8, _ mouse.Report) {
		reportLog.Log(tick, kb, consumer)
	}
	if r.SnakeMode {
		cfg.Hooks.BeforeSendKey = SnakeMode
	}

	core, err := keyboard.New(cfg)
	if err != nil {
		return err
	}
	ledColor = leds.ForLayer(core.Layer())

	rows := cfg.Keymap.Rows()
	cols := cfg.Keymap.Cols()
	sim := matrix.NewSim(rows, cols)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	logger.Info("simulator started", "rows", rows, "cols", cols, "layers", cfg.Keymap.Layers())

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	interval := time.Duration(cfg.ScanIntervalMS) * time.Millisecond
	if interval == 0 {
		interval = keyboard.DefaultScanIntervalMS * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	curRow, curCol := 0, 0
	// Positions tapped this tick; released again on the next one.
	var taps [][2]int

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			key, quit := handleEvent(ev, sim, &curRow, &curCol, rows, cols)
			if quit {
				return nil
			}
			if key != nil {
				taps = append(taps, *key)
			}

		case <-ticker.C:
			core.Tick(sim.Bitmap())
			tick++
			for _, t := range taps {
				sim.Release(t[0], t[1])
			}
			taps = taps[:0]
			draw(screen, core, sim, curRow, curCol, rows, cols, ledColor)
		}
	}
}

// handleEvent maps terminal input onto the simulated matrix: arrows move
// the cursor, space toggles a hold, t taps, r releases everything.
func handleEvent(ev tcell.Event, sim *matrix.Sim, curRow, curCol *int, rows, cols int) (tap *[2]int, quit bool) {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil, false
	}
	switch kev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyUp:
		if *curRow > 0 {
			*curRow--
		}
	case tcell.KeyDown:
		if *curRow < rows-1 {
			*curRow++
		}
	case tcell.KeyLeft:
		if *curCol > 0 {
			*curCol--
		}
	case tcell.KeyRight:
		if *curCol < cols-1 {
			*curCol++
		}
	case tcell.KeyRune:
		switch kev.Rune() {
		case 'q':
			return nil, true
		case ' ':
			sim.Toggle(*curRow, *curCol)
		case 't':
			if !sim.Held(*curRow, *curCol) {
				sim.Press(*curRow, *curCol)
				return &[2]int{*curRow, *curCol}, false
			}
		case 'r':
			sim.ReleaseAll()
		}
	}
	return nil, false
}

const cellWidth = 7

func draw(screen tcell.Screen, core *keyboard.Core, sim *matrix.Sim, curRow, curCol, rows, cols int, led leds.Color) {
	screen.Clear()

	def := tcell.StyleDefault
	held := def.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	cursor := def.Reverse(true)

	drawText(screen, 0, 0, def.Bold(true), "split2040 simulator  (arrows move, space holds, t taps, r releases, q quits)")

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			style := def
			if sim.Held(r, c) {
				style = held
			}
			if r == curRow && c == curCol {
				style = cursor
			}
			label := entryLabel(core.ResolveKey(r, c))
			if len(label) > cellWidth-1 {
				label = label[:cellWidth-1]
			}
			drawText(screen, 2+c*cellWidth, 2+r*2, style, fmt.Sprintf("%-*s", cellWidth-1, label))
		}
	}

	y := 3 + rows*2
	kb := core.Report()
	drawText(screen, 0, y, def, fmt.Sprintf("layer: %d   led: #%02x%02x%02x", core.Layer(), led.R, led.G, led.B))
	drawText(screen, 0, y+1, def, fmt.Sprintf("report: mods=%02x keys=% 02x", kb[0], kb[2:]))
	cc := core.ConsumerReport()
	ms := core.MouseReport()
	drawText(screen, 0, y+2, def, fmt.Sprintf("consumer: %02x%02x   mouse: btn=%02x x=%+d y=%+d", cc[1], cc[0], ms.Buttons, ms.X, ms.Y))

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// entryLabel renders a keymap entry for the grid.
func entryLabel(e keymap.Entry) string {
	switch e.Type() {
	case keymap.TypeKey:
		if name, ok := keycode.Name[e.Keycode()]; ok {
			if e.Mods() != 0 {
				return "*" + name
			}
			return name
		}
		return ""
	case keymap.TypeLayer:
		return fmt.Sprintf("MO%d", e.Keycode())
	case keymap.TypeTapHold:
		return "TH:" + keycode.Name[e.Tap().Keycode()]
	case keymap.TypeDoubleTap:
		return "DT:" + keycode.Name[e.Tap().Keycode()]
	case keymap.TypeMacro:
		return fmt.Sprintf("M%d", e.Keycode())
	case keymap.TypeMouse:
		return "MOUSE"
	case keymap.TypeKbCtrl:
		if e.Keycode() == keymap.CtrlBootloader {
			return "BOOT"
		}
		return "CC"
	}
	return ""
}

// SnakeMode is the stock BeforeSendKey rewrite: Space becomes
// Shift+Minus, so held text reads like_this.
func SnakeMode(e keymap.Entry) keymap.Entry {
	if e.Keycode() == keycode.Space {
		return keymap.Sft(keymap.Key(keycode.Minus))
	}
	return e
}
