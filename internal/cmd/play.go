package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/francisrstokes/split2040-fw/internal/log"
	"github.com/francisrstokes/split2040-fw/keyboard"
	"github.com/francisrstokes/split2040-fw/matrix"
)

// Play feeds a scan script through the core and prints each tick's
// report when it changes. Scripts are line based:
//
//	press 1 3
//	tick 8
//	release 1 3
//	tick 2
//
// Blank lines and #-comments are skipped.
type Play struct {
	Script  string `arg:"" help:"Scan script file" type:"existingfile"`
	Profile string `help:"Board profile (YAML/TOML/JSON); built-in split2040 tables when omitted" type:"path" env:"SPLIT2040_PROFILE"`
	Ticks   int    `help:"Extra ticks to run after the script ends" default:"30"`
}

func (p *Play) Run(logger *slog.Logger, reportLog log.ReportLogger) error {
	cfg, err := loadCoreConfig(p.Profile)
	if err != nil {
		return err
	}
	core, err := keyboard.New(cfg)
	if err != nil {
		return err
	}
	sim := matrix.NewSim(cfg.Keymap.Rows(), cfg.Keymap.Cols())

	f, err := os.Open(p.Script)
	if err != nil {
		return err
	}
	defer f.Close()

	interval := cfg.ScanIntervalMS
	if interval == 0 {
		interval = keyboard.DefaultScanIntervalMS
	}

	var tick uint64
	var last [8]uint8
	runTick := func() {
		core.Tick(sim.Bitmap())
		tick++
		kb := core.Report()
		if kb != last {
			fmt.Printf("t=%-6d mods=%02x keys=% 02x\n", (tick-1)*uint64(interval), kb[0], kb[2:])
			last = kb
		}
		reportLog.Log(tick, kb, core.ConsumerReport())
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "press", "release":
			if len(fields) != 3 {
				return fmt.Errorf("%s:%d: %s takes row and col", p.Script, lineNo, fields[0])
			}
			row, err1 := strconv.Atoi(fields[1])
			col, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("%s:%d: bad position", p.Script, lineNo)
			}
			if fields[0] == "press" {
				sim.Press(row, col)
			} else {
				sim.Release(row, col)
			}
		case "tick":
			n := 1
			if len(fields) == 2 {
				var err error
				if n, err = strconv.Atoi(fields[1]); err != nil || n < 1 {
					return fmt.Errorf("%s:%d: bad tick count", p.Script, lineNo)
				}
			}
			for i := 0; i < n; i++ {
				runTick()
			}
		default:
			return fmt.Errorf("%s:%d: unknown directive %q", p.Script, lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	sim.ReleaseAll()
	for i := 0; i < p.Ticks; i++ {
		runTick()
	}

	logger.Info("script finished", "ticks", tick)
	return nil
}
