// Package config defines the firmware profile: the keymap, chords,
// macros, and timing knobs a board variant ships with, loadable from
// YAML, TOML, or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/francisrstokes/split2040-fw/combo"
	"github.com/francisrstokes/split2040-fw/keyboard"
	"github.com/francisrstokes/split2040-fw/keymap"
	"github.com/francisrstokes/split2040-fw/macro"
)

// LogConfig is the logging slice of the CLI.
type LogConfig struct {
	Level      string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"SPLIT2040_LOG_LEVEL"`
	File       string `help:"Also log to this file" env:"SPLIT2040_LOG_FILE"`
	ReportFile string `help:"Trace emitted HID reports to this file" env:"SPLIT2040_LOG_REPORT_FILE"`
}

// ComboDef is one chord in a profile.
type ComboDef struct {
	Keys []string `yaml:"keys" json:"keys" toml:"keys"`
	Out  string   `yaml:"out" json:"out" toml:"out"`
}

// Pools overrides the slot-pool capacities.
type Pools struct {
	TapHold   int `yaml:"tapHold,omitempty" json:"tapHold,omitempty" toml:"tapHold,omitempty"`
	DoubleTap int `yaml:"doubleTap,omitempty" json:"doubleTap,omitempty" toml:"doubleTap,omitempty"`
	Combo     int `yaml:"combo,omitempty" json:"combo,omitempty" toml:"combo,omitempty"`
	Macro     int `yaml:"macro,omitempty" json:"macro,omitempty" toml:"macro,omitempty"`
}

// Profile is the serializable board configuration. Keymap cells use the
// entry expressions understood by keymap.Parse.
type Profile struct {
	ScanIntervalMS        uint16 `yaml:"scanIntervalMs,omitempty" json:"scanIntervalMs,omitempty" toml:"scanIntervalMs,omitempty"`
	TapHoldDelayMS        uint16 `yaml:"tapHoldDelayMs,omitempty" json:"tapHoldDelayMs,omitempty" toml:"tapHoldDelayMs,omitempty"`
	DoubleTapDelayMS      uint16 `yaml:"doubleTapDelayMs,omitempty" json:"doubleTapDelayMs,omitempty" toml:"doubleTapDelayMs,omitempty"`
	ComboDelayMS          uint16 `yaml:"comboDelayMs,omitempty" json:"comboDelayMs,omitempty" toml:"comboDelayMs,omitempty"`
	ComboCancelSuppressMS uint16 `yaml:"comboCancelSuppressMs,omitempty" json:"comboCancelSuppressMs,omitempty" toml:"comboCancelSuppressMs,omitempty"`

	BaseLayer uint8 `yaml:"baseLayer,omitempty" json:"baseLayer,omitempty" toml:"baseLayer,omitempty"`

	Layers [][][]string `yaml:"layers" json:"layers" toml:"layers"`

	Combos []ComboDef `yaml:"combos,omitempty" json:"combos,omitempty" toml:"combos,omitempty"`

	// Macros are send-strings, played one character per tick.
	Macros []string `yaml:"macros,omitempty" json:"macros,omitempty" toml:"macros,omitempty"`

	// HoldTimeOffsets maps key names (KC_D) to hold-window adjustments in
	// milliseconds.
	HoldTimeOffsets map[string]int16 `yaml:"holdTimeOffsets,omitempty" json:"holdTimeOffsets,omitempty" toml:"holdTimeOffsets,omitempty"`

	CornerChordBootloader bool `yaml:"cornerChordBootloader,omitempty" json:"cornerChordBootloader,omitempty" toml:"cornerChordBootloader,omitempty"`

	Pools Pools `yaml:"pools,omitempty" json:"pools,omitempty" toml:"pools,omitempty"`
}

// Load reads a profile, picking the decoder by file extension.
func Load(path string) (Profile, error) {
	var p Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	case ".json":
		err = json.Unmarshal(data, &p)
	default:
		err = fmt.Errorf("config: unsupported profile format %q", filepath.Ext(path))
	}
	if err != nil {
		return p, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Build turns a profile into a core configuration.
func (p Profile) Build() (keyboard.Config, error) {
	var cfg keyboard.Config

	layers := make([][][]keymap.Entry, len(p.Layers))
	for l, layer := range p.Layers {
		layers[l] = make([][]keymap.Entry, len(layer))
		for r, row := range layer {
			layers[l][r] = make([]keymap.Entry, len(row))
			for c, expr := range row {
				e, err := keymap.Parse(expr)
				if err != nil {
					return cfg, fmt.Errorf("config: layer %d row %d col %d: %w", l, r, c, err)
				}
				layers[l][r][c] = e
			}
		}
	}
	kmap, err := keymap.New(layers)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	combos := make([]combo.Def, 0, len(p.Combos))
	for i, cd := range p.Combos {
		if len(cd.Keys) < 2 || len(cd.Keys) > combo.KeysMax {
			return cfg, fmt.Errorf("config: combo %d: needs 2-%d keys, got %d", i, combo.KeysMax, len(cd.Keys))
		}
		var def combo.Def
		for k, expr := range cd.Keys {
			e, err := keymap.Parse(expr)
			if err != nil {
				return cfg, fmt.Errorf("config: combo %d key %d: %w", i, k, err)
			}
			def.Keys[k] = e
		}
		out, err := keymap.Parse(cd.Out)
		if err != nil {
			return cfg, fmt.Errorf("config: combo %d output: %w", i, err)
		}
		def.Out = out
		combos = append(combos, def)
	}

	macros := make([]macro.Def, 0, len(p.Macros))
	for _, text := range p.Macros {
		macros = append(macros, macro.Def{Text: text})
	}

	offsets := make(map[uint8]int16, len(p.HoldTimeOffsets))
	for name, off := range p.HoldTimeOffsets {
		e, err := keymap.Parse(strings.TrimSpace(name))
		if err != nil {
			return cfg, fmt.Errorf("config: hold-time offset %q: %w", name, err)
		}
		offsets[e.Keycode()] = off
	}

	cfg = keyboard.Config{
		Keymap:                kmap,
		BaseLayer:             p.BaseLayer,
		ScanIntervalMS:        p.ScanIntervalMS,
		TapHoldDelayMS:        p.TapHoldDelayMS,
		DoubleTapDelayMS:      p.DoubleTapDelayMS,
		ComboDelayMS:          p.ComboDelayMS,
		ComboCancelSuppressMS: p.ComboCancelSuppressMS,
		TapHoldCapacity:       p.Pools.TapHold,
		DoubleTapCapacity:     p.Pools.DoubleTap,
		ComboSlots:            p.Pools.Combo,
		MacroSlots:            p.Pools.Macro,
		Combos:                combos,
		Macros:                macros,
		HoldTimeOffsets:       offsets,
		CornerChordBootloader: p.CornerChordBootloader,
	}
	return cfg, nil
}

// Starter returns a small two-layer profile used by `config init` as a
// template to edit.
func Starter() Profile {
	return Profile{
		ScanIntervalMS:   10,
		TapHoldDelayMS:   200,
		DoubleTapDelayMS: 200,
		ComboDelayMS:     50,
		Layers: [][][]string{
			{
				{"TAP_HOLD(KC_ESC, KC_GRAVE)", "KC_Q", "KC_W", "KC_E", "KC_R", "KC_BSPC"},
				{"KC_TAB", "LG_T(KC_A)", "LS_T(KC_D)", "LC_T(KC_F)", "MO(1)", "DT(KC_SPC, KC_ENTER)"},
			},
			{
				{"KC_F1", "KC_F2", "KC_F3", "KC_F4", "KC_F5", "____"},
				{"____", "____", "____", "____", "____", "____"},
			},
		},
		Combos: []ComboDef{
			{Keys: []string{"KC_E", "KC_R"}, Out: "LS(KC_9)"},
		},
		Macros:          []string{"hello, world\n"},
		HoldTimeOffsets: map[string]int16{"KC_D": -50},
	}
}
