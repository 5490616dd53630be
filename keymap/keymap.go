package keymap

import "fmt"

// Default dimensions for the split2040 and its derivatives.
const (
	DefaultLayers = 5
	DefaultRows   = 4
	DefaultCols   = 12
)

// Keymap is an immutable [layer][row][col] table of entries. Cells outside
// the table resolve to None.
type Keymap struct {
	entries [][][]Entry
	rows    int
	cols    int
}

// New validates that every layer is a rows×cols rectangle and wraps the
// table. The table must not be mutated afterwards.
func New(entries [][][]Entry) (*Keymap, error) {
	if len(entries) == 0 || len(entries[0]) == 0 || len(entries[0][0]) == 0 {
		return nil, fmt.Errorf("keymap: empty table")
	}
	rows := len(entries[0])
	cols := len(entries[0][0])
	for l, layer := range entries {
		if len(layer) != rows {
			return nil, fmt.Errorf("keymap: layer %d has %d rows, want %d", l, len(layer), rows)
		}
		for r, row := range layer {
			if len(row) != cols {
				return nil, fmt.Errorf("keymap: layer %d row %d has %d cols, want %d", l, r, len(row), cols)
			}
		}
	}
	return &Keymap{entries: entries, rows: rows, cols: cols}, nil
}

func (k *Keymap) Layers() int { return len(k.entries) }
func (k *Keymap) Rows() int   { return k.rows }
func (k *Keymap) Cols() int   { return k.cols }

// At returns the raw entry without transparent fall-through.
func (k *Keymap) At(layer, row, col int) Entry {
	if layer < 0 || layer >= len(k.entries) || row < 0 || row >= k.rows || col < 0 || col >= k.cols {
		return None
	}
	return k.entries[layer][row][col]
}

// Resolve returns the effective entry at (row, col) on the given layer. A
// Transparent cell falls through to the base layer exactly once; a
// transparent base cell resolves to None.
func (k *Keymap) Resolve(row, col, layer, base int) Entry {
	e := k.At(layer, row, col)
	if e == Transparent {
		e = k.At(base, row, col)
		if e == Transparent {
			return None
		}
	}
	return e
}
