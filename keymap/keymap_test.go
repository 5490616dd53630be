package keymap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kc "github.com/francisrstokes/split2040-fw/keycode"
	"github.com/francisrstokes/split2040-fw/keymap"
)

func twoLayerMap(t *testing.T) *keymap.Keymap {
	t.Helper()
	m, err := keymap.New([][][]keymap.Entry{
		{
			{keymap.Key(kc.A), keymap.Key(kc.B)},
			{keymap.Transparent, keymap.Key(kc.D)},
		},
		{
			{keymap.Transparent, keymap.Key(kc.X)},
			{keymap.Transparent, keymap.Transparent},
		},
	})
	require.NoError(t, err)
	return m
}

func TestResolve(t *testing.T) {
	m := twoLayerMap(t)

	type testCase struct {
		name        string
		row, col    int
		layer, base int
		want        keymap.Entry
	}

	cases := []testCase{
		{name: "plain on base", row: 0, col: 0, layer: 0, base: 0, want: keymap.Key(kc.A)},
		{name: "plain on upper layer", row: 0, col: 1, layer: 1, base: 0, want: keymap.Key(kc.X)},
		{name: "transparent falls to base", row: 0, col: 0, layer: 1, base: 0, want: keymap.Key(kc.A)},
		{name: "transparent base resolves to none", row: 1, col: 0, layer: 1, base: 0, want: keymap.None},
		{name: "transparent on current layer only falls one level", row: 1, col: 1, layer: 1, base: 0, want: keymap.Key(kc.D)},
		{name: "row out of range", row: 5, col: 0, layer: 0, base: 0, want: keymap.None},
		{name: "col out of range", row: 0, col: 9, layer: 0, base: 0, want: keymap.None},
		{name: "layer out of range", row: 0, col: 0, layer: 7, base: 0, want: keymap.None},
		{name: "negative position", row: -1, col: 0, layer: 0, base: 0, want: keymap.None},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Resolve(tc.row, tc.col, tc.layer, tc.base))
		})
	}
}

func TestNewRejectsRaggedTables(t *testing.T) {
	_, err := keymap.New([][][]keymap.Entry{
		{
			{keymap.Key(kc.A), keymap.Key(kc.B)},
			{keymap.Key(kc.C)},
		},
	})
	assert.Error(t, err)

	_, err = keymap.New(nil)
	assert.Error(t, err)
}

func TestDimensions(t *testing.T) {
	m := twoLayerMap(t)
	assert.Equal(t, 2, m.Layers())
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
}
