// Package leds maps firmware state onto the board's WS2812 status LEDs.
// The PIO driver consumes GRB words; this package only decides colors.
package leds

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// FromHSL converts hue [0,360), saturation and lightness [0,1] to RGB.
func FromHSL(h, s, l float64) Color {
	r, g, b := colorful.Hsl(h, s, l).RGB255()
	return Color{R: r, G: g, B: b}
}

// GRB returns the WS2812 wire order.
func (c Color) GRB() [3]uint8 { return [3]uint8{c.G, c.R, c.B} }

// Scaled dims the color to the given brightness [0,1].
func (c Color) Scaled(brightness float64) Color {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	return Color{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
	}
}

// LayerColors is the per-layer status color table.
var LayerColors = []Color{
	FromHSL(0, 0, 1.0),      // base: white
	FromHSL(180, 1.0, 0.5),  // lower: cyan
	FromHSL(30, 1.0, 0.5),   // raise: orange
	FromHSL(300, 1.0, 0.5),  // fn: magenta
	FromHSL(160, 1.0, 0.65), // split: aquamarine
}

// ForLayer returns the status color for a layer, white for layers
// outside the table.
func ForLayer(layer uint8) Color {
	if int(layer) < len(LayerColors) {
		return LayerColors[layer]
	}
	return LayerColors[0]
}

// Strip is a fixed-size chain of WS2812 LEDs.
type Strip struct {
	colors []Color
}

func NewStrip(count int) *Strip {
	return &Strip{colors: make([]Color, count)}
}

func (s *Strip) Set(i int, c Color) {
	if i >= 0 && i < len(s.colors) {
		s.colors[i] = c
	}
}

func (s *Strip) At(i int) Color {
	if i >= 0 && i < len(s.colors) {
		return s.colors[i]
	}
	return Color{}
}

// Bytes serializes the strip in GRB wire order for the PIO driver.
func (s *Strip) Bytes() []uint8 {
	out := make([]uint8, 0, len(s.colors)*3)
	for _, c := range s.colors {
		grb := c.GRB()
		out = append(out, grb[:]...)
	}
	return out
}
