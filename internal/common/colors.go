package common

import (
	"fmt"
	"math"
)

// HSL is a color in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H, S, L float64
}

// PlayerPalette is the color of each player slot, in join order. Player
// indices beyond the palette wrap around.
var PlayerPalette = []HSL{
	{0, 100, 50},   // red
	{227, 66, 55},  // blue
	{120, 100, 25}, // green
	{180, 100, 25}, // teal
	{25, 91, 58},   // orange
	{303, 86, 57},  // pink
	{300, 100, 25}, // purple
	{0, 100, 25},   // maroon
	{52, 57, 44},   // yellow
	{32, 62, 37},   // brown
	{240, 100, 50}, // dark blue
	{248, 39, 39},  // indigo
}

// Tile colors
const (
	NeutralHex  = "#dcdcdc"
	CityHex     = "#808080"
	MountainHex = "#bbbbbb"
	SwampHex    = "#4b6e5a"
	FogHex      = "#393939"
	TextHex     = "#ffffff"
)

// RGB converts c to 8-bit red, green and blue components.
func (c HSL) RGB() (r, g, b uint8) {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := Clampf(c.S/100, 0, 1)
	l := Clampf(c.L/100, 0, 1)

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf = chroma, x
	case h < 120:
		rf, gf = x, chroma
	case h < 180:
		gf, bf = chroma, x
	case h < 240:
		gf, bf = x, chroma
	case h < 300:
		rf, bf = x, chroma
	default:
		rf, bf = chroma, x
	}
	return toByte(rf + m), toByte(gf + m), toByte(bf + m)
}

// Hex returns c as a #rrggbb string.
func (c HSL) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// PlayerHex returns the #rrggbb color of player. Negative indices are
// neutral.
func PlayerHex(player int) string {
	if player < 0 {
		return NeutralHex
	}
	return PlayerPalette[player%len(PlayerPalette)].Hex()
}

func toByte(v float64) uint8 {
	return uint8(math.Round(Clampf(v, 0, 1) * 255))
}

// Clampf limits v to [lo, hi].
func Clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
