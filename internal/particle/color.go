package particle

import "image/color"

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGB packs the three channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels unpacks the color.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Invert returns the channel-wise complement, used for legible labels on a
// material's own color.
func (c Color) Invert() Color {
	return ^c & 0xffffff
}

// Scale multiplies every channel by f, clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return c
	}
	r, g, b := c.Channels()
	return RGB(
		uint8(float64(r)*f),
		uint8(float64(g)*f),
		uint8(float64(b)*f),
	)
}

// RGBA converts to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Channels()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
