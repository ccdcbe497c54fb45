package nugeomaux

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Color manipulation in HSV space based on Esme Lamb's (@dedelala)
// color work presented at Gophercon AU 2024.
// https://github.com/dedelala/disco/tree/main/color

var (
	red   = color.RGBA{R: 255, A: 255}
	black = color.RGBA{A: 255}
)

// materialPalette returns n distinct colors evenly spread in hue.
func materialPalette(n int) []ms3.Vec {
	pal := make([]ms3.Vec, n)
	for i := range pal {
		h := float32(i) / float32(max(n, 1))
		r, g, b := hsvToRGB(h, 0.65, 1)
		pal[i] = ms3.Vec{X: r, Y: g, Z: b}
	}
	return pal
}

// shade lowers the brightness of c for low densities keeping its hue and
// saturation. relDensity is the density relative to the densest material
// and is clamped to [0,1].
func shade(c ms3.Vec, relDensity float32) color.RGBA {
	h, s, v := rgbToHSV(c.X, c.Y, c.Z)
	v *= 0.35 + 0.65*clamp(relDensity, 0, 1)
	r, g, b := hsvToRGB(h, s, v)
	return color.RGBA{
		R: uint8(clamp(r, 0, 1) * math.MaxUint8),
		G: uint8(clamp(g, 0, 1) * math.MaxUint8),
		B: uint8(clamp(b, 0, 1) * math.MaxUint8),
		A: 255,
	}
}

// hsvToRGB converts hue, saturation and brightness values on the range of 0.0
// to 1.0 to RGB floating point values on the range of 0.0 to 1.0
func hsvToRGB(h, s, v float32) (r, g, b float32) {
	var (
		c = s * v
		x = c * (1 - math.Abs(math.Mod(h*6, 2)-1))
		m = v - c
	)

	switch {
	case h >= 0 && h <= 1.0/6:
		r, g, b = c, x, 0
	case h > 1.0/6 && h <= 2.0/6:
		r, g, b = x, c, 0
	case h > 2.0/6 && h <= 3.0/6:
		r, g, b = 0, c, x
	case h > 3.0/6 && h <= 4.0/6:
		r, g, b = 0, x, c
	case h > 4.0/6 && h <= 5.0/6:
		r, g, b = x, 0, c
	case h > 5.0/6 && h <= 1.0:
		r, g, b = c, 0, x
	}

	r, g, b = r+m, g+m, b+m
	return r, g, b
}

// rgbToHSV converts red, green, and blue floating point values on the range
// 0.0 to 1.0 to hue, saturation and brightness values on the range 0.0 to 1.0
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	var (
		xmax = max(r, g, b)
		xmin = min(r, g, b)
		c    = xmax - xmin
	)
	v = xmax
	switch {
	case c == 0:
		h = 0
	case v == r:
		h = (g - b) / (c * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(c*6)
	case v == b:
		h = 2.0/3 + (r-g)/(c*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = c / xmax
	}
	return
}

func clamp(v, lo, hi float32) float32 {
	return math.Min(math.Max(v, lo), hi)
}
