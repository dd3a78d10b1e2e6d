package draw

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS colour string into straight (non-premultiplied)
// RGBA.
// Supported: "#rgb", "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)" and CSS
// colour names. Anything unrecognised is white.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	switch {
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		if c, ok := parseFunc(s); ok {
			return c
		}
	default:
		if c, ok := colornames.Map[s]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return white
}

func parseHex(h string) (color.NRGBA, bool) {
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return color.NRGBA{}, false
		}
		r := uint8(v>>8&0xf) * 17
		g := uint8(v>>4&0xf) * 17
		b := uint8(v&0xf) * 17
		return color.NRGBA{R: r, G: g, B: b, A: 255}, true
	case 6:
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	}
	return color.NRGBA{}, false
}

// parseFunc handles rgb()/rgba(). Alpha is a 0..1 float.
func parseFunc(s string) (color.NRGBA, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end <= open {
		return color.NRGBA{}, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = uint8(math.Max(0, math.Min(255, math.Round(v))))
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha = math.Max(0, math.Min(1, a))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(math.Round(alpha * 255))}, true
}

// Blend composites src over dst using src's alpha. dst is treated as opaque.
func Blend(dst, src color.NRGBA) color.NRGBA {
	if src.A == 255 {
		return src
	}
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
