package processor

import (
	"image/color"
	"strconv"
	"strings"
)

// resolveColor parses a 6-hex-digit RGB string, with or without leading "#",
// and attaches the given opacity as the alpha channel. Any malformed value
// (wrong length, non-hex characters, empty) falls back to white instead of
// failing; opacity is range-checked by the caller.
func resolveColor(hexColor string, opacity int) color.NRGBA {
	s := strings.TrimLeft(hexColor, "#")
	if len(s) == 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: uint8(opacity),
			}
		}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(opacity)}
}
