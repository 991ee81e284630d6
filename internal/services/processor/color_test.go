package processor

import (
	"image/color"
	"testing"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name     string
		hexColor string
		opacity  int
		want     color.NRGBA
	}{
		{"white upper", "FFFFFF", 128, color.NRGBA{255, 255, 255, 128}},
		{"white with hash", "#FFFFFF", 128, color.NRGBA{255, 255, 255, 128}},
		{"black opaque", "#000000", 255, color.NRGBA{0, 0, 0, 255}},
		{"mixed channels", "#1A2B3C", 64, color.NRGBA{0x1A, 0x2B, 0x3C, 64}},
		{"lowercase", "ff00ff", 200, color.NRGBA{255, 0, 255, 200}},
		{"double hash stripped", "##FFFFFF", 128, color.NRGBA{255, 255, 255, 128}},
		{"zero opacity", "#336699", 0, color.NRGBA{0x33, 0x66, 0x99, 0}},

		// Malformed values fall back to white with the requested opacity.
		{"not a color", "notacolor", 128, color.NRGBA{255, 255, 255, 128}},
		{"empty", "", 90, color.NRGBA{255, 255, 255, 90}},
		{"short form", "#FFF", 128, color.NRGBA{255, 255, 255, 128}},
		{"too long", "#FFFFFFFF", 128, color.NRGBA{255, 255, 255, 128}},
		{"non-hex digit", "12345G", 128, color.NRGBA{255, 255, 255, 128}},
		{"hash only", "#", 128, color.NRGBA{255, 255, 255, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveColor(tt.hexColor, tt.opacity)
			if got != tt.want {
				t.Errorf("resolveColor(%q, %d) = %v, want %v", tt.hexColor, tt.opacity, got, tt.want)
			}
		})
	}
}
