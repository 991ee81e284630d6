package models

import "fmt"

// Position places the watermark text box relative to the image edges.
type Position int

const (
	PositionTopLeft Position = iota
	PositionTopRight
	PositionBottomLeft
	PositionBottomRight
	PositionCenter
)

var positionNames = [...]string{
	PositionTopLeft:     "top_left",
	PositionTopRight:    "top_right",
	PositionBottomLeft:  "bottom_left",
	PositionBottomRight: "bottom_right",
	PositionCenter:      "center",
}

func (p Position) String() string {
	if p >= 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "unknown"
}

// ParsePosition maps a wire value onto the closed Position enum.
func ParsePosition(value string) (Position, error) {
	for pos, name := range positionNames {
		if value == name {
			return Position(pos), nil
		}
	}
	return 0, fmt.Errorf("invalid position %q", value)
}

// WatermarkConfig describes one watermarking operation. Instances are built
// and validated at the HTTP boundary and never modified afterwards.
type WatermarkConfig struct {
	Text     string
	Color    string
	Opacity  int
	FontSize int
	Position Position
	// MaxResolution bounds both output dimensions; 0 disables clamping.
	MaxResolution int
}

const (
	DefaultText       = "WATERMARK"
	DefaultColor      = "#FFFFFF"
	DefaultFontSize   = 50
	DefaultOpacity    = 128
	DefaultResolution = 800
)
