package processor

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontSource parses the preferred TTF once at startup and hands out rendering
// faces per size. A zero FontSource is valid and always serves the built-in
// bitmap face.
type FontSource struct {
	preferred *opentype.Font
}

// LoadFontSource reads and parses the font file at path. The returned source
// is usable even on error: Face degrades to the built-in face, so a missing
// system font can never fail a request. The error exists so callers can log
// the degradation.
func LoadFontSource(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FontSource{}, fmt.Errorf("preferred font unavailable: %w", err)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return &FontSource{}, fmt.Errorf("preferred font unparsable: %w", err)
	}

	return &FontSource{preferred: parsed}, nil
}

// Face returns a rendering face at the given pixel size. The fallback face
// has a fixed 7x13 glyph box, so metrics differ from the preferred font, but
// text measurement and drawing never fail.
func (s *FontSource) Face(size int) font.Face {
	if s.preferred == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(s.preferred, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}

	return face
}
