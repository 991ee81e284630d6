package processor

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/MaorParienty/watermark-api/internal/models"
	"github.com/disintegration/imaging"
)

const (
	DefaultQuality  = 85
	DefaultWorkers  = 5
	WatermarkMargin = 10
)

// ErrInvalidImage marks upload bytes that cannot be decoded as an image.
// It is the only failure the pipeline reports for well-formed configs;
// everything else degrades to a permissive default.
var ErrInvalidImage = errors.New("invalid image data")

type ImageProcessor struct {
	fonts   *FontSource
	quality int
}

func NewImageProcessor(fonts *FontSource, quality int) *ImageProcessor {
	if quality <= 0 {
		quality = DefaultQuality
	}
	return &ImageProcessor{
		fonts:   fonts,
		quality: quality,
	}
}

// ProcessImage runs the full watermarking pipeline on one upload: decode,
// clamp to the configured maximum resolution, composite the text overlay,
// flatten and re-encode as JPEG. The source bytes are never modified.
func (p *ImageProcessor) ProcessImage(data []byte, cfg *models.WatermarkConfig) (*bytes.Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// Clone normalizes any source mode (grayscale, palette, alpha) to NRGBA
	// so overlay compositing behaves the same for every input.
	base := imaging.Clone(img)
	base = p.clampResolution(base, cfg.MaxResolution)

	flattened := p.addWatermark(base, cfg)

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, flattened); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buffer, nil
}
