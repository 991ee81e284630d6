package processor

import (
	"image"

	"github.com/disintegration/imaging"
)

// clampResolution shrinks the image so neither dimension exceeds maxRes,
// preserving aspect ratio. Images already within the bound pass through
// untouched; maxRes 0 disables clamping entirely.
func (p *ImageProcessor) clampResolution(img *image.NRGBA, maxRes int) *image.NRGBA {
	if maxRes <= 0 {
		return img
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxRes && bounds.Dy() <= maxRes {
		return img
	}

	return imaging.Fit(img, maxRes, maxRes, imaging.Lanczos)
}
