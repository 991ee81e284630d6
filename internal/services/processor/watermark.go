package processor

import (
	"image"
	"image/draw"

	"github.com/MaorParienty/watermark-api/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// addWatermark renders the watermark text onto a transparent overlay the
// same size as img, alpha-composites the overlay over the image, and returns
// the result flattened to an opaque RGB buffer.
func (p *ImageProcessor) addWatermark(img *image.NRGBA, cfg *models.WatermarkConfig) *image.RGBA {
	bounds := img.Bounds()

	face := p.fonts.Face(cfg.FontSize)
	textColor := resolveColor(cfg.Color, cfg.Opacity)

	bbox, _ := font.BoundString(face, cfg.Text)
	textWidth := (bbox.Max.X - bbox.Min.X).Ceil()
	textHeight := (bbox.Max.Y - bbox.Min.Y).Ceil()

	origin := drawOrigin(cfg.Position, bounds.Dx(), bounds.Dy(), textWidth, textHeight)

	overlay := image.NewNRGBA(bounds)
	d := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(textColor),
		Face: face,
		// The drawer's dot is the baseline origin; shift by the bounding box
		// minimum so origin lands on the top-left corner of the text box.
		Dot: fixed.Point26_6{
			X: fixed.I(origin.X) - bbox.Min.X,
			Y: fixed.I(origin.Y) - bbox.Min.Y,
		},
	}
	d.DrawString(cfg.Text)

	draw.Draw(img, bounds, overlay, bounds.Min, draw.Over)

	// Drop the alpha channel; the encoded output is always opaque.
	flattened := image.NewRGBA(bounds)
	draw.Draw(flattened, bounds, img, bounds.Min, draw.Src)
	return flattened
}

// drawOrigin computes the top-left corner of the text box with a fixed inset
// from the relevant edges. Coordinates are intentionally not clamped: text
// larger than the image may start outside the visible area.
func drawOrigin(pos models.Position, width, height, textWidth, textHeight int) image.Point {
	switch pos {
	case models.PositionTopLeft:
		return image.Pt(WatermarkMargin, WatermarkMargin)
	case models.PositionTopRight:
		return image.Pt(width-textWidth-WatermarkMargin, WatermarkMargin)
	case models.PositionBottomLeft:
		return image.Pt(WatermarkMargin, height-textHeight-WatermarkMargin)
	case models.PositionBottomRight:
		return image.Pt(width-textWidth-WatermarkMargin, height-textHeight-WatermarkMargin)
	case models.PositionCenter:
		return image.Pt(width/2-textWidth/2, height/2-textHeight/2)
	}
	// Positions are parsed at the HTTP boundary; an unknown value cannot
	// reach this switch.
	return image.Point{}
}
