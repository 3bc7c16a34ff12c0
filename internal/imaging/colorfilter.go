package imaging

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// DefaultInkColor is the near-black of printed document text.
const DefaultInkColor = "#1E1E1E"

// ColorFilter keeps pixels close to a target colour and blanks the rest.
// Applied before text recognition it strips coloured security patterns and
// backgrounds from cards.
type ColorFilter struct {
	target    colorful.Color
	tolerance float64
}

// NewColorFilter parses a "#RRGGBB" target. Tolerance is a CIE Lab distance;
// 0.2 keeps dark grays around black ink.
func NewColorFilter(hex string, tolerance float64) (*ColorFilter, error) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid target colour %q", hex)
	}
	if tolerance <= 0 {
		return nil, errors.Errorf("tolerance must be positive, got %v", tolerance)
	}
	return &ColorFilter{target: target, tolerance: tolerance}, nil
}

// Apply returns a grayscale image where matching pixels are black and all
// others white. Fully transparent pixels never match.
func (f *ColorFilter) Apply(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8(255)
			if c, ok := colorful.MakeColor(img.At(x, y)); ok && c.DistanceLab(f.target) <= f.tolerance {
				v = 0
			}
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}
