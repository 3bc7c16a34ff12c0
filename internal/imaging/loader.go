package imaging

import (
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxEdge is the longest edge, in pixels, an image keeps before
// recognition.
const DefaultMaxEdge = 1024

// Load opens and decodes the image at path. EXIF orientation is applied so
// that photographed documents come out upright.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return img, nil
}

// Decode reads an image from r, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return img, nil
}

// Downscale shrinks img with bilinear resampling so that neither edge exceeds
// maxEdge, preserving the aspect ratio. Images already within bounds, and a
// non-positive maxEdge, return img unchanged.
func Downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	if maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Linear)
}

// AspectRatio returns width divided by height, or 0 for an empty image.
func AspectRatio(img image.Image) float64 {
	b := img.Bounds()
	if b.Dy() == 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}
