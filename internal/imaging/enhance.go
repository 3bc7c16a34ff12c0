package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

const (
	scanContrast  = 0.5
	scanThreshold = 128
)

// EnhanceForScan returns a sharpened, high-contrast grayscale copy of img.
// Phone photos of printed codes often decode only after this pass.
func EnhanceForScan(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	return effect.Sharpen(adjust.Contrast(gray, scanContrast))
}

// Binarize returns a black and white copy of img split at a mid-gray level.
func Binarize(img image.Image) image.Image {
	return segment.Threshold(effect.Grayscale(img), scanThreshold)
}

// ScanVariants returns the images a barcode decoder should try, in order:
// the original, the enhanced copy and the binarized copy.
func ScanVariants(img image.Image) []func() image.Image {
	return []func() image.Image{
		func() image.Image { return img },
		func() image.Image { return EnhanceForScan(img) },
		func() image.Image { return Binarize(img) },
	}
}
