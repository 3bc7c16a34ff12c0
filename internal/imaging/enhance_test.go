package imaging

import (
	"image"
	"image/color"
	"testing"
)

func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestBinarize(t *testing.T) {
	out := Binarize(gradient(64, 4))

	b := out.Bounds()
	if b.Dx() != 64 || b.Dy() != 4 {
		t.Fatalf("bounds: got %v", b)
	}
	for x := 0; x < 64; x++ {
		r, _, _, _ := out.At(x, 0).RGBA()
		if v := r >> 8; v != 0 && v != 255 {
			t.Fatalf("pixel %d not binary: %d", x, v)
		}
	}
	if r, _, _, _ := out.At(0, 0).RGBA(); r != 0 {
		t.Error("darkest pixel should be black")
	}
	if r, _, _, _ := out.At(63, 0).RGBA(); r>>8 != 255 {
		t.Error("lightest pixel should be white")
	}
}

func TestEnhanceForScanKeepsSize(t *testing.T) {
	src := gradient(32, 16)
	before := src.RGBAAt(10, 5)
	out := EnhanceForScan(src)
	if b := out.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("bounds: got %v", b)
	}
	if src.RGBAAt(10, 5) != before {
		t.Error("source image was modified")
	}
}

func TestScanVariants(t *testing.T) {
	src := gradient(16, 16)
	variants := ScanVariants(src)
	if len(variants) != 3 {
		t.Fatalf("got %d variants, want 3", len(variants))
	}
	if variants[0]() != image.Image(src) {
		t.Error("first variant should be the original image")
	}
}
