package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestNewColorFilter_Errors(t *testing.T) {
	if _, err := NewColorFilter("not-a-colour", 0.2); err == nil {
		t.Error("expected error for bad hex")
	}
	if _, err := NewColorFilter(DefaultInkColor, 0); err == nil {
		t.Error("expected error for zero tolerance")
	}
}

func TestColorFilterApply(t *testing.T) {
	f, err := NewColorFilter(DefaultInkColor, 0.2)
	if err != nil {
		t.Fatalf("NewColorFilter: %v", err)
	}

	img := image.NewRGBA(image.Rect(10, 10, 14, 11))
	img.Set(10, 10, color.RGBA{30, 30, 30, 255})  // ink
	img.Set(11, 10, color.RGBA{0, 0, 0, 255})     // black, close to ink
	img.Set(12, 10, color.RGBA{220, 40, 40, 255}) // red pattern
	img.Set(13, 10, color.RGBA{0, 0, 0, 0})       // transparent

	out := f.Apply(img)
	if b := out.Bounds(); b.Min.X != 0 || b.Dx() != 4 || b.Dy() != 1 {
		t.Fatalf("bounds: got %v", b)
	}

	want := []uint8{0, 0, 255, 255}
	for x, w := range want {
		if got := out.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d: got %d, want %d", x, got, w)
		}
	}
}
