package qrcode

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-recognize/internal/imaging"
)

// Decoder finds QR codes in an image and returns their raw payloads in scan
// order. No code is not an error.
type Decoder interface {
	Decode(ctx context.Context, img image.Image) ([][]byte, error)
}

// ZXingDecoder is the production Decoder.
type ZXingDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewZXingDecoder returns a decoder that spends extra effort on each image.
func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode scans img and its enhanced variants until one yields a code.
func (d *ZXingDecoder) Decode(ctx context.Context, img image.Image) ([][]byte, error) {
	for _, variant := range imaging.ScanVariants(img) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payloads, err := d.scan(variant())
		if err != nil {
			return nil, err
		}
		if len(payloads) > 0 {
			return payloads, nil
		}
	}
	return nil, nil
}

func (d *ZXingDecoder) scan(img image.Image) ([][]byte, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare image for QR decoding")
	}

	results, err := multiqr.NewQRCodeMultiReader().DecodeMultiple(bmp, d.hints)
	if err != nil || len(results) == 0 {
		// The multi reader gives up on some single, skewed codes the plain
		// reader still finds.
		result, err := zxingqr.NewQRCodeReader().Decode(bmp, d.hints)
		if err != nil {
			return nil, nil
		}
		results = []*gozxing.Result{result}
	}

	seen := make(map[string]bool, len(results))
	payloads := make([][]byte, 0, len(results))
	for _, r := range results {
		text := r.GetText()
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		payloads = append(payloads, []byte(text))
	}
	return payloads, nil
}
