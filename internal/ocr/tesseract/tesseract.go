// Package tesseract provides the production ocr.Engine backed by Tesseract
// through gosseract/v2.
package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-recognize/internal/ocr"
)

// DefaultLanguages covers Chinese documents with Latin card numbers and
// brand names.
var DefaultLanguages = []string{"chi_sim", "eng"}

// Options configures an Engine.
type Options struct {
	// Languages are Tesseract language codes; their data files must be
	// installed.
	Languages []string

	// TessdataPrefix overrides the directory holding the language data.
	TessdataPrefix string
}

// Engine runs Tesseract on in-memory images. A fresh gosseract client is
// created per call, so one Engine may be shared across goroutines.
type Engine struct {
	languages      []string
	tessdataPrefix string
}

// New returns an Engine for opts.
func New(opts Options) *Engine {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Engine{
		languages:      languages,
		tessdataPrefix: opts.TessdataPrefix,
	}
}

// Version reports the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}

// Recognize returns the text lines Tesseract finds in img, top level
// RIL_TEXTLINE boxes with confidences scaled to 0.0-1.0. Empty lines are
// dropped.
//
// The context is only checked before the engine starts; a running
// recognition cannot be interrupted.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]ocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "tesseract: failed to encode image")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return nil, errors.Wrap(err, "tesseract: failed to set tessdata prefix")
		}
	}
	if err := client.SetLanguage(e.languages...); err != nil {
		return nil, errors.Wrap(err, "tesseract: failed to set language")
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, errors.Wrap(err, "tesseract: failed to set image")
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, errors.Wrap(err, "tesseract: recognition failed")
	}

	lines := make([]ocr.Line, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, ocr.Line{
			Text:       text,
			Confidence: box.Confidence / 100.0,
			Bounds: ocr.Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}
	return lines, nil
}
