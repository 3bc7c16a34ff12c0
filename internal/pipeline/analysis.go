package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/imaging"
	"github.com/ironsheep/image-recognize/internal/ocr"
)

// analysis holds one decoded image and the engine outputs computed for it.
type analysis struct {
	p      *Pipeline
	img    image.Image
	aspect float64

	qrDone    bool
	payloads  [][]byte
	qrElapsed time.Duration

	textDone    bool
	lines       []ocr.Line
	textErr     error
	textElapsed time.Duration
}

func (a *analysis) qr(ctx context.Context) ([][]byte, error) {
	if a.qrDone {
		return a.payloads, nil
	}

	start := time.Now()
	payloads, err := a.p.decoder.Decode(ctx, a.img)
	a.qrElapsed = time.Since(start)
	a.p.observe(StageQR, a.qrElapsed)

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logx.WithContext(ctx).Errorf("qr decoding failed: %v", err)
	}
	a.qrDone = true
	a.payloads = payloads
	return a.payloads, nil
}

// text returns the recognized lines. An engine error is remembered and
// returned with an empty line set; only cancellation aborts.
func (a *analysis) text(ctx context.Context) ([]ocr.Line, error) {
	if a.textDone {
		return a.lines, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := a.img
	if a.p.opts.ColorFilter != nil {
		img = a.p.opts.ColorFilter.Apply(img)
	}

	start := time.Now()
	lines, err := a.p.engine.Recognize(ctx, img)
	a.textElapsed = time.Since(start)
	a.p.observe(StageOCR, a.textElapsed)

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logx.WithContext(ctx).Errorf("text recognition failed: %v", err)
		a.textErr = err
		lines = nil
	}
	a.textDone = true
	a.lines = lines
	return a.lines, nil
}

func newAnalysis(p *Pipeline, img image.Image) *analysis {
	return &analysis{
		p:      p,
		img:    imaging.Downscale(img, p.opts.MaxEdge),
		aspect: imaging.AspectRatio(img),
	}
}
