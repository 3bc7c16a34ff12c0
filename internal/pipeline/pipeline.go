package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/detection"
	"github.com/ironsheep/image-recognize/internal/imaging"
	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/ocr"
	"github.com/ironsheep/image-recognize/internal/qrcode"
)

// ErrDecode is returned by Recognize when the image cannot be decoded.
var ErrDecode = errors.New("unable to decode image")

// Stage names reported to an Observer.
const (
	StageQR  = "qr"
	StageOCR = "ocr"
)

// Observer receives the duration of each engine call.
type Observer interface {
	ObserveStage(stage string, d time.Duration)
}

// Options tunes a Pipeline. The zero value uses DefaultMaxEdge and a 0.5
// confidence floor.
type Options struct {
	// MaxEdge caps the longer image edge before recognition.
	MaxEdge int

	// MinConfidence is the floor for lines kept in the extracted text.
	MinConfidence float64

	// ColorFilter, when set, is applied to the image before text recognition.
	ColorFilter *imaging.ColorFilter

	Observer Observer
}

// Classification is the outcome of Classify. Side is empty for types that
// have no orientation.
type Classification struct {
	Type model.ImageType
	Side model.Side
}

// Pipeline ties the QR decoder and the text engine to the detectors. It is
// safe for concurrent use when both engines are.
type Pipeline struct {
	decoder qrcode.Decoder
	engine  ocr.Engine
	opts    Options
}

// New returns a Pipeline.
func New(decoder qrcode.Decoder, engine ocr.Engine, opts Options) *Pipeline {
	if opts.MaxEdge == 0 {
		opts.MaxEdge = imaging.DefaultMaxEdge
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = 0.5
	}
	return &Pipeline{decoder: decoder, engine: engine, opts: opts}
}

// Classify returns the image type of the file at path. An undecodable file
// is UNKNOWN; the only errors are context errors.
func (p *Pipeline) Classify(ctx context.Context, path string) (Classification, error) {
	img, err := imaging.Load(path)
	if err != nil {
		logx.WithContext(ctx).Errorf("classify %s: %v", path, err)
		return Classification{Type: model.ImageTypeUnknown}, nil
	}
	return p.classify(ctx, newAnalysis(p, img))
}

func (p *Pipeline) classify(ctx context.Context, a *analysis) (Classification, error) {
	payloads, err := a.qr(ctx)
	if err != nil {
		return Classification{}, err
	}
	if len(payloads) > 0 {
		return Classification{Type: model.ImageTypeQRCode}, nil
	}

	lines, err := a.text(ctx)
	if err != nil {
		return Classification{}, err
	}
	text := detection.NewText(lines)

	documents := []struct {
		typ    model.ImageType
		detect func(detection.Text) detection.Verdict
	}{
		{model.ImageTypeIDCard, detection.IDCard},
		{model.ImageTypeDriverCard, detection.DriverLicense},
		{model.ImageTypeVehicleCard, detection.VehicleLicense},
	}
	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return Classification{}, err
		}
		if v := doc.detect(text); v.Detected {
			return Classification{Type: doc.typ, Side: v.Side}, nil
		}
	}

	if detection.BankCard(text, a.aspect) {
		return Classification{Type: model.ImageTypeBankCard}, nil
	}
	return Classification{Type: model.ImageTypeNormal}, nil
}

// Recognize classifies the image at path and extracts its content.
func (p *Pipeline) Recognize(ctx context.Context, path string) (*model.RecognitionResult, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	a := newAnalysis(p, img)

	cls, err := p.classify(ctx, a)
	if err != nil {
		return nil, err
	}

	res := model.NewResult(cls.Type)
	if cls.Type.HasSide() && cls.Side != "" {
		res.SetSide(cls.Side)
	}

	payloads, err := a.qr(ctx)
	if err != nil {
		return nil, err
	}
	res.QRElapsed = model.Seconds(a.qrElapsed.Seconds())

	if len(payloads) > 0 {
		res.Kind = model.KindQRCode
		res.QRCodes = make([]model.QRCodeInfo, 0, len(payloads))
		for _, raw := range payloads {
			res.QRCodes = append(res.QRCodes, qrcode.Describe(qrcode.PayloadText(raw)))
		}
		first := res.QRCodes[0]
		res.QRContent = first.Content
		res.QRType = first.Code
		res.QRTypeName = first.Name
		return res, nil
	}

	lines, err := a.text(ctx)
	if err != nil {
		return nil, err
	}
	res.TextElapsed = model.Seconds(a.textElapsed.Seconds())

	switch text := ocr.FullText(lines, p.opts.MinConfidence); {
	case a.textErr != nil:
		res.Kind = model.KindError
		res.Error = "文字识别错误: " + a.textErr.Error()
	case text != "":
		res.Kind = model.KindText
		res.OCRContent = text
	default:
		res.Kind = model.KindNone
	}
	return res, nil
}

func (p *Pipeline) observe(stage string, d time.Duration) {
	if p.opts.Observer != nil {
		p.opts.Observer.ObserveStage(stage, d)
	}
}
