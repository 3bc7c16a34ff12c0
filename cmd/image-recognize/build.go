package main

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/image-recognize/internal/cache"
	"github.com/ironsheep/image-recognize/internal/config"
	"github.com/ironsheep/image-recognize/internal/imaging"
	"github.com/ironsheep/image-recognize/internal/metrics"
	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/ocr/tesseract"
	"github.com/ironsheep/image-recognize/internal/pipeline"
	"github.com/ironsheep/image-recognize/internal/qrcode"
	"github.com/ironsheep/image-recognize/internal/service"
	"github.com/ironsheep/image-recognize/internal/source"
)

// buildService wires the cache, engines, pipeline and fetcher described by
// cfg. m may be nil.
func buildService(cfg *config.Config, m *metrics.Metrics) (*service.Service, error) {
	c, err := cache.New[*model.RecognitionResult](cache.Options{
		Dir:           cfg.Cache.Dir,
		MaxEntries:    cfg.Cache.MaxEntries,
		TTL:           cfg.Cache.TTL,
		SweepInterval: cfg.Cache.SweepInterval,
		MaxAgeDays:    cfg.Cache.MaxAgeDays,
		MaxFiles:      cfg.Cache.MaxFiles,
		SingleFlight:  cfg.Cache.SingleFlight,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache")
	}

	opts := pipeline.Options{
		MaxEdge:       cfg.OCR.MaxEdge,
		MinConfidence: cfg.OCR.MinConfidence,
	}
	if cfg.OCR.ColorFilter {
		filter, err := imaging.NewColorFilter(cfg.OCR.ColorTarget, cfg.OCR.ColorTolerance)
		if err != nil {
			return nil, errors.Wrap(err, "invalid color filter")
		}
		opts.ColorFilter = filter
	}
	if m != nil {
		opts.Observer = m
	}

	engine := tesseract.New(tesseract.Options{
		Languages:      cfg.OCR.Languages,
		TessdataPrefix: cfg.OCR.TessdataPrefix,
	})
	p := pipeline.New(qrcode.NewZXingDecoder(), engine, opts)

	fetcher := source.New(source.Options{
		Dir:        cfg.Cache.Dir,
		KeepImages: cfg.Cache.KeepImages,
		Timeout:    cfg.Server.DownloadTimeout,
	})
	return service.New(c, p, fetcher), nil
}
