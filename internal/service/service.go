// Package service composes the recognition path shared by the HTTP server and
// the CLI: fingerprint the source, consult the cache, and on a miss resolve
// the image, run the pipeline and store the result.
package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/cache"
	"github.com/ironsheep/image-recognize/internal/fingerprint"
	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/pipeline"
	"github.com/ironsheep/image-recognize/internal/source"
)

// SourceKind names the form an image arrived in.
type SourceKind string

const (
	SourceURL    SourceKind = "url"
	SourceBase64 SourceKind = "base64"
	SourcePath   SourceKind = "path"
	SourceUpload SourceKind = "upload"
)

// Request carries exactly one image source. For uploads, Value is the path
// of the staged file and Release removes it.
type Request struct {
	Kind    SourceKind
	Value   string
	Release source.Release
}

// Outcome is a recognition result and whether it came from the cache.
type Outcome struct {
	Result   *model.RecognitionResult
	CacheHit bool
	Key      string
}

// Recognizer runs the pipeline on a local file.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (*model.RecognitionResult, error)
}

// Service is the composition root of a recognition request.
type Service struct {
	cache    *cache.Cache[*model.RecognitionResult]
	pipeline Recognizer
	fetcher  *source.Fetcher
}

// New returns a Service.
func New(c *cache.Cache[*model.RecognitionResult], p Recognizer, f *source.Fetcher) *Service {
	return &Service{cache: c, pipeline: p, fetcher: f}
}

// Cache exposes the result cache for health reporting and sweeping.
func (s *Service) Cache() *cache.Cache[*model.RecognitionResult] {
	return s.cache
}

// Recognize resolves req and returns its recognition result. Files created
// for the request, including a staged upload, are removed before it returns.
func (s *Service) Recognize(ctx context.Context, req Request) (*Outcome, error) {
	if req.Release != nil {
		defer req.Release()
	}

	switch req.Kind {
	case SourceURL:
		key := fingerprint.URL(req.Value)
		return s.load(ctx, key, func() (string, source.Release, error) {
			p, release, err := s.fetcher.Download(ctx, req.Value, key)
			if err != nil {
				return "", nil, newError(KindDownload, "", err)
			}
			return p, release, nil
		})

	case SourceBase64:
		key := fingerprint.Base64(req.Value)
		return s.load(ctx, key, func() (string, source.Release, error) {
			p, release, err := s.fetcher.SaveBase64(req.Value, key)
			if err != nil {
				if errors.Is(err, source.ErrInvalidData) {
					return "", nil, newError(KindDecode, "", err)
				}
				return "", nil, err
			}
			return p, release, nil
		})

	case SourcePath:
		if !isFile(req.Value) {
			return nil, newError(KindNotFound, MsgNotFound, errors.Errorf("%s", req.Value))
		}
		key, err := fingerprint.File(req.Value)
		if err != nil {
			return nil, err
		}
		return s.load(ctx, key, func() (string, source.Release, error) {
			return req.Value, func() {}, nil
		})

	case SourceUpload:
		key, err := fingerprint.File(req.Value)
		if err != nil {
			return nil, err
		}
		return s.load(ctx, key, func() (string, source.Release, error) {
			return s.fetcher.Adopt(req.Value, key, func() {})
		})
	}
	return nil, ErrNoInput
}

// load serves key from the cache or resolves the image and runs the
// pipeline on it.
//
// Concurrent misses for one key share a single computation that runs under
// the context of whichever caller started it. When that caller gives up, the
// others see its cancellation; each of them still inside its own budget
// starts over instead of failing.
func (s *Service) load(ctx context.Context, key string, resolve func() (string, source.Release, error)) (*Outcome, error) {
	for {
		result, hit, err := s.cache.Load(key, func() (*model.RecognitionResult, error) {
			res, err := s.compute(ctx, resolve)
			if err != nil && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return res, err
		})
		if err != nil {
			if isContextErr(err) && ctx.Err() == nil {
				logx.WithContext(ctx).Infof("shared recognition of %s was abandoned, retrying", key)
				continue
			}
			return nil, err
		}

		if hit {
			logx.WithContext(ctx).Infof("cache hit for %s", key)
		}
		return &Outcome{Result: result, CacheHit: hit, Key: key}, nil
	}
}

func (s *Service) compute(ctx context.Context, resolve func() (string, source.Release, error)) (*model.RecognitionResult, error) {
	p, release, err := resolve()
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.pipeline.Recognize(ctx, p)
	if err != nil {
		if errors.Is(err, pipeline.ErrDecode) {
			return nil, newError(KindDecode, "", err)
		}
		return nil, err
	}
	return res, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RecognizeWithTimeout runs Recognize on its own goroutine and gives up after
// timeout. The abandoned work is canceled and stops at its next stage
// boundary; its files are still cleaned up when it returns.
func (s *Service) RecognizeWithTimeout(ctx context.Context, req Request, timeout time.Duration) (*Outcome, error) {
	if timeout <= 0 {
		return s.Recognize(ctx, req)
	}

	ctx, cancel := context.WithCancel(ctx)
	type reply struct {
		out *Outcome
		err error
	}
	done := make(chan reply, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- reply{err: errors.Errorf("panic during recognition: %v", p)}
			}
		}()
		out, err := s.Recognize(ctx, req)
		done <- reply{out, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		cancel()
		return r.out, r.err
	case <-timer.C:
		cancel()
		return nil, ErrTimeout
	case <-ctx.Done():
		cancel()
		return nil, ErrTimeout
	}
}

// StageUpload saves an uploaded file and returns the matching request.
func StageUpload(r io.Reader) (Request, error) {
	p, release, err := source.StageUpload(r)
	if err != nil {
		return Request{}, err
	}
	return Request{Kind: SourceUpload, Value: p, Release: release}, nil
}

func isFile(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
