package server

import (
	"encoding/json"
	"mime/multipart"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/cache"
	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/service"
)

// Request field names.
const (
	FieldURL    = "image_url"
	FieldBase64 = "image_base64"
	FieldPath   = "image_path"
	FieldFile   = "image"
)

// Envelope messages.
const (
	MsgOK            = "成功"
	MsgTimeoutDetail = "请求处理超时，请稍后重试"
)

const (
	headerCache = "X-Cache"

	// Requests slower than this share of the timeout go to the slow log.
	slowRequestFactor = 0.8
)

type envelope struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    *model.RecognitionResult `json:"data"`
}

// jsonRequest is the JSON form of a /recognize body. Pointers tell an absent
// field from an empty one.
type jsonRequest struct {
	ImageURL    *string `json:"image_url"`
	ImageBase64 *string `json:"image_base64"`
	ImagePath   *string `json:"image_path"`
}

func (s *Server) handleRecognize(c *fiber.Ctx) error {
	ctx := c.UserContext()
	start := time.Now()

	req, err := s.readRequest(c)
	if err != nil {
		return s.fail(c, err)
	}
	logRequest(c, req)

	out, err := s.svc.RecognizeWithTimeout(ctx, req, s.opts.RequestTimeout)
	elapsed := time.Since(start)
	if limit := s.opts.RequestTimeout; limit > 0 && elapsed > time.Duration(float64(limit)*slowRequestFactor) {
		logx.WithContext(ctx).Slowf("recognize took %s of %s", elapsed, limit)
	}
	if err != nil {
		return s.fail(c, err)
	}

	if out.CacheHit {
		c.Set(headerCache, "HIT")
	} else {
		c.Set(headerCache, "MISS")
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveRecognition(out.Result, out.CacheHit)
	}

	logx.WithContext(ctx).WithDuration(elapsed).Infof("recognized %s as %s (%s)",
		out.Key, out.Result.ImageType, out.Result.Kind)
	return c.JSON(envelope{Code: fiber.StatusOK, Message: MsgOK, Data: out.Result})
}

// readRequest picks the first source field present in the body. An upload
// is staged before it returns; the caller owns the staged file via the
// request's Release.
func (s *Server) readRequest(c *fiber.Ctx) (service.Request, error) {
	if c.Is("json") {
		var body jsonRequest
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return service.Request{}, &service.Error{Kind: service.KindInvalidInput, Message: "请求体不是有效的JSON", Err: err}
		}
		switch {
		case body.ImageURL != nil:
			return service.Request{Kind: service.SourceURL, Value: *body.ImageURL}, nil
		case body.ImageBase64 != nil:
			return service.Request{Kind: service.SourceBase64, Value: *body.ImageBase64}, nil
		case body.ImagePath != nil:
			return service.Request{Kind: service.SourcePath, Value: *body.ImagePath}, nil
		}
		return service.Request{}, service.ErrNoInput
	}

	var form *multipart.Form
	if isMultipart(c) {
		f, err := c.MultipartForm()
		if err != nil {
			return service.Request{}, errors.Wrap(err, "failed to parse multipart form")
		}
		form = f
	}

	if v, ok := formValue(c, form, FieldURL); ok {
		return service.Request{Kind: service.SourceURL, Value: v}, nil
	}
	if v, ok := formValue(c, form, FieldBase64); ok {
		return service.Request{Kind: service.SourceBase64, Value: v}, nil
	}
	if v, ok := formValue(c, form, FieldPath); ok {
		return service.Request{Kind: service.SourcePath, Value: v}, nil
	}
	if form != nil {
		if files := form.File[FieldFile]; len(files) > 0 {
			return stageUpload(files[0])
		}
	}
	return service.Request{}, service.ErrNoInput
}

func isMultipart(c *fiber.Ctx) bool {
	return len(c.Request().Header.MultipartFormBoundary()) > 0
}

func formValue(c *fiber.Ctx, form *multipart.Form, key string) (string, bool) {
	if form != nil {
		if v := form.Value[key]; len(v) > 0 {
			return v[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

func stageUpload(fh *multipart.FileHeader) (service.Request, error) {
	f, err := fh.Open()
	if err != nil {
		return service.Request{}, errors.Wrap(err, "failed to open upload")
	}
	defer f.Close()
	return service.StageUpload(f)
}

func logRequest(c *fiber.Ctx, req service.Request) {
	l := logx.WithContext(c.UserContext())
	switch req.Kind {
	case service.SourceBase64:
		l.Infof("recognize request: base64 (%d chars)", len(req.Value))
	default:
		l.Infof("recognize request: %s %s", req.Kind, req.Value)
	}
}

// fail writes the error envelope for err.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()
	code, message, detail := fiber.StatusInternalServerError, err.Error(), err.Error()

	var se *service.Error
	isServiceErr := errors.As(err, &se)
	switch service.KindOf(err) {
	case service.KindInvalidInput:
		code = fiber.StatusBadRequest
	case service.KindNotFound:
		code = fiber.StatusNotFound
	case service.KindTimeout:
		code, detail = fiber.StatusRequestTimeout, MsgTimeoutDetail
	}
	if code != fiber.StatusInternalServerError && isServiceErr && se.Message != "" {
		message = se.Message
	}

	if code == fiber.StatusInternalServerError {
		logx.WithContext(ctx).Errorf("recognize failed: %v", err)
	} else {
		logx.WithContext(ctx).Infof("recognize rejected (%d): %v", code, err)
	}
	return c.JSON(envelope{Code: code, Message: message, Data: model.ErrorResult(detail)})
}

type health struct {
	Status  string      `json:"status"`
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	Time    time.Time   `json:"time"`
	Cache   cache.Stats `json:"cache"`
	Memory  *memory     `json:"memory,omitempty"`
}

type memory struct {
	TotalBytes     uint64  `json:"totalBytes"`
	AvailableBytes uint64  `json:"availableBytes"`
	UsedPercent    float64 `json:"usedPercent"`
	ProcessRSS     uint64  `json:"processRss"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	h := health{
		Status:  "ok",
		Version: s.opts.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Time:    time.Now(),
		Cache:   s.svc.Cache().Stats(),
	}

	if vm, err := mem.VirtualMemoryWithContext(c.UserContext()); err == nil {
		h.Memory = &memory{
			TotalBytes:     vm.Total,
			AvailableBytes: vm.Available,
			UsedPercent:    vm.UsedPercent,
		}
		if p, err := process.NewProcessWithContext(c.UserContext(), int32(os.Getpid())); err == nil {
			if info, err := p.MemoryInfoWithContext(c.UserContext()); err == nil {
				h.Memory.ProcessRSS = info.RSS
			}
		}
	} else {
		logx.WithContext(c.UserContext()).Errorf("host memory unavailable: %v", err)
	}
	return c.JSON(h)
}
