package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/metrics"
	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/service"
)

// Options configures a Server.
type Options struct {
	// RequestTimeout bounds one recognition. Zero disables the limit.
	RequestTimeout time.Duration

	// BodyLimit caps request bodies in bytes. Zero keeps fiber's default.
	BodyLimit int

	// Version is reported by /health.
	Version string

	// Metrics, when set, instruments requests and serves /metrics.
	Metrics *metrics.Metrics
}

// Server is the HTTP front of a recognition Service.
type Server struct {
	svc     *service.Service
	opts    Options
	app     *fiber.App
	started time.Time
}

// New builds the fiber application and its routes.
func New(svc *service.Service, opts Options) *Server {
	s := &Server{svc: svc, opts: opts, started: time.Now()}

	s.app = fiber.New(fiber.Config{
		AppName:               "image-recognize",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestID())
	s.app.Use(accessLog())
	if opts.Metrics != nil {
		s.app.Use(opts.Metrics.Middleware())
	}

	s.app.Post("/recognize", s.handleRecognize)
	s.app.Get("/health", s.handleHealth)
	if opts.Metrics != nil {
		s.app.Get("/metrics", opts.Metrics.Handler())
	}
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	logx.Infof("listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError turns errors that escape a handler, including recovered
// panics, into an envelope. Routing errors keep their HTTP status.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(envelope{
			Code:    fe.Code,
			Message: fe.Message,
			Data:    model.ErrorResult(fe.Message),
		})
	}

	logx.WithContext(c.UserContext()).Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusOK).JSON(envelope{
		Code:    fiber.StatusInternalServerError,
		Message: err.Error(),
		Data:    model.ErrorResult(err.Error()),
	})
}

// requestID tags each request with an X-Request-ID and carries it in the
// logging context.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.SetUserContext(logx.ContextWithFields(c.UserContext(), logx.Field("requestId", id)))
		return c.Next()
	}
}

func accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logx.WithContext(c.UserContext()).WithDuration(time.Since(start)).
			Infof("%s %s %d", c.Method(), c.Path(), c.Response().StatusCode())
		return err
	}
}
