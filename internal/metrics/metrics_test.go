package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ironsheep/image-recognize/internal/cache"
	"github.com/ironsheep/image-recognize/internal/model"
)

func TestObserveRecognition(t *testing.T) {
	m := New()
	m.ObserveRecognition(model.NewResult(model.ImageTypeQRCode), false)
	m.ObserveRecognition(model.NewResult(model.ImageTypeQRCode), true)
	m.ObserveRecognition(model.NewResult(model.ImageTypeQRCode), true)

	hits := testutil.ToFloat64(m.recognitions.WithLabelValues(string(model.ImageTypeQRCode), string(model.KindNone), "hit"))
	if hits != 2 {
		t.Errorf("hits: got %v, want 2", hits)
	}
}

func TestObserveStage(t *testing.T) {
	m := New()
	m.ObserveStage("ocr", 120*time.Millisecond)
	m.ObserveStage("qr", 5*time.Millisecond)

	if n := testutil.CollectAndCount(m.stages); n != 2 {
		t.Errorf("stage series: got %d, want 2", n)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	m.WatchCache(func() cache.Stats { return cache.Stats{MemoryHits: 3, Entries: 7} })

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	resp.Body.Close()

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ping", "200")); got != 1 {
		t.Errorf("requests: got %v, want 1", got)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"image_recognize_http_requests_total",
		"image_recognize_cache_memory_hits_total 3",
		"image_recognize_cache_memory_entries 7",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
