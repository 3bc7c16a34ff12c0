package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/config"
	"github.com/ironsheep/image-recognize/internal/logging"
	"github.com/ironsheep/image-recognize/internal/metrics"
	"github.com/ironsheep/image-recognize/internal/ocr/tesseract"
	"github.com/ironsheep/image-recognize/internal/server"
	"github.com/ironsheep/image-recognize/internal/service"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		return
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("image-recognize %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Tesseract:  %s\n", tesseract.Version())
		return
	case "--help", "-h", "help":
		usage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if os.Args[1] == "server" {
		applyServerArgs(&cfg.Server, os.Args[2:])
		if err := runServer(cfg); err != nil {
			logx.Errorf("server error: %v", err)
			logging.Close()
			os.Exit(1)
		}
		return
	}

	os.Exit(runOnce(cfg, os.Args[1], os.Stdout))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "image-recognize - image type and content recognition")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-recognize server [port] [host]   Start the HTTP service (default 5000 0.0.0.0)")
	fmt.Fprintln(w, "  image-recognize <http(s)-url>          Download and recognize an image")
	fmt.Fprintln(w, "  image-recognize base64:<data>          Recognize inline base64 data")
	fmt.Fprintln(w, "  image-recognize data:image/...         Recognize a data URI")
	fmt.Fprintln(w, "  image-recognize <path>                 Recognize a local file")
	fmt.Fprintln(w, "  image-recognize version                Print version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from RECOGNIZE_* environment variables and an")
	fmt.Fprintln(w, "optional .env file, e.g. RECOGNIZE_CACHE_DIR, RECOGNIZE_OCR_LANGUAGES,")
	fmt.Fprintln(w, "RECOGNIZE_REQUEST_TIMEOUT, RECOGNIZE_LOG_LEVEL.")
}

// applyServerArgs overrides the port and host with positional arguments. An
// unparsable port keeps the configured one.
func applyServerArgs(s *config.Server, args []string) {
	if len(args) > 0 {
		if port, err := strconv.Atoi(args[0]); err == nil && port > 0 && port <= 65535 {
			s.Port = port
		}
	}
	if len(args) > 1 && args[1] != "" {
		s.Host = args[1]
	}
}

func runServer(cfg *config.Config) error {
	if err := logging.Setup(cfg.Log); err != nil {
		return err
	}
	defer logging.Close()

	m := metrics.New()
	svc, err := buildService(cfg, m)
	if err != nil {
		return err
	}
	m.WatchCache(svc.Cache().Stats)

	report, err := svc.Cache().Sweep(cfg.Cache.MaxAgeDays, cfg.Cache.MaxFiles)
	if err != nil {
		logx.Errorf("startup sweep failed: %v", err)
	} else {
		logx.Infof("startup sweep: %d expired, %d trimmed, %d remaining",
			report.Expired, report.Trimmed, report.Remaining)
	}

	srv := server.New(svc, server.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		BodyLimit:      cfg.Server.BodyLimit,
		Version:        Version,
		Metrics:        m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(cfg.Server.Addr()) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logx.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runOnce recognizes a single image named on the command line and prints
// the result as JSON. It returns the process exit code.
func runOnce(cfg *config.Config, arg string, out io.Writer) int {
	// stdout carries the result
	cfg.Log.Console = false
	if err := logging.Setup(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}
	defer logging.Close()

	req := requestFor(arg)
	if req.Kind == service.SourcePath {
		if info, err := os.Stat(req.Value); err != nil || info.IsDir() {
			fmt.Fprintf(out, "%s - %s\n", service.MsgNotFound, req.Value)
			return 1
		}
	}

	svc, err := buildService(cfg, nil)
	if err != nil {
		printJSON(out, cliError{Type: "error", Data: err.Error()})
		return 1
	}

	res, err := svc.RecognizeWithTimeout(context.Background(), req, cfg.Server.RequestTimeout)
	if err != nil {
		printJSON(out, cliError{Type: "error", Data: err.Error()})
		return 1
	}
	printJSON(out, res.Result)
	return 0
}

// requestFor maps a command-line argument to its image source.
func requestFor(arg string) service.Request {
	switch {
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return service.Request{Kind: service.SourceURL, Value: arg}
	case strings.HasPrefix(arg, "base64:"):
		return service.Request{Kind: service.SourceBase64, Value: strings.TrimPrefix(arg, "base64:")}
	case strings.HasPrefix(arg, "data:image"):
		return service.Request{Kind: service.SourceBase64, Value: arg}
	}
	return service.Request{Kind: service.SourcePath, Value: arg}
}

type cliError struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

func printJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
	}
}
