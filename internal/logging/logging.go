// Package logging configures the process-wide go-zero logger.
package logging

import (
	"os"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/config"
)

// ServiceName tags every log line.
const ServiceName = "image-recognize"

var levels = map[string]bool{
	"debug":  true,
	"info":   true,
	"error":  true,
	"severe": true,
}

// Setup writes rotated plain-text logs under cfg.Dir and, when cfg.Console
// is set, mirrors them to stdout. Call Close before exit.
func Setup(cfg config.Log) error {
	if !levels[cfg.Level] {
		return errors.Errorf("unknown log level %q", cfg.Level)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}

	err := logx.SetUp(logx.LogConf{
		ServiceName: ServiceName,
		Mode:        "file",
		Encoding:    "plain",
		Path:        cfg.Dir,
		Level:       cfg.Level,
		Rotation:    "size",
		MaxSize:     10,
		MaxBackups:  5,
		KeepDays:    7,
		Stat:        false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to set up logging")
	}

	if cfg.Console {
		logx.AddWriter(logx.NewWriter(os.Stdout))
	}
	return nil
}

// Close flushes and closes the log files.
func Close() {
	_ = logx.Close()
}
