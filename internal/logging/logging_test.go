package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/config"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup(config.Log{Dir: t.TempDir(), Level: "verbose"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetupWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Setup(config.Log{Dir: dir, Level: "info"}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(Close)

	logx.Info("logging test")

	if _, err := os.Stat(filepath.Join(dir, "access.log")); err != nil {
		t.Errorf("access.log not created: %v", err)
	}
}
