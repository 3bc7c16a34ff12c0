package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no stray .env is read.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Server.RequestTimeout != 30*time.Second || cfg.Server.DownloadTimeout != 10*time.Second {
		t.Errorf("timeouts: got %v / %v", cfg.Server.RequestTimeout, cfg.Server.DownloadTimeout)
	}
	if cfg.Cache.MaxEntries != 2000 || cfg.Cache.TTL != time.Hour || cfg.Cache.MaxAgeDays != 7 || cfg.Cache.MaxFiles != 1000 {
		t.Errorf("cache: got %+v", cfg.Cache)
	}
	if !cfg.Cache.SingleFlight || cfg.Cache.KeepImages {
		t.Errorf("cache flags: got %+v", cfg.Cache)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[0] != "chi_sim" || cfg.OCR.MinConfidence != 0.5 {
		t.Errorf("ocr: got %+v", cfg.OCR)
	}
	if cfg.Log.Dir != "logs" || !cfg.Log.Console {
		t.Errorf("log: got %+v", cfg.Log)
	}
}

func TestLoadEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RECOGNIZE_PORT", "8080")
	t.Setenv("RECOGNIZE_REQUEST_TIMEOUT", "5s")
	t.Setenv("RECOGNIZE_OCR_LANGUAGES", "eng")
	t.Setenv("RECOGNIZE_KEEP_IMAGES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("server: got %+v", cfg.Server)
	}
	if len(cfg.OCR.Languages) != 1 || cfg.OCR.Languages[0] != "eng" {
		t.Errorf("languages: got %v", cfg.OCR.Languages)
	}
	if !cfg.Cache.KeepImages {
		t.Error("keep images not applied")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECOGNIZE_CACHE_DIR=/var/cache/recognize\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("RECOGNIZE_CACHE_DIR") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Dir != "/var/cache/recognize" {
		t.Errorf("cache dir: got %s", cfg.Cache.Dir)
	}
}

func TestLoadInvalid(t *testing.T) {
	chdirTemp(t)

	tests := map[string]string{
		"RECOGNIZE_PORT":               "70000",
		"RECOGNIZE_OCR_MIN_CONFIDENCE": "1.5",
		"RECOGNIZE_CACHE_TTL":          "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s: expected error", key, value)
			}
		})
	}
}
