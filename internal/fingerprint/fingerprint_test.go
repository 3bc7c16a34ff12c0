package fingerprint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFileIgnoresName(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.png", "hello world")
	b := writeFile(t, dir, "b.jpg", "hello world")

	keyA, err := File(a)
	if err != nil {
		t.Fatalf("File(a): %v", err)
	}
	keyB, err := File(b)
	if err != nil {
		t.Fatalf("File(b): %v", err)
	}

	if keyA != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("File(a): got %s", keyA)
	}
	if keyA != keyB {
		t.Errorf("identical content gave different keys: %s vs %s", keyA, keyB)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"basename stem", "https://example.com/photos/receipt.png", "receipt_3c9215a923"},
		{"no basename", "https://example.com/dir/", "image_13c8e884a3"},
		{"long stem truncated", "https://example.com/averyveryverylongfilename_abcdef.jpg?x=1", "averyveryverylongfil_b629a6298f"},
		{"escaped non-ascii stem", "https://cdn.example.com/img/%E5%9B%BE%E7%89%87.jpg", "图片_05037d950f"},
		{"raw non-ascii stem", "https://cdn.example.com/img/图片.jpg", "图片_9b82836447"},
		{"dot file", "https://example.com/img/.jpg", ".jpg_f2e24a5742"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URL(tt.url); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if URL(tt.url) != URL(tt.url) {
				t.Error("URL key not stable")
			}
		})
	}
}

func TestURLParseFailure(t *testing.T) {
	got := URL("http://exa mple.com/%zz")
	if !strings.HasPrefix(got, "url_") || len(got) != len("url_")+32 {
		t.Errorf("got %s, want url_ + full digest", got)
	}
}

func TestBase64(t *testing.T) {
	if got := Base64("data:image/png;base64,AAAA"); got != "b64_74a2f0f667739cfd62a284688a75dcfd" {
		t.Errorf("got %s", got)
	}

	prefix := strings.Repeat("A", inlinePrefix)
	if Base64(prefix+"tail-one") != Base64(prefix+"tail-two") {
		t.Error("only the first 10000 characters should be hashed")
	}
	if Base64(prefix[:100]) == Base64(prefix[:101]) {
		t.Error("different short payloads should differ")
	}
}
