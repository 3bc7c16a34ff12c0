package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ironsheep/image-recognize/internal/cache"
)

// DefaultExt is used when a URL carries no recognized image extension.
const DefaultExt = ".jpg"

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".webp": true,
}

var (
	// ErrDownload marks failures to fetch a remote image.
	ErrDownload = errors.New("image download failed")

	// ErrInvalidData marks inline data that is not valid base64.
	ErrInvalidData = errors.New("invalid base64 image data")
)

// Release cleans up after a resolved image.
type Release func()

func noop() {}

// Options configures a Fetcher.
type Options struct {
	// Dir is the cache root image blobs are written to.
	Dir string

	// KeepImages keeps fetched images as "{key}{ext}" in Dir.
	KeepImages bool

	// Timeout bounds a whole download.
	Timeout time.Duration

	// Client overrides the HTTP client. Its own timeout is replaced by Timeout.
	Client *http.Client
}

// Fetcher materializes images from URLs, inline data and uploads.
type Fetcher struct {
	dir        string
	keepImages bool
	client     *http.Client
}

// New returns a Fetcher.
func New(opts Options) *Fetcher {
	client := &http.Client{}
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	}
	client.Timeout = opts.Timeout
	if client.Timeout == 0 {
		client.Timeout = 10 * time.Second
	}
	return &Fetcher{dir: opts.Dir, keepImages: opts.KeepImages, client: client}
}

// ExtFromURL returns the image extension of the URL path, or DefaultExt.
func ExtFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return DefaultExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if !imageExts[ext] {
		return DefaultExt
	}
	return ext
}

// Download fetches rawURL into a local file for the image with the given key.
func (f *Fetcher) Download(ctx context.Context, rawURL, key string) (string, Release, error) {
	ext := ExtFromURL(rawURL)
	if f.keepImages {
		if p := f.blobPath(key, ext); fileExists(p) {
			return p, noop, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, errors.Wrapf(ErrDownload, "invalid url: %v", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, errors.Wrapf(ErrDownload, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, errors.Wrapf(ErrDownload, "status %d", resp.StatusCode)
	}

	p, release, err := f.write(resp.Body, key, ext)
	if err != nil {
		return "", nil, errors.Wrapf(ErrDownload, "%v", err)
	}
	return p, release, nil
}

// DecodeBase64 decodes inline image data. Anything up to and including the
// first comma, such as a "data:image/png;base64," header, is discarded.
// Missing padding and embedded line breaks are tolerated.
func DecodeBase64(data string) ([]byte, error) {
	if i := strings.IndexByte(data, ','); i >= 0 {
		data = data[i+1:]
	}
	data = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, data)

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidData, "%v", err)
	}
	if len(decoded) == 0 {
		return nil, errors.Wrap(ErrInvalidData, "empty payload")
	}
	return decoded, nil
}

// SaveBase64 decodes inline data into a local file for the image with the
// given key.
func (f *Fetcher) SaveBase64(data, key string) (string, Release, error) {
	if f.keepImages {
		if p := f.blobPath(key, DefaultExt); fileExists(p) {
			return p, noop, nil
		}
	}

	decoded, err := DecodeBase64(data)
	if err != nil {
		return "", nil, err
	}
	return f.write(bytes.NewReader(decoded), key, DefaultExt)
}

// StageUpload copies an uploaded file to a uniquely named temporary file so
// it can be fingerprinted by content.
func StageUpload(r io.Reader) (string, Release, error) {
	p := filepath.Join(os.TempDir(), "upload-"+uuid.NewString()+DefaultExt)
	tmp, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create upload file")
	}
	release := func() { remove(p) }

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		release()
		return "", nil, errors.Wrap(err, "failed to save upload")
	}
	if err := tmp.Close(); err != nil {
		release()
		return "", nil, errors.Wrap(err, "failed to save upload")
	}
	return p, release, nil
}

// Adopt takes ownership of a staged upload for the image with the given key.
// With KeepImages the file moves into the cache root; otherwise it stays
// where it is. The returned release replaces the staging one.
func (f *Fetcher) Adopt(staged, key string, release Release) (string, Release, error) {
	if !f.keepImages {
		return staged, release, nil
	}

	p := f.blobPath(key, DefaultExt)
	if err := os.Rename(staged, p); err != nil {
		// Cross-device rename: keep using the staged copy.
		logx.Errorf("source: failed to move upload into cache: %v", err)
		return staged, release, nil
	}
	return p, noop, nil
}

func (f *Fetcher) blobPath(key, ext string) string {
	return filepath.Join(f.dir, key+ext)
}

// write stores r as the blob for key, or as a temporary file when images are
// not kept.
func (f *Fetcher) write(r io.Reader, key, ext string) (string, Release, error) {
	dir, pattern := os.TempDir(), "image-"+key+"-*"+ext
	if f.keepImages {
		dir, pattern = f.dir, cache.TempPattern(key)
	}

	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create image file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		remove(tmpPath)
		return "", nil, errors.Wrap(err, "failed to write image file")
	}
	if err := tmp.Close(); err != nil {
		remove(tmpPath)
		return "", nil, errors.Wrap(err, "failed to write image file")
	}

	if !f.keepImages {
		return tmpPath, func() { remove(tmpPath) }, nil
	}

	p := f.blobPath(key, ext)
	if err := os.Rename(tmpPath, p); err != nil {
		remove(tmpPath)
		return "", nil, errors.Wrap(err, "failed to store image file")
	}
	return p, noop, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func remove(p string) {
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		logx.Errorf("source: failed to remove %s: %v", p, err)
	}
}
