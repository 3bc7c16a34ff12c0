// Package fingerprint derives cache keys from image sources.
//
// A key is the only identity the cache knows, so the three derivations below
// must stay stable across releases: changing one orphans every entry already
// on disk.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	blockSize = 64 * 1024

	// Only this many leading characters of inline data are hashed.
	inlinePrefix = 10000

	stemLength = 20
	urlHexLen  = 10
)

// File hashes the content of the file at path and returns the hex digest.
// Two files with identical bytes get the same key whatever their names.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file for fingerprint")
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, blockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errors.Wrap(err, "failed to read file for fingerprint")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// URL derives a key from the URL string itself, not the content behind it.
// The key reads "{stem}_{hex10}" where stem is the basename of the URL path
// without its extension, truncated to 20 characters.
func URL(raw string) string {
	sum := md5.Sum([]byte(raw))
	digest := hex.EncodeToString(sum[:])

	u, err := url.Parse(raw)
	if err != nil {
		return "url_" + digest
	}

	return stem(u.Path) + "_" + digest[:urlHexLen]
}

// Base64 derives a key from inline encoded image data.
func Base64(data string) string {
	if len(data) > inlinePrefix {
		data = truncate(data, inlinePrefix)
	}
	sum := md5.Sum([]byte(data))
	return "b64_" + hex.EncodeToString(sum[:])
}

func stem(p string) string {
	filename := p[strings.LastIndex(p, "/")+1:]
	dot := strings.LastIndex(filename, ".")
	if filename == "" || dot < 0 {
		return "image"
	}
	name := filename
	if dot > 0 {
		name = filename[:dot]
	}
	return truncate(name, stemLength)
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
