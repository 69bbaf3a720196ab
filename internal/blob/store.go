// Package blob stores binary assets on the local filesystem and hands out the public
// URLs they are served under.
package blob

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mkromann/ugc-builder/internal/errors"
)

var ErrUnsupportedContentType = errors.NewSentinel("unsupported content type")

// MaxUploadBytes caps uploaded files at 5 MB.
const MaxUploadBytes = 5 << 20

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes assets under dir and maps them to URLs below baseURL, which the web
// server serves as static files.
type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create blob directory", slog.String("dir", dir))
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the directory assets are stored under, for mounting a file server.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores data under a fresh uuid-prefixed key derived from filename and returns
// the storage key and public URL. Content types outside the image whitelist are
// rejected.
func (s *Store) Put(data []byte, filename, contentType string) (key string, url string, err error) {
	ext, ok := contentTypeExtensions[contentType]
	if !ok {
		return "", "", errors.Wrap(ErrUnsupportedContentType, "resolve extension",
			slog.String("contentType", contentType))
	}

	base := sanitizeFilename(filename, ext)
	key = fmt.Sprintf("%s-%s", uuid.NewString(), base)

	if err = os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", "", errors.Wrap(err, "write blob", slog.String("key", key))
	}
	return key, fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// sanitizeFilename strips path components and enforces the extension matching the
// declared content type.
func sanitizeFilename(filename, ext string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "-")
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "asset"
	}
	if !strings.HasSuffix(strings.ToLower(base), ext) {
		base += ext
	}
	return base
}
