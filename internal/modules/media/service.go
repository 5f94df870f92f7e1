package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 << 20

var (
	ErrNotImage = errors.New("file must be an image")
	ErrTooLarge = errors.New("file must be 5MB or smaller")
)

var extensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/x-icon":  ".ico",
	"image/svg+xml": ".svg",
}

// Service stores product images on disk and hands back their public URL.
type Service struct {
	dir    string
	prefix string
	log    *logrus.Logger
}

func NewService(dir, urlPrefix string, logger *logrus.Logger) *Service {
	return &Service{dir: dir, prefix: "/" + strings.Trim(urlPrefix, "/"), log: logger}
}

// Save validates the content type from the first bytes of r and writes it under a fresh
// name. declared is the client-supplied content type, used when sniffing is inconclusive.
func (s *Service) Save(ctx context.Context, r io.Reader, declared string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") && strings.HasPrefix(declared, "image/") &&
		bytes.Contains(data[:min(len(data), 512)], []byte("<svg")) {
		contentType = "image/svg+xml"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create upload dir %s", s.dir)
	}

	name := uuid.NewString() + extensions[contentType]
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "write upload")
	}

	url := path.Join(s.prefix, name)
	s.log.WithFields(logrus.Fields{"url": url, "bytes": len(data), "type": contentType}).Info("Image uploaded")
	return url, nil
}
