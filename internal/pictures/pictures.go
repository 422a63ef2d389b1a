// Package pictures stores resized profile pictures under generated names.
package pictures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// DefaultSize is the bounding box, in pixels, every stored picture fits into.
const DefaultSize = 125

// MaxPixels bounds the declared dimensions of an upload before it is decoded.
const MaxPixels = 24_000_000

// ErrInvalidImage is returned when the upload cannot be decoded or encoded as an image.
var ErrInvalidImage = errors.New("invalid image")

// Store writes pictures into a single directory.
type Store struct {
	dir  string
	size int
}

// New creates a Store writing into dir. Non-positive size falls back to DefaultSize.
func New(dir string, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{dir: dir, size: size}
}

// Save decodes src, shrinks it to fit the bounding box keeping its aspect ratio
// and writes it under a random name carrying the extension of filename.
// The original name is otherwise discarded. Returns the stored file name.
// Images declaring more than MaxPixels are rejected without being decoded.
// Nothing is left on disk when Save fails.
func (s *Store) Save(ctx context.Context, src io.Reader, filename string) (string, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(filename)

	data, err := io.ReadAll(src)
	if err != nil {
		logger.Log.Errorw("failed to read picture", "filename", filename, "error", err)
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logger.Log.Warnw("failed to decode picture header", "filename", filename, "error", err)
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		logger.Log.Warnw("picture dimensions rejected", "filename", filename, "width", cfg.Width, "height", cfg.Height)
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		logger.Log.Warnw("failed to decode picture", "filename", filename, "error", err)
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// Fit never upscales: smaller images are stored as they are.
	thumb := imaging.Fit(img, s.size, s.size, imaging.Lanczos)

	path := filepath.Join(s.dir, name)
	if err := imaging.Save(thumb, path); err != nil {
		_ = os.Remove(path)
		logger.Log.Errorw("failed to save picture", "path", path, "error", err)
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return "", err
	}

	logger.Log.Infow("picture saved", "name", name, "width", thumb.Bounds().Dx(), "height", thumb.Bounds().Dy())
	return name, nil
}

// Remove deletes a stored picture. The default picture is never removed.
func (s *Store) Remove(ctx context.Context, name string) error {
	if name == "" || name == models.DefaultImageFile {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// EnsureDefault creates the directory and a plain default picture when missing.
func (s *Store) EnsureDefault() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(s.dir, models.DefaultImageFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	img := imaging.New(s.size, s.size, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
	return imaging.Save(img, path)
}
