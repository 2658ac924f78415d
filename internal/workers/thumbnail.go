// Package workers holds the background job handlers consumed from the
// queue: image thumbnail derivation and the welcome email.
package workers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/Fahleh/alx-files-manager/internal/jobs"
	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

// ThumbnailWidths are the derived variants, written alongside the
// original as <localPath>_<width>.
var ThumbnailWidths = []int{500, 250, 100}

// ErrNotAnImage is returned when the referenced file is not an image
// record; the task is not worth retrying.
var ErrNotAnImage = errors.New("file is not an image")

// FileLookup is the slice of the files repository the thumbnailer
// needs.
type FileLookup interface {
	GetOwned(ctx context.Context, id, ownerID string) (*storage.File, error)
}

// Thumbnailer derives the size variants of uploaded images.
type Thumbnailer struct {
	store  FileLookup
	logger *slog.Logger
}

// NewThumbnailer creates the thumbnail job handler.
func NewThumbnailer(store FileLookup, log *slog.Logger) *Thumbnailer {
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Thumbnailer{store: store, logger: log}
}

// Handle resolves the job's file and writes one scaled copy per
// configured width. Already-existing variants are overwritten.
func (t *Thumbnailer) Handle(ctx context.Context, job jobs.Thumbnail) error {
	f, err := t.store.GetOwned(ctx, job.FileID, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to load file %s: %w", job.FileID, err)
	}
	if f.Type != storage.FileTypeImage {
		return ErrNotAnImage
	}

	src, format, err := decodeImage(f.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", job.FileID, err)
	}

	for _, width := range ThumbnailWidths {
		path := fmt.Sprintf("%s_%d", f.LocalPath, width)
		if err := writeScaled(src, format, width, path); err != nil {
			return fmt.Errorf("failed to write %dpx variant: %w", width, err)
		}
		t.logger.Debug("thumbnail written",
			slog.String("file_id", job.FileID),
			slog.Int("width", width),
		)
	}
	return nil
}

func decodeImage(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = file.Close() }()
	return image.Decode(file)
}

func writeScaled(src image.Image, format string, width int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	scaled := scaleToWidth(src, width)
	switch format {
	case "png":
		return png.Encode(out, scaled)
	case "gif":
		return gif.Encode(out, scaled, nil)
	default:
		return jpeg.Encode(out, scaled, nil)
	}
}

// scaleToWidth resizes preserving aspect ratio. Images already at or
// below the target width are returned as is; thumbnails never upscale.
func scaleToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= width {
		return src
	}
	height := srcH * width / srcW
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
