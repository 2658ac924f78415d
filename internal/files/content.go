package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/Fahleh/alx-files-manager/internal/storage"
)

const fallbackContentType = "text/plain; charset=utf-8"

// Content is an opened file ready to stream. The caller owns the
// ReadCloser.
type Content struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

// OpenContent resolves and opens a file's bytes, optionally a size
// variant ("100", "250", "500"). requesterID may be empty for anonymous
// callers. Denied access and absence both come back as ErrNotFound: the
// guard never reveals whether a private file exists. A variant that the
// worker has not produced yet is equally ErrNotFound.
func (s *Service) OpenContent(ctx context.Context, requesterID, id, size string) (*Content, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	if !f.IsPublic && (requesterID == "" || requesterID != f.OwnerID) {
		return nil, ErrNotFound
	}
	if f.Type == storage.FileTypeFolder {
		return nil, ErrFolderHasNoContent
	}

	path := f.LocalPath
	if size != "" {
		path = f.LocalPath + "_" + size
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Content{
		ReadCloser:  file,
		ContentType: contentTypeFor(f.Name),
		Size:        info.Size(),
	}, nil
}

// contentTypeFor derives the content type from the stored name's
// extension, not from the opaque on-disk filename.
func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return fallbackContentType
}
