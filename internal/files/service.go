// Package files implements the tree-structured file model: the upload
// pipeline, the paginated listing engine, visibility flips and the
// content access guard.
package files

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Fahleh/alx-files-manager/internal/jobs"
	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

// PageSize is the fixed number of records per listing page.
const PageSize = 20

// Config holds the content-directory settings.
type Config struct {
	Root string `env:"FOLDER_PATH" envDefault:"/tmp/files_manager"` // Root is the directory uploaded bytes are persisted under.
}

// FileStore is the slice of the files repository the service needs.
type FileStore interface {
	Create(ctx context.Context, f *storage.File) (*storage.File, error)
	GetByID(ctx context.Context, id string) (*storage.File, error)
	GetOwned(ctx context.Context, id, ownerID string) (*storage.File, error)
	ListByParent(ctx context.Context, ownerID, parentID string, page, pageSize int) ([]storage.File, error)
	SetPublic(ctx context.Context, id, ownerID string, public bool) error
}

// Enqueuer hands background jobs off without waiting on them.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any) error
}

// Service orchestrates uploads, listings and content access.
type Service struct {
	store    FileStore
	enqueuer Enqueuer
	root     string
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithEnqueuer enables the thumbnail handoff for image uploads.
func WithEnqueuer(enq Enqueuer) Option {
	return func(s *Service) { s.enqueuer = enq }
}

// New creates the files service persisting content under cfg.Root.
func New(store FileStore, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:  store,
		root:   cfg.Root,
		logger: logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View is the normalized outward representation of a file. The root
// parent appears as the integer 0; localPath never appears.
type View struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID any    `json:"parentId"`
}

func toView(f *storage.File) *View {
	return &View{
		ID:       f.ID,
		UserID:   f.OwnerID,
		Name:     f.Name,
		Type:     string(f.Type),
		IsPublic: f.IsPublic,
		ParentID: f.WireParentID(),
	}
}

// UploadInput is a validated-on-entry upload request.
type UploadInput struct {
	OwnerID  string
	Name     string
	Type     string
	ParentID string // empty or "0" means root
	IsPublic bool
	Data     string // base64-encoded content, required unless Type is folder
}

// Upload runs the pipeline: validate, persist bytes, insert the record,
// and for images enqueue the thumbnail derivation. Validation failures
// abort before any disk or database mutation; the record is inserted
// only after the content write completed.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*View, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	kind := storage.FileType(in.Type)
	if !kind.Valid() {
		return nil, ErrMissingType
	}
	if in.Data == "" && kind != storage.FileTypeFolder {
		return nil, ErrMissingData
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = storage.RootParentID
	}
	if parentID != storage.RootParentID {
		parent, err := s.store.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to resolve parent: %w", err)
		}
		if parent.Type != storage.FileTypeFolder {
			return nil, ErrParentNotAFolder
		}
	}

	var data []byte
	if kind != storage.FileTypeFolder {
		decoded, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, ErrMissingData
		}
		data = decoded
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}

	record := &storage.File{
		OwnerID:  in.OwnerID,
		Name:     in.Name,
		Type:     kind,
		IsPublic: in.IsPublic,
		ParentID: parentID,
	}

	if kind != storage.FileTypeFolder {
		// Random filename: concurrent uploads never contend on a path.
		localPath := filepath.Join(s.root, uuid.NewString())
		if err := os.WriteFile(localPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write content: %w", err)
		}
		record.LocalPath = localPath
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	if kind == storage.FileTypeImage && s.enqueuer != nil {
		if err := s.enqueuer.Enqueue(ctx, jobs.Thumbnail{UserID: created.OwnerID, FileID: created.ID}); err != nil {
			s.logger.Error("failed to enqueue thumbnail job",
				slog.String("file_id", created.ID),
				slog.Any("error", err),
			)
		}
	}

	return toView(created), nil
}

// Show returns one of the caller's files by id.
func (s *Service) Show(ctx context.Context, ownerID, id string) (*View, error) {
	f, err := s.store.GetOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return toView(f), nil
}

// List returns one page of the caller's files under a parent, newest
// first. A page past the end is an empty slice, never an error.
func (s *Service) List(ctx context.Context, ownerID, parentID string, page int) ([]View, error) {
	if parentID == "" {
		parentID = storage.RootParentID
	}
	if page < 0 {
		page = 0
	}

	records, err := s.store.ListByParent(ctx, ownerID, parentID, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	views := make([]View, 0, len(records))
	for i := range records {
		views = append(views, *toView(&records[i]))
	}
	return views, nil
}

// SetPublic flips the visibility flag on one of the caller's files and
// returns the updated representation.
func (s *Service) SetPublic(ctx context.Context, ownerID, id string, public bool) (*View, error) {
	f, err := s.store.GetOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	if err := s.store.SetPublic(ctx, id, ownerID, public); err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}

	f.IsPublic = public
	return toView(f), nil
}
