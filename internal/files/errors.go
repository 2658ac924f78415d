package files

import "errors"

var (
	// ErrMissingName is returned when an upload has no name.
	ErrMissingName = errors.New("missing name")
	// ErrMissingType is returned when the type is absent or unknown.
	ErrMissingType = errors.New("missing type")
	// ErrMissingData is returned when a non-folder upload carries no
	// decodable content.
	ErrMissingData = errors.New("missing data")
	// ErrParentNotFound is returned when the parent id resolves to
	// nothing.
	ErrParentNotFound = errors.New("parent not found")
	// ErrParentNotAFolder is returned when the parent exists but is not
	// a folder.
	ErrParentNotAFolder = errors.New("parent is not a folder")
	// ErrNotFound covers both absence and denied access; the two are
	// indistinguishable on purpose so existence never leaks.
	ErrNotFound = errors.New("file not found")
	// ErrFolderHasNoContent is returned when content is requested for a
	// folder.
	ErrFolderHasNoContent = errors.New("folder has no content")
)
