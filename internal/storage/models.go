// Package storage implements the document-store repositories for the
// users and files collections. Identifiers cross this boundary as
// 24-hex strings and are mapped to native ObjectIDs internally; an
// invalid id is replaced by the never-assigned sentinel so the lookup
// misses instead of failing.
package storage

import "github.com/Fahleh/alx-files-manager/pkg/hexid"

// Collection names.
const (
	CollectionUsers = "users"
	CollectionFiles = "files"
)

// RootParentID marks a file stored at the top of the owner's tree. The
// document store keeps the literal string "0" while real parents are
// stored as ObjectID references.
const RootParentID = "0"

// FileType discriminates folders from regular files and images.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	}
	return false
}

// User is an account record. PasswordHash never leaves the service
// boundary.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
}

// File represents a folder, file or image owned by a user.
type File struct {
	ID        string
	OwnerID   string
	Name      string
	Type      FileType
	IsPublic  bool
	ParentID  string // RootParentID or a 24-hex file id
	LocalPath string // empty for folders
}

// IsRoot reports whether the file sits at the top of the tree.
func (f *File) IsRoot() bool { return f.ParentID == RootParentID }

// WireParentID returns the external representation of the parent: the
// integer 0 at the root, the hex id otherwise.
func (f *File) WireParentID() any {
	if f.IsRoot() {
		return 0
	}
	return f.ParentID
}

func normalizeID(id string) string { return hexid.OrSentinel(id) }
