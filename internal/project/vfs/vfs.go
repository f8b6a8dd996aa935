// Package vfs provides the file-system abstraction used by project
// persistence.
//
// Project and workspace documents are read and written through a VFS so the
// hierarchy can be exercised against an in-memory tree in tests and against
// the operating system in production.
package vfs

import (
	"io/fs"
)

// Default permissions for documents and directories created by the project
// hierarchy.
const (
	FilePerm fs.FileMode = 0o644
	DirPerm  fs.FileMode = 0o755
)

// VFS is the subset of file-system operations the project hierarchy needs.
type VFS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	// The parent directory must exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	// It succeeds when the directory already exists.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool
}
