package project

import (
	"errors"
	"fmt"
)

// Standard errors returned by the project package.
var (
	// ErrNilItem indicates a nil item was passed where one is required.
	ErrNilItem = errors.New("nil item")

	// ErrNilProject indicates a nil project was passed where one is required.
	ErrNilProject = errors.New("nil project")

	// ErrNilWorkspace indicates a nil workspace was passed where one is required.
	ErrNilWorkspace = errors.New("nil workspace")

	// ErrIndexOutOfRange indicates a list index outside [0, Len).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSameDestination indicates a move or copy into the current owner.
	ErrSameDestination = errors.New("destination is the current owner")

	// ErrInvalidDestination indicates a destination that cannot hold items.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrCycle indicates a container would be moved inside itself.
	ErrCycle = errors.New("destination is inside the moved item")

	// ErrItemAttached indicates the item already belongs to a list.
	ErrItemAttached = errors.New("item already belongs to a list")

	// ErrProjectAttached indicates the project already belongs to a list or
	// is embedded in a sub-project.
	ErrProjectAttached = errors.New("project already has an owner")

	// ErrWorkspaceAttached indicates the workspace already belongs to a list.
	ErrWorkspaceAttached = errors.New("workspace already belongs to a list")

	// ErrNotInList indicates the entity is not a member of the list.
	ErrNotInList = errors.New("not in list")

	// ErrDetached indicates the item is not in any list.
	ErrDetached = errors.New("item is not in a list")

	// ErrNoEditor indicates no editor is bound to the item.
	ErrNoEditor = errors.New("no editor bound")

	// ErrNoMainItem indicates a linked group has no resolvable main item.
	ErrNoMainItem = errors.New("no main item")

	// ErrNoPath indicates the entity has no file path.
	ErrNoPath = errors.New("no file path")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrNotDirectory indicates a directory item whose path names a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrMalformed indicates a document that does not match the schema.
	ErrMalformed = errors.New("malformed document")

	// ErrUnknownKind indicates an unrecognized item type.
	ErrUnknownKind = errors.New("unknown item kind")
)

// PathError represents an error associated with a file path.
type PathError struct {
	Op   string // Operation that failed (load, save, mkdir)
	Path string // File path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// DocumentError reports a document that could not be decoded.
type DocumentError struct {
	Path string // Document path, empty for in-memory data
	Err  error  // Wraps ErrMalformed
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, length)
}

// IsNotFound returns true if the error indicates a missing file or path.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformed returns true if the error indicates a malformed document.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
