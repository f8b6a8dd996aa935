package project

import (
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/project/vfs"
)

// DefaultIndent is the number of spaces per nesting level in written
// documents.
const DefaultIndent = 2

// Editor is an open editing window that can persist the content it shows.
type Editor interface {
	Save(path string) error
	Load(path string) error
}

// EditorRegistry resolves the window binding of an item to its editor.
type EditorRegistry interface {
	Editor(windowID string) (Editor, bool)
}

// EditorMap is an EditorRegistry keyed by window id.
type EditorMap map[string]Editor

// Editor returns the editor bound to windowID.
func (m EditorMap) Editor(windowID string) (Editor, bool) {
	ed, ok := m[windowID]
	return ed, ok
}

// Env bundles the collaborators the hierarchy performs I/O and diagnostics
// through. Root projects and workspaces carry one; everything beneath them
// inherits it.
type Env struct {
	FS      vfs.VFS
	Log     *zap.Logger
	Editors EditorRegistry
	Indent  int
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithFS sets the file system.
func WithFS(fs vfs.VFS) EnvOption {
	return func(e *Env) {
		e.FS = fs
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) EnvOption {
	return func(e *Env) {
		e.Log = log
	}
}

// WithEditors sets the editor registry used by file items.
func WithEditors(r EditorRegistry) EnvOption {
	return func(e *Env) {
		e.Editors = r
	}
}

// WithIndent sets the document indentation.
func WithIndent(n int) EnvOption {
	return func(e *Env) {
		e.Indent = n
	}
}

// NewEnv creates an Env. Unset collaborators default to the OS file system,
// a no-op logger and no editors.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{}
	for _, opt := range opts {
		opt(e)
	}
	if e.FS == nil {
		e.FS = vfs.NewOSFS()
	}
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.Indent <= 0 {
		e.Indent = DefaultIndent
	}
	return e
}

// defaultEnv serves entities that are not attached to any root carrying an
// Env of its own.
var defaultEnv = NewEnv()

func (e *Env) editor(windowID string) (Editor, error) {
	if windowID == "" || e.Editors == nil {
		return nil, ErrNoEditor
	}
	ed, ok := e.Editors.Editor(windowID)
	if !ok || ed == nil {
		return nil, ErrNoEditor
	}
	return ed, nil
}
