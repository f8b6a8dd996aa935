package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/project/vfs"
	"github.com/dshills/penv/internal/props"
)

// Workspace is the top-level document: a named list of projects referenced
// by path.
type Workspace struct {
	id       uuid.UUID
	name     string
	path     string
	modified bool
	projects *ProjectList
	props    *props.Set
	list     *WorkspaceList
	env      *Env
	ui       any
}

// NewWorkspace creates an empty, unmodified workspace.
func NewWorkspace(name string, opts ...Option) *Workspace {
	o := applyOptions(opts)
	w := &Workspace{
		id:    uuid.New(),
		name:  name,
		path:  o.path,
		props: props.New(),
		env:   o.env,
	}
	w.projects = newProjectList(w)
	return w
}

// Kind returns KindWorkspace.
func (w *Workspace) Kind() Kind { return KindWorkspace }

// ID returns the workspace identity.
func (w *Workspace) ID() uuid.UUID { return w.id }

// Name returns the display name.
func (w *Workspace) Name() string { return w.name }

// SetName renames the workspace and marks it modified.
func (w *Workspace) SetName(name string) {
	if w.name == name {
		return
	}
	w.name = name
	w.modified = true
}

// Path returns the document path, which may be empty.
func (w *Workspace) Path() string { return w.path }

// SetPath changes the document path and marks the workspace modified.
func (w *Workspace) SetPath(path string) {
	if w.path == path {
		return
	}
	w.path = path
	w.modified = true
}

// Dir returns the directory of the document, or "".
func (w *Workspace) Dir() string {
	if w.path == "" {
		return ""
	}
	return filepath.Dir(w.path)
}

func (w *Workspace) IsModified() bool { return w.modified }
func (w *Workspace) SetModified(flag bool) { w.modified = flag }
func (w *Workspace) Projects() *ProjectList { return w.projects }
func (w *Workspace) Properties() *props.Set { return w.props }
func (w *Workspace) List() *WorkspaceList { return w.list }
func (w *Workspace) UIHandle() any { return w.ui }
func (w *Workspace) SetUIHandle(h any) { w.ui = h }

// SetProperty stores a property and marks the workspace modified when the
// value changed.
func (w *Workspace) SetProperty(key, value string) {
	if w.props.Set(key, value) {
		w.modified = true
	}
}

// Env returns the workspace environment, or the package default.
func (w *Workspace) Env() *Env {
	if w.env != nil {
		return w.env
	}
	if w.list != nil && w.list.env != nil {
		return w.list.env
	}
	return defaultEnv
}

// IsWorkspaceOrProjectModified reports whether the workspace or any of its
// projects has unsaved changes.
func (w *Workspace) IsWorkspaceOrProjectModified() bool {
	if w.modified {
		return true
	}
	for _, p := range w.projects.projects {
		if p.modified {
			return true
		}
	}
	return false
}

func (w *Workspace) logger() *zap.Logger {
	return w.Env().Log.With(zap.String("workspace", w.name))
}

// Save writes the workspace document. Projects are referenced by their path
// relative to the workspace directory; projects without a path cannot be
// referenced and are left out with a warning.
func (w *Workspace) Save() error {
	log := w.logger()
	if w.path == "" {
		log.Warn("save failed", zap.Error(ErrNoPath))
		return ErrNoPath
	}

	env := w.Env()
	data, err := encodeWorkspace(w, env.Indent, log)
	if err != nil {
		log.Error("encode failed", zap.String("path", w.path), zap.Error(err))
		return &PathError{Op: "save", Path: w.path, Err: err}
	}
	if err := env.FS.MkdirAll(w.Dir(), vfs.DirPerm); err != nil {
		log.Warn("save failed", zap.String("path", w.path), zap.Error(err))
		return &PathError{Op: "mkdir", Path: w.Dir(), Err: err}
	}
	if err := env.FS.WriteFile(w.path, data, vfs.FilePerm); err != nil {
		log.Warn("save failed", zap.String("path", w.path), zap.Error(err))
		return &PathError{Op: "save", Path: w.path, Err: err}
	}

	w.modified = false
	log.Debug("workspace saved", zap.String("path", w.path), zap.Int("projects", w.projects.Len()))
	return nil
}

// SaveAs changes the document path and saves.
func (w *Workspace) SaveAs(path string) error {
	w.path = path
	return w.Save()
}

// SaveAll saves every modified project that has a path, then the workspace.
// All failures are reported together.
func (w *Workspace) SaveAll() error {
	var errs []error
	for _, p := range w.projects.projects {
		if !p.modified || p.path == "" {
			continue
		}
		if err := p.Save(); err != nil {
			errs = append(errs, fmt.Errorf("project %q: %w", p.name, err))
		}
	}
	if err := w.Save(); err != nil {
		errs = append(errs, fmt.Errorf("workspace %q: %w", w.name, err))
	}
	return errors.Join(errs...)
}

// Load reads the workspace document and loads every referenced project.
// A project that fails to load is logged and left out; the workspace load
// itself still succeeds. A missing or malformed workspace document fails.
func (w *Workspace) Load() error {
	log := w.logger()
	if w.path == "" {
		log.Warn("load failed", zap.Error(ErrNoPath))
		return ErrNoPath
	}

	data, err := w.Env().FS.ReadFile(w.path)
	if err != nil {
		log.Warn("load failed", zap.String("path", w.path), zap.Error(err))
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Op: "load", Path: w.path, Err: ErrNotFound}
		}
		return &PathError{Op: "load", Path: w.path, Err: err}
	}

	node, err := decodeWorkspace(data)
	if err != nil {
		log.Warn("load failed", zap.String("path", w.path), zap.Error(err))
		return &DocumentError{Path: w.path, Err: err}
	}

	if node.Name != "" {
		w.name = node.Name
	}
	if err := readProps(w.props, node.Properties); err != nil {
		log.Warn("properties skipped", zap.Error(err))
	}

	w.projects.detachAll()
	skipped := 0
	for i, ref := range node.Projects {
		if ref.Path == "" {
			log.Warn("project skipped", zap.Int("index", i), zap.Error(malformed("project reference without path")))
			skipped++
			continue
		}
		p := New(ref.Name, WithPath(resolvePath(w.Dir(), ref.Path)))
		w.projects.attach(p)
		if err := p.Load(); err != nil {
			w.projects.detach(p)
			log.Warn("project skipped", zap.Int("index", i), zap.String("path", p.path), zap.Error(err))
			skipped++
		}
	}

	w.modified = false
	log.Debug("workspace loaded",
		zap.String("path", w.path),
		zap.Int("projects", w.projects.Len()),
		zap.Int("skipped", skipped))
	return nil
}
