package project

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/project/vfs"
	"github.com/dshills/penv/internal/props"
)

// Option configures a Project or Workspace at construction.
type Option func(*options)

type options struct {
	path string
	env  *Env
}

// WithPath sets the document path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithEnv sets the environment the entity and everything beneath it
// performs I/O and logging through.
func WithEnv(env *Env) Option {
	return func(o *options) {
		o.env = env
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Project is a named, file-backed collection of items.
//
// A project belongs to at most one of a ProjectList or a host SubProject.
// While embedded, modifications propagate through the host to the project
// around it.
type Project struct {
	id       uuid.UUID
	name     string
	path     string
	modified bool
	items    *ItemList
	props    *props.Set
	list     *ProjectList
	host     *SubProject
	env      *Env
	ui       any
}

// New creates a detached, unmodified project.
func New(name string, opts ...Option) *Project {
	o := applyOptions(opts)
	p := &Project{
		id:    uuid.New(),
		name:  name,
		path:  o.path,
		props: props.New(),
		env:   o.env,
	}
	p.items = newItemList(p)
	return p
}

// Kind returns KindProject.
func (p *Project) Kind() Kind { return KindProject }

// ID returns the project identity.
func (p *Project) ID() uuid.UUID { return p.id }

// Name returns the display name.
func (p *Project) Name() string { return p.name }

// SetName renames the project and marks it modified.
func (p *Project) SetName(name string) {
	if p.name == name {
		return
	}
	p.name = name
	p.touch()
}

// Path returns the document path, which may be empty.
func (p *Project) Path() string { return p.path }

// SetPath changes the document path and marks the project modified.
func (p *Project) SetPath(path string) {
	if p.path == path {
		return
	}
	p.path = path
	p.touch()
}

// Dir returns the directory of the document, or "" when the project has no
// path.
func (p *Project) Dir() string {
	path := p.documentPath()
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}

// documentPath is the file the project reads and writes. A relative path is
// resolved against the project embedding it, or else against the directory
// of its workspace.
func (p *Project) documentPath() string {
	switch {
	case p.host != nil:
		return p.host.GetPath()
	case p.list != nil && p.list.ws != nil && p.list.ws.path != "":
		return resolvePath(p.list.ws.Dir(), p.path)
	}
	return p.path
}

// IsModified reports whether the project has unsaved changes.
func (p *Project) IsModified() bool { return p.modified }

// SetModified sets the dirty flag. Setting it propagates like any other
// change; clearing it affects only this project.
func (p *Project) SetModified(flag bool) {
	if flag {
		p.touch()
		return
	}
	p.modified = false
}

// touch marks the project and every project enclosing it modified.
func (p *Project) touch() {
	p.items.Modified(true)
}

// Items returns the top-level item list.
func (p *Project) Items() *ItemList { return p.items }

// Properties returns the property set. Changes made directly on the set do
// not mark the project modified; use SetProperty for that.
func (p *Project) Properties() *props.Set { return p.props }

// SetProperty stores a property and marks the project modified when the
// value changed.
func (p *Project) SetProperty(key, value string) {
	if p.props.Set(key, value) {
		p.touch()
	}
}

// List returns the owning project list, or nil.
func (p *Project) List() *ProjectList { return p.list }

// Workspace returns the owning workspace, or nil.
func (p *Project) Workspace() *Workspace {
	if p.list == nil {
		return nil
	}
	return p.list.ws
}

// Host returns the SubProject embedding this project, or nil.
func (p *Project) Host() *SubProject { return p.host }

// IsEmbedded reports whether the project is the payload of a SubProject.
func (p *Project) IsEmbedded() bool { return p.host != nil }

// Env returns the environment in effect: the project's own, else the one
// inherited from its host or workspace, else the package default.
func (p *Project) Env() *Env {
	switch {
	case p.env != nil:
		return p.env
	case p.host != nil:
		return p.host.env()
	case p.list != nil && p.list.ws != nil:
		return p.list.ws.Env()
	}
	return defaultEnv
}

func (p *Project) UIHandle() any     { return p.ui }
func (p *Project) SetUIHandle(h any) { p.ui = h }

// Clone deep-copies the name, path, properties and items. The clone is
// detached, unmodified and shares the environment of the source.
func (p *Project) Clone() *Project {
	c := New(p.name)
	c.path = p.path
	c.props = p.props.Clone()
	c.env = p.env
	p.items.cloneInto(c.items)
	return c
}

func (p *Project) logger() *zap.Logger {
	return p.Env().Log.With(zap.String("project", p.name))
}

// Save writes the project document to its path, creating the directory
// when needed, and clears the dirty flag.
func (p *Project) Save() error {
	log := p.logger()
	path := p.documentPath()
	if path == "" {
		log.Warn("save failed", zap.Error(ErrNoPath))
		return ErrNoPath
	}

	env := p.Env()
	data, err := encodeProject(p, env.Indent)
	if err != nil {
		log.Error("encode failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "save", Path: path, Err: err}
	}
	if err := env.FS.MkdirAll(p.Dir(), vfs.DirPerm); err != nil {
		log.Warn("save failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "mkdir", Path: p.Dir(), Err: err}
	}
	if err := env.FS.WriteFile(path, data, vfs.FilePerm); err != nil {
		log.Warn("save failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "save", Path: path, Err: err}
	}

	p.modified = false
	log.Debug("project saved", zap.String("path", path), zap.Int("items", p.items.Len()))
	return nil
}

// SaveAs changes the document path and saves.
func (p *Project) SaveAs(path string) error {
	p.path = path
	return p.Save()
}

// Load reads the project document and replaces the name, properties and
// items. Items that fail to decode are logged and skipped. A successful
// load clears the dirty flag.
func (p *Project) Load() error {
	log := p.logger()
	path := p.documentPath()
	if path == "" {
		log.Warn("load failed", zap.Error(ErrNoPath))
		return ErrNoPath
	}

	data, err := p.Env().FS.ReadFile(path)
	if err != nil {
		log.Warn("load failed", zap.String("path", path), zap.Error(err))
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Op: "load", Path: path, Err: ErrNotFound}
		}
		return &PathError{Op: "load", Path: path, Err: err}
	}

	node, err := decodeProject(data)
	if err != nil {
		log.Warn("load failed", zap.String("path", path), zap.Error(err))
		return &DocumentError{Path: path, Err: err}
	}

	skipped := p.apply(node)
	p.modified = false
	log.Debug("project loaded",
		zap.String("path", path),
		zap.Int("items", p.items.Len()),
		zap.Int("skipped", skipped))
	return nil
}
