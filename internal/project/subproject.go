package project

import (
	"github.com/dshills/penv/internal/notify"
	"github.com/dshills/penv/internal/props"
)

// SubProject is an item that embeds a whole Project. Name, properties and
// children belong to the embedded project; the item supplies the tree
// position, window binding and UI handle.
type SubProject struct {
	itemBase
	project *Project
}

// NewSubProject creates a detached sub-project with an empty embedded
// project.
func NewSubProject(name string) *SubProject {
	return newSubProject(New(name))
}

func newSubProject(p *Project) *SubProject {
	s := &SubProject{project: p}
	s.init(s, p.name)
	s.props = p.props
	p.host = s
	return s
}

// Kind returns KindSubProject.
func (s *SubProject) Kind() Kind { return KindSubProject }

// Embedded returns the embedded project.
func (s *SubProject) Embedded() *Project { return s.project }

// Items returns the embedded project's item list.
func (s *SubProject) Items() *ItemList { return s.project.items }

// Name returns the embedded project's name.
func (s *SubProject) Name() string { return s.project.name }

// SetName renames the embedded project.
func (s *SubProject) SetName(name string) {
	s.project.SetName(name)
}

// Properties returns the embedded project's properties.
func (s *SubProject) Properties() *props.Set { return s.project.props }

// Path returns the embedded project's file path, which may be empty.
func (s *SubProject) Path() string { return s.project.path }

// SetPath sets the embedded project's file path.
func (s *SubProject) SetPath(path string) {
	if s.project.path == path {
		return
	}
	s.project.path = path
	s.project.touch()
}

// GetPath returns the embedded project's file path resolved against the
// project around it.
func (s *SubProject) GetPath() string {
	return resolvePath(baseDir(s.list), s.project.path)
}

// Save does nothing; the embedded project's Save is authoritative.
func (s *SubProject) Save(_ notify.Sink) error { return nil }

// Load does nothing; the embedded project's Load is authoritative.
func (s *SubProject) Load() error { return nil }

// Clone returns a detached copy embedding a clone of the project.
func (s *SubProject) Clone() Item {
	c := newSubProject(s.project.Clone())
	c.virtual = s.virtual
	c.windowClass = s.windowClass
	return c
}
