package project

import (
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
)

// ProjectList is the ordered list of projects owned by a workspace.
type ProjectList struct {
	ws       *Workspace
	projects []*Project
}

func newProjectList(ws *Workspace) *ProjectList {
	return &ProjectList{ws: ws}
}

// Workspace returns the owning workspace.
func (l *ProjectList) Workspace() *Workspace { return l.ws }

// Len returns the number of projects.
func (l *ProjectList) Len() int { return len(l.projects) }

// At returns the project at index, or nil when index is out of range.
func (l *ProjectList) At(index int) *Project {
	if index < 0 || index >= len(l.projects) {
		return nil
	}
	return l.projects[index]
}

// Projects returns a copy of the projects in order.
func (l *ProjectList) Projects() []*Project {
	return slices.Clone(l.projects)
}

// IndexOf returns the position of p, or -1.
func (l *ProjectList) IndexOf(p *Project) int {
	return slices.Index(l.projects, p)
}

// Find returns the first project named name, or nil.
func (l *ProjectList) Find(name string) *Project {
	for _, p := range l.projects {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Add appends p and marks the workspace modified.
func (l *ProjectList) Add(p *Project) error {
	return l.Insert(len(l.projects), p)
}

// Insert places p at index and marks the workspace modified. A project that
// already belongs to a list or is embedded in a sub-project is refused.
func (l *ProjectList) Insert(index int, p *Project) error {
	if p == nil {
		return l.reject("add", ErrNilProject)
	}
	if p.list != nil || p.host != nil {
		return l.reject("add", ErrProjectAttached, zap.String("project", p.name))
	}
	if index < 0 || index > len(l.projects) {
		return l.reject("add", indexError(index, len(l.projects)+1), zap.String("project", p.name))
	}
	l.projects = slices.Insert(l.projects, index, p)
	p.list = l
	l.Modified(true)
	return nil
}

// Remove detaches the project at index and returns it.
func (l *ProjectList) Remove(index int) (*Project, error) {
	if index < 0 || index >= len(l.projects) {
		return nil, l.reject("remove", indexError(index, len(l.projects)))
	}
	p := l.projects[index]
	l.projects = slices.Delete(l.projects, index, index+1)
	p.list = nil
	l.Modified(true)
	return p, nil
}

// Modified sets the dirty flag of the owning workspace.
func (l *ProjectList) Modified(flag bool) {
	if l.ws != nil {
		l.ws.modified = flag
	}
}

// MoveProject moves the project at index into dst. Both workspaces are
// marked modified and TopicProjectMoved is raised.
func (l *ProjectList) MoveProject(index int, dst *Workspace, sink notify.Sink) error {
	if index < 0 || index >= len(l.projects) {
		return l.reject("move", indexError(index, len(l.projects)))
	}
	p := l.projects[index]
	if dst == nil {
		return l.reject("move", ErrNilWorkspace, zap.String("project", p.name))
	}
	to := dst.projects
	if to == l {
		return l.reject("move", ErrSameDestination, zap.String("project", p.name))
	}

	l.projects = slices.Delete(l.projects, index, index+1)
	to.projects = append(to.projects, p)
	p.list = to
	l.Modified(true)
	to.Modified(true)

	l.logger().Debug("project moved",
		zap.String("project", p.name),
		zap.String("to", dst.name))
	notify.Publish(sink, TopicProjectMoved, ProjectMoved{Project: p, From: l.ws, To: dst})
	return nil
}

// CopyProject appends a clone of the project at index to dst. Only dst is
// marked modified. The clone keeps the source document path so it can be
// saved next to it under a new name.
func (l *ProjectList) CopyProject(index int, dst *Workspace, sink notify.Sink) error {
	if index < 0 || index >= len(l.projects) {
		return l.reject("copy", indexError(index, len(l.projects)))
	}
	p := l.projects[index]
	if dst == nil {
		return l.reject("copy", ErrNilWorkspace, zap.String("project", p.name))
	}
	to := dst.projects
	if to == l {
		return l.reject("copy", ErrSameDestination, zap.String("project", p.name))
	}

	clone := p.Clone()
	to.projects = append(to.projects, clone)
	clone.list = to
	to.Modified(true)

	l.logger().Debug("project copied",
		zap.String("project", p.name),
		zap.String("to", dst.name))
	notify.Publish(sink, TopicProjectCopied, ProjectCopied{Source: p, Copy: clone, To: dst})
	return nil
}

// attach appends without marking the workspace; used while loading.
func (l *ProjectList) attach(p *Project) {
	l.projects = append(l.projects, p)
	p.list = l
}

// detach removes p without marking the workspace; used to undo attach.
func (l *ProjectList) detach(p *Project) {
	if i := l.IndexOf(p); i >= 0 {
		l.projects = slices.Delete(l.projects, i, i+1)
		p.list = nil
	}
}

// detachAll empties the list and clears every back-reference.
func (l *ProjectList) detachAll() {
	for _, p := range l.projects {
		p.list = nil
	}
	l.projects = nil
}

func (l *ProjectList) logger() *zap.Logger {
	if l.ws == nil {
		return defaultEnv.Log
	}
	return l.ws.Env().Log
}

func (l *ProjectList) reject(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	l.logger().Warn(op+" rejected", fields...)
	return err
}
