package project

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// WorkspaceList holds the open workspaces and tracks the active one.
type WorkspaceList struct {
	workspaces []*Workspace
	active     *Workspace
	env        *Env
}

// NewWorkspaceList creates an empty list. WithEnv supplies the environment
// inherited by member workspaces that have none of their own.
func NewWorkspaceList(opts ...Option) *WorkspaceList {
	o := applyOptions(opts)
	return &WorkspaceList{env: o.env}
}

func (l *WorkspaceList) Len() int { return len(l.workspaces) }

// At returns the workspace at index, or nil when index is out of range.
func (l *WorkspaceList) At(index int) *Workspace {
	if index < 0 || index >= len(l.workspaces) {
		return nil
	}
	return l.workspaces[index]
}

// Workspaces returns a copy of the workspaces in order.
func (l *WorkspaceList) Workspaces() []*Workspace {
	return slices.Clone(l.workspaces)
}

// Find returns the first workspace named name, or nil.
func (l *WorkspaceList) Find(name string) *Workspace {
	for _, w := range l.workspaces {
		if w.name == name {
			return w
		}
	}
	return nil
}

// Add appends w. The first workspace added becomes active.
func (l *WorkspaceList) Add(w *Workspace) error {
	if w == nil {
		return l.reject("add", ErrNilWorkspace)
	}
	if w.list != nil {
		return l.reject("add", ErrWorkspaceAttached, zap.String("workspace", w.name))
	}
	l.workspaces = append(l.workspaces, w)
	w.list = l
	if l.active == nil {
		l.active = w
	}
	return nil
}

// Remove detaches the workspace at index and returns it. Removing the
// active workspace leaves none active.
func (l *WorkspaceList) Remove(index int) (*Workspace, error) {
	if index < 0 || index >= len(l.workspaces) {
		return nil, l.reject("remove", indexError(index, len(l.workspaces)))
	}
	w := l.workspaces[index]
	l.workspaces = slices.Delete(l.workspaces, index, index+1)
	w.list = nil
	if l.active == w {
		l.active = nil
	}
	return w, nil
}

// Active returns the active workspace, or nil.
func (l *WorkspaceList) Active() *Workspace { return l.active }

// SetActive makes w the active workspace. A nil w clears the selection.
func (l *WorkspaceList) SetActive(w *Workspace) error {
	if w != nil && w.list != l {
		return l.reject("activate", ErrNotInList, zap.String("workspace", w.name))
	}
	l.active = w
	return nil
}

// IsWorkspaceOrProjectModified reports whether any workspace, or any project
// directly in one, has unsaved changes.
func (l *WorkspaceList) IsWorkspaceOrProjectModified() bool {
	return slices.ContainsFunc(l.workspaces, (*Workspace).IsWorkspaceOrProjectModified)
}

// SaveAll saves every workspace with unsaved changes and its modified
// projects.
func (l *WorkspaceList) SaveAll() error {
	var errs []error
	for _, w := range l.workspaces {
		if !w.IsWorkspaceOrProjectModified() {
			continue
		}
		if err := w.SaveAll(); err != nil {
			errs = append(errs, fmt.Errorf("workspace %q: %w", w.name, err))
		}
	}
	return errors.Join(errs...)
}

func (l *WorkspaceList) reject(op string, err error, fields ...zap.Field) error {
	log := defaultEnv.Log
	if l.env != nil {
		log = l.env.Log
	}
	fields = append(fields, zap.String("op", op), zap.Error(err))
	log.Warn(op+" rejected", fields...)
	return err
}
