package project

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
	"github.com/dshills/penv/internal/props"
)

// Item is a node of a project tree: *File, *Directory, *LinkedItems or
// *SubProject. The set is closed; no other package can add a variant.
type Item interface {
	Entity

	Name() string
	SetName(name string)

	// IsVirtual reports whether the item has no object on disk.
	IsVirtual() bool
	SetVirtual(virtual bool)

	// WindowID is the binding to the editor currently showing the item.
	// It is never persisted and never cloned.
	WindowID() string
	SetWindowID(id string)

	// WindowClass names the kind of editor that opens the item.
	WindowClass() string
	SetWindowClass(class string)

	Properties() *props.Set

	// List returns the list holding the item, or nil when detached.
	List() *ItemList

	// Parent returns the project or container item that holds the item.
	Parent() Entity

	// Project returns the nearest enclosing project.
	Project() *Project

	UIHandle() any
	SetUIHandle(h any)

	// Path returns the path as stored, possibly relative.
	Path() string

	// GetPath returns the path resolved against the nearest project that has
	// a file. Items without a path return "".
	GetPath() string

	// GetPathString returns GetPath in slash-separated form.
	GetPathString() string

	// Save persists the item's content. sink receives notifications raised
	// on the way and may be nil.
	Save(sink notify.Sink) error

	// Load reloads the item's content.
	Load() error

	// Clone deep-copies the item. The copy is detached, has a new ID and
	// carries no window binding.
	Clone() Item

	// MoveTo moves the item into dst through its list.
	MoveTo(dst Entity, sink notify.Sink) error

	// CopyTo copies the item into dst through its list.
	CopyTo(dst Entity, sink notify.Sink) error

	// Activate announces that the item was opened by the user.
	Activate(sink notify.Sink)

	base() *itemBase
}

// itemBase holds the state shared by every item variant.
type itemBase struct {
	self        Item
	id          uuid.UUID
	name        string
	virtual     bool
	windowID    string
	windowClass string
	props       *props.Set
	list        *ItemList
	ui          any
}

func (b *itemBase) init(self Item, name string) {
	b.self = self
	b.id = uuid.New()
	b.name = name
	b.props = props.New()
}

// cloneFrom copies the persistent common fields of src.
func (b *itemBase) cloneFrom(src *itemBase) {
	b.name = src.name
	b.virtual = src.virtual
	b.windowClass = src.windowClass
	b.props = src.props.Clone()
}

func (b *itemBase) base() *itemBase { return b }

// ID returns the item identity.
func (b *itemBase) ID() uuid.UUID { return b.id }

// Name returns the display name.
func (b *itemBase) Name() string { return b.name }

// SetName renames the item and marks its project modified.
func (b *itemBase) SetName(name string) {
	if b.name == name {
		return
	}
	b.name = name
	b.touch()
}

func (b *itemBase) IsVirtual() bool { return b.virtual }

// SetVirtual changes the virtual flag and marks the project modified.
func (b *itemBase) SetVirtual(virtual bool) {
	if b.virtual == virtual {
		return
	}
	b.virtual = virtual
	b.touch()
}

func (b *itemBase) WindowID() string      { return b.windowID }
func (b *itemBase) SetWindowID(id string) { b.windowID = id }

func (b *itemBase) WindowClass() string { return b.windowClass }

// SetWindowClass sets the editor class and marks the project modified.
func (b *itemBase) SetWindowClass(class string) {
	if b.windowClass == class {
		return
	}
	b.windowClass = class
	b.touch()
}

func (b *itemBase) Properties() *props.Set { return b.props }

func (b *itemBase) List() *ItemList { return b.list }

func (b *itemBase) Parent() Entity {
	if b.list == nil {
		return nil
	}
	if p, ok := b.list.owner.(*Project); ok && p.host != nil {
		return p.host
	}
	return b.list.owner
}

func (b *itemBase) Project() *Project {
	if b.list == nil {
		return nil
	}
	return b.list.Project()
}

func (b *itemBase) UIHandle() any     { return b.ui }
func (b *itemBase) SetUIHandle(h any) { b.ui = h }

// Path is empty for variants without one.
func (b *itemBase) Path() string    { return "" }
func (b *itemBase) GetPath() string { return "" }

func (b *itemBase) GetPathString() string {
	return filepath.ToSlash(b.self.GetPath())
}

func (b *itemBase) MoveTo(dst Entity, sink notify.Sink) error {
	if b.list == nil {
		return ErrDetached
	}
	return b.list.MoveProjectItem(b.list.IndexOf(b.self), dst, sink)
}

func (b *itemBase) CopyTo(dst Entity, sink notify.Sink) error {
	if b.list == nil {
		return ErrDetached
	}
	return b.list.CopyProjectItem(b.list.IndexOf(b.self), dst, sink)
}

func (b *itemBase) Activate(sink notify.Sink) {
	notify.Publish(sink, TopicItemActivated, ItemActivated{Item: b.self})
}

// touch marks the enclosing projects modified after a persistent change.
func (b *itemBase) touch() {
	if b.list != nil {
		b.list.Modified(true)
	}
}

func (b *itemBase) env() *Env {
	if b.list == nil {
		return defaultEnv
	}
	return b.list.env()
}

func (b *itemBase) logger() *zap.Logger {
	return b.env().Log.With(
		zap.String("item", b.self.Name()),
		zap.Stringer("kind", b.self.Kind()),
	)
}

// editor resolves the editor bound through the item's window id.
func (b *itemBase) editor() (Editor, error) {
	return b.env().editor(b.windowID)
}

// NewItem creates an empty, detached item of the requested kind.
func NewItem(kind Kind, name string) (Item, error) {
	switch kind {
	case KindFile:
		return NewFile(name, ""), nil
	case KindDirectory:
		return NewDirectory(name, ""), nil
	case KindLinkedItems:
		return NewLinkedItems(name), nil
	case KindSubProject:
		return NewSubProject(name), nil
	}
	return nil, ErrUnknownKind
}

// Children returns the nested list of a container item, or nil for files.
func Children(item Item) *ItemList {
	switch v := item.(type) {
	case *Directory:
		return v.items
	case *LinkedItems:
		return v.items
	case *SubProject:
		return v.project.items
	case *File:
		return nil
	}
	return nil
}

// isNilItem catches typed nil pointers hidden in a non-nil interface.
func isNilItem(item Item) bool {
	switch v := item.(type) {
	case nil:
		return true
	case *File:
		return v == nil
	case *Directory:
		return v == nil
	case *LinkedItems:
		return v == nil
	case *SubProject:
		return v == nil
	}
	return false
}
