package project

import (
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
)

// Container is an entity that holds an ItemList: *Project, *Directory,
// *LinkedItems or *SubProject.
type Container interface {
	Entity
	Items() *ItemList
}

// ItemList is an ordered list of items owned by exactly one project or
// container item. The owner is fixed when the list is created.
type ItemList struct {
	owner Entity // *Project, *Directory or *LinkedItems
	items []Item
}

func newItemList(owner Entity) *ItemList {
	return &ItemList{owner: owner}
}

// Owner returns the project or item that owns the list.
func (l *ItemList) Owner() Entity { return l.owner }

// OwnerProject returns the owning project, or nil when an item owns the list.
func (l *ItemList) OwnerProject() *Project {
	p, _ := l.owner.(*Project)
	return p
}

// OwnerItem returns the owning item, or nil when a project owns the list.
func (l *ItemList) OwnerItem() Item {
	item, _ := l.owner.(Item)
	return item
}

// Project returns the nearest enclosing project.
func (l *ItemList) Project() *Project {
	switch o := l.owner.(type) {
	case *Project:
		return o
	case Item:
		return o.Project()
	}
	return nil
}

// Len returns the number of items.
func (l *ItemList) Len() int { return len(l.items) }

// At returns the item at index, or nil when index is out of range.
func (l *ItemList) At(index int) Item {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// Items returns a copy of the items in order.
func (l *ItemList) Items() []Item {
	return slices.Clone(l.items)
}

// IndexOf returns the position of item, or -1.
func (l *ItemList) IndexOf(item Item) int {
	return slices.Index(l.items, item)
}

// Find returns the first direct child named name, or nil.
func (l *ItemList) Find(name string) Item {
	for _, item := range l.items {
		if item.Name() == name {
			return item
		}
	}
	return nil
}

// Walk visits every item depth-first in list order. Returning false from fn
// skips the children of that item.
func (l *ItemList) Walk(fn func(item Item, depth int) bool) {
	l.walk(fn, 0)
}

func (l *ItemList) walk(fn func(Item, int) bool, depth int) {
	for _, item := range l.items {
		if !fn(item, depth) {
			continue
		}
		if children := Children(item); children != nil {
			children.walk(fn, depth+1)
		}
	}
}

// Add appends item and marks the list modified.
func (l *ItemList) Add(item Item) error {
	return l.Insert(len(l.items), item)
}

// Insert places item at index and marks the list modified.
func (l *ItemList) Insert(index int, item Item) error {
	if isNilItem(item) {
		return l.reject("add", ErrNilItem)
	}
	if item.List() != nil {
		return l.reject("add", ErrItemAttached, zap.String("item", item.Name()))
	}
	if l.isInside(item) {
		return l.reject("add", ErrCycle, zap.String("item", item.Name()))
	}
	if index < 0 || index > len(l.items) {
		return l.reject("add", indexError(index, len(l.items)+1), zap.String("item", item.Name()))
	}
	l.items = slices.Insert(l.items, index, item)
	item.base().list = l
	l.Modified(true)
	return nil
}

// Remove detaches the item at index and returns it. The item is neither
// destroyed nor re-homed; the caller decides its fate.
func (l *ItemList) Remove(index int) (Item, error) {
	if index < 0 || index >= len(l.items) {
		return nil, l.reject("remove", indexError(index, len(l.items)))
	}
	item := l.items[index]
	l.items = slices.Delete(l.items, index, index+1)
	item.base().list = nil
	l.Modified(true)
	return item, nil
}

// MoveProjectItem moves the item at index into dst, which must be a
// project or a container item other than the current owner. Both the source
// and destination projects are marked modified and TopicItemMoved is raised.
func (l *ItemList) MoveProjectItem(index int, dst Entity, sink notify.Sink) error {
	if index < 0 || index >= len(l.items) {
		return l.reject("move", indexError(index, len(l.items)))
	}
	item := l.items[index]
	to, err := destinationList(dst)
	if err != nil {
		return l.reject("move", err, zap.String("item", item.Name()))
	}
	if to == l {
		return l.reject("move", ErrSameDestination, zap.String("item", item.Name()))
	}
	if to.isInside(item) {
		return l.reject("move", ErrCycle, zap.String("item", item.Name()))
	}

	l.transfer(index, to)
	l.Modified(true)
	to.Modified(true)

	l.env().Log.Debug("item moved",
		zap.String("item", item.Name()),
		zap.Stringer("kind", item.Kind()))
	notify.Publish(sink, TopicItemMoved, ItemMoved{Item: item, From: l, To: to})
	return nil
}

// CopyProjectItem appends a clone of the item at index to dst, which may not
// lie inside the item. Only the destination project is marked modified; the
// source is left untouched.
func (l *ItemList) CopyProjectItem(index int, dst Entity, sink notify.Sink) error {
	if index < 0 || index >= len(l.items) {
		return l.reject("copy", indexError(index, len(l.items)))
	}
	item := l.items[index]
	to, err := destinationList(dst)
	if err != nil {
		return l.reject("copy", err, zap.String("item", item.Name()))
	}
	if to == l {
		return l.reject("copy", ErrSameDestination, zap.String("item", item.Name()))
	}
	if to.isInside(item) {
		return l.reject("copy", ErrCycle, zap.String("item", item.Name()))
	}

	clone := item.Clone()
	to.items = append(to.items, clone)
	clone.base().list = to
	to.Modified(true)

	l.env().Log.Debug("item copied",
		zap.String("item", item.Name()),
		zap.Stringer("kind", item.Kind()))
	notify.Publish(sink, TopicItemCopied, ItemCopied{Source: item, Copy: clone, To: to})
	return nil
}

// CreateProjectItem creates an empty item of the named document type
// (file, directory, linkeditem, subproject). It is not inserted.
func (l *ItemList) CreateProjectItem(typeName string) (Item, error) {
	kind, err := ParseItemType(typeName)
	if err != nil {
		return nil, l.reject("create", err)
	}
	return NewItem(kind, "")
}

// Modified records a change to the list. Marking walks upward through every
// kind of container and sets each enclosing project dirty, ending at the
// outermost project. Clearing affects only the nearest project.
func (l *ItemList) Modified(flag bool) {
	if !flag {
		if p := l.Project(); p != nil {
			p.modified = false
		}
		return
	}
	for cur := l; cur != nil; {
		switch o := cur.owner.(type) {
		case *Project:
			o.modified = true
			if o.host == nil {
				return
			}
			cur = o.host.list
		case Item:
			cur = o.List()
		default:
			return
		}
	}
}

// transfer moves the item at index to the end of to and re-points its
// back-reference. Callers validate first; nothing here can fail.
func (l *ItemList) transfer(index int, to *ItemList) {
	item := l.items[index]
	l.items = slices.Delete(l.items, index, index+1)
	to.items = append(to.items, item)
	item.base().list = to
}

// isInside reports whether l is the child list of item or lies anywhere
// beneath it.
func (l *ItemList) isInside(item Item) bool {
	for cur := l; cur != nil; {
		switch o := cur.owner.(type) {
		case *Project:
			if o.host == nil {
				return false
			}
			if Item(o.host) == item {
				return true
			}
			cur = o.host.list
		case Item:
			if o == item {
				return true
			}
			cur = o.List()
		default:
			return false
		}
	}
	return false
}

// cloneInto appends clones of every item to dst.
func (l *ItemList) cloneInto(dst *ItemList) {
	for _, item := range l.items {
		c := item.Clone()
		dst.items = append(dst.items, c)
		c.base().list = dst
	}
}

// detachAll empties the list and clears every back-reference.
func (l *ItemList) detachAll() {
	for _, item := range l.items {
		item.base().list = nil
	}
	l.items = nil
}

// attach appends without validation or dirty marking; used while decoding.
func (l *ItemList) attach(item Item) {
	l.items = append(l.items, item)
	item.base().list = l
}

func (l *ItemList) env() *Env {
	switch o := l.owner.(type) {
	case *Project:
		return o.Env()
	case Item:
		return o.base().env()
	}
	return defaultEnv
}

func (l *ItemList) reject(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	l.env().Log.Warn(op+" rejected", fields...)
	return err
}

// destinationList maps a move or copy destination to the list it receives
// items into.
func destinationList(dst Entity) (*ItemList, error) {
	switch d := dst.(type) {
	case *Project:
		if d != nil {
			return d.items, nil
		}
	case *Directory:
		if d != nil {
			return d.items, nil
		}
	case *LinkedItems:
		if d != nil {
			return d.items, nil
		}
	case *SubProject:
		if d != nil {
			return d.project.items, nil
		}
	case *File:
		return nil, ErrInvalidDestination
	}
	return nil, ErrInvalidDestination
}
