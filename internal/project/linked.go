package project

import (
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
)

// LinkedItems groups related items, such as a header and its source, that
// are edited together. One member, the main item, stands for the group when
// loading and saving.
type LinkedItems struct {
	itemBase
	items *ItemList
	main  string
}

// NewLinkedItems creates a detached, empty group.
func NewLinkedItems(name string) *LinkedItems {
	l := &LinkedItems{}
	l.init(l, name)
	l.items = newItemList(l)
	return l
}

// Kind returns KindLinkedItems.
func (l *LinkedItems) Kind() Kind { return KindLinkedItems }

// Items returns the member list.
func (l *LinkedItems) Items() *ItemList { return l.items }

// MainName returns the name of the designated main item.
func (l *LinkedItems) MainName() string { return l.main }

// SetMainName designates the main item by name and marks the project
// modified.
func (l *LinkedItems) SetMainName(name string) {
	if l.main == name {
		return
	}
	l.main = name
	l.touch()
}

// Main resolves the main item among the members.
func (l *LinkedItems) Main() (Item, bool) {
	if l.main == "" {
		return nil, false
	}
	item := l.items.Find(l.main)
	return item, item != nil
}

// Save saves the main item.
func (l *LinkedItems) Save(sink notify.Sink) error {
	main, ok := l.Main()
	if !ok {
		l.logger().Warn("save failed", zap.String("main", l.main), zap.Error(ErrNoMainItem))
		return ErrNoMainItem
	}
	return main.Save(sink)
}

// Load loads the main item.
func (l *LinkedItems) Load() error {
	main, ok := l.Main()
	if !ok {
		l.logger().Warn("load failed", zap.String("main", l.main), zap.Error(ErrNoMainItem))
		return ErrNoMainItem
	}
	return main.Load()
}

// Clone returns a detached deep copy of the group and its members.
func (l *LinkedItems) Clone() Item {
	c := NewLinkedItems("")
	c.cloneFrom(&l.itemBase)
	c.main = l.main
	l.items.cloneInto(c.items)
	return c
}
