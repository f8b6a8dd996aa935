package project

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the concrete type of an entity in the hierarchy.
type Kind int

const (
	KindWorkspace Kind = iota
	KindProject
	KindProjectItem
	KindFile
	KindDirectory
	KindSubProject
	KindLinkedItems
)

// Item type names used in documents.
const (
	TypeFile        = "file"
	TypeDirectory   = "directory"
	TypeLinkedItems = "linkeditem"
	TypeSubProject  = "subproject"
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindProject:
		return "project"
	case KindProjectItem:
		return "item"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSubProject:
		return "subproject"
	case KindLinkedItems:
		return "linkeditems"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsItem reports whether k is one of the concrete item variants.
func (k Kind) IsItem() bool {
	switch k {
	case KindFile, KindDirectory, KindSubProject, KindLinkedItems:
		return true
	}
	return false
}

// TypeName returns the document type name of an item kind, or "" for kinds
// that are not item variants.
func (k Kind) TypeName() string {
	switch k {
	case KindFile:
		return TypeFile
	case KindDirectory:
		return TypeDirectory
	case KindLinkedItems:
		return TypeLinkedItems
	case KindSubProject:
		return TypeSubProject
	}
	return ""
}

// ParseItemType maps a document type name to its item kind.
func ParseItemType(name string) (Kind, error) {
	switch name {
	case TypeFile:
		return KindFile, nil
	case TypeDirectory:
		return KindDirectory, nil
	case TypeLinkedItems:
		return KindLinkedItems, nil
	case TypeSubProject:
		return KindSubProject, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Entity is implemented by every node of the hierarchy.
type Entity interface {
	// Kind returns the fixed kind of the entity.
	Kind() Kind

	// ID returns the identity assigned at construction. Clones get a new one.
	ID() uuid.UUID
}
