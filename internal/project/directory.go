package project

import (
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
	"github.com/dshills/penv/internal/project/vfs"
)

// Directory is a container item mirroring a directory on disk.
type Directory struct {
	itemBase
	path  string
	items *ItemList
}

// NewDirectory creates a detached, empty directory item.
func NewDirectory(name, path string) *Directory {
	d := &Directory{path: path}
	d.init(d, name)
	d.items = newItemList(d)
	return d
}

// Kind returns KindDirectory.
func (d *Directory) Kind() Kind { return KindDirectory }

// Items returns the child list.
func (d *Directory) Items() *ItemList { return d.items }

// Path returns the stored path.
func (d *Directory) Path() string { return d.path }

// SetPath changes the stored path and marks the project modified.
func (d *Directory) SetPath(path string) {
	if d.path == path {
		return
	}
	d.path = path
	d.touch()
}

// GetPath returns the path resolved against the enclosing project.
func (d *Directory) GetPath() string {
	return resolvePath(baseDir(d.list), d.path)
}

// Save creates the directory when it does not exist yet.
// An existing directory is not an error.
func (d *Directory) Save(_ notify.Sink) error {
	if d.virtual {
		return nil
	}
	path := d.GetPath()
	if path == "" {
		d.logger().Warn("save failed", zap.Error(ErrNoPath))
		return ErrNoPath
	}
	if err := d.env().FS.MkdirAll(path, vfs.DirPerm); err != nil {
		d.logger().Warn("save failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// Load checks that the path exists on disk and is a directory.
func (d *Directory) Load() error {
	if d.virtual {
		return nil
	}
	path := d.GetPath()
	if path == "" {
		return ErrNoPath
	}
	fsys := d.env().FS
	var err error
	switch {
	case !fsys.Exists(path):
		err = ErrNotFound
	case !fsys.IsDir(path):
		err = ErrNotDirectory
	default:
		return nil
	}
	d.logger().Warn("load failed", zap.String("path", path), zap.Error(err))
	return &PathError{Op: "load", Path: path, Err: err}
}

// Clone returns a detached deep copy of the directory and its children.
func (d *Directory) Clone() Item {
	c := NewDirectory("", d.path)
	c.cloneFrom(&d.itemBase)
	d.items.cloneInto(c.items)
	return c
}
