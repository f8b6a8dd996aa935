package project

import (
	"go.uber.org/zap"

	"github.com/dshills/penv/internal/notify"
)

// File is a leaf item backed by a file on disk, unless virtual.
type File struct {
	itemBase
	path string
}

// NewFile creates a detached file item.
func NewFile(name, path string) *File {
	f := &File{path: path}
	f.init(f, name)
	return f
}

// Kind returns KindFile.
func (f *File) Kind() Kind { return KindFile }

// Path returns the stored path.
func (f *File) Path() string { return f.path }

// SetPath changes the stored path and marks the project modified.
func (f *File) SetPath(path string) {
	if f.path == path {
		return
	}
	f.path = path
	f.touch()
}

// GetPath returns the path resolved against the enclosing project.
func (f *File) GetPath() string {
	return resolvePath(baseDir(f.list), f.path)
}

// Save asks the bound editor to write the file. A virtual file has nowhere
// to go, so it raises TopicSaveVirtualItem instead.
func (f *File) Save(sink notify.Sink) error {
	if f.virtual {
		notify.Publish(sink, TopicSaveVirtualItem, f)
		return nil
	}

	ed, err := f.editor()
	if err != nil {
		f.logger().Warn("save failed", zap.Error(err))
		return err
	}
	path := f.GetPath()
	if err := ed.Save(path); err != nil {
		f.logger().Warn("save failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load asks the bound editor to reread the file.
func (f *File) Load() error {
	if f.virtual {
		return nil
	}

	ed, err := f.editor()
	if err != nil {
		f.logger().Warn("load failed", zap.Error(err))
		return err
	}
	path := f.GetPath()
	if err := ed.Load(path); err != nil {
		f.logger().Warn("load failed", zap.String("path", path), zap.Error(err))
		return &PathError{Op: "load", Path: path, Err: err}
	}
	return nil
}

// Clone returns a detached copy of the file.
func (f *File) Clone() Item {
	c := NewFile("", f.path)
	c.cloneFrom(&f.itemBase)
	return c
}
