package vfs

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"syscall"
)

// entry is a directory or a regular file in the in-memory tree.
type entry struct {
	dir  bool
	data []byte
}

// MemFS implements VFS using an in-memory file system.
// Paths are slash separated and always rooted at "/".
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewMemFS returns a MemFS holding only the root directory.
func NewMemFS() *MemFS {
	return &MemFS{entries: map[string]*entry{"/": {dir: true}}}
}

var _ VFS = (*MemFS)(nil)

func (m *MemFS) lookup(p string) (*entry, bool) {
	e, ok := m.entries[memPath(p)]
	return e, ok
}

// ReadFile returns a copy of the file content.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.lookup(name)
	switch {
	case !ok:
		return nil, &fs.PathError{Op: "read", Path: memPath(name), Err: fs.ErrNotExist}
	case e.dir:
		return nil, &fs.PathError{Op: "read", Path: memPath(name), Err: syscall.EISDIR}
	}
	return append([]byte(nil), e.data...), nil
}

// WriteFile stores a copy of data. The parent must be an existing directory.
func (m *MemFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = memPath(name)
	if e, ok := m.entries[name]; ok && e.dir {
		return &fs.PathError{Op: "write", Path: name, Err: syscall.EISDIR}
	}
	parent, ok := m.entries[path.Dir(name)]
	if !ok {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrNotExist}
	}
	if !parent.dir {
		return &fs.PathError{Op: "write", Path: name, Err: syscall.ENOTDIR}
	}
	m.entries[name] = &entry{data: append([]byte(nil), data...)}
	return nil
}

// MkdirAll creates dir and any missing parents. A file anywhere on the way
// is an error.
func (m *MemFS) MkdirAll(dir string, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := "/"
	for _, seg := range strings.Split(memPath(dir), "/") {
		if seg == "" {
			continue
		}
		cur = path.Join(cur, seg)
		e, ok := m.entries[cur]
		if !ok {
			m.entries[cur] = &entry{dir: true}
			continue
		}
		if !e.dir {
			return &fs.PathError{Op: "mkdir", Path: cur, Err: syscall.ENOTDIR}
		}
	}
	return nil
}

// Exists reports whether a file or directory is stored at p.
func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.lookup(p)
	return ok
}

// IsDir reports whether p is a directory.
func (m *MemFS) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.lookup(p)
	return ok && e.dir
}

// AddFile seeds a file, creating its parent directories.
func (m *MemFS) AddFile(name, content string) error {
	if err := m.MkdirAll(path.Dir(memPath(name)), DirPerm); err != nil {
		return err
	}
	return m.WriteFile(name, []byte(content), FilePerm)
}

// memPath cleans p and roots it at "/".
func memPath(p string) string {
	return path.Clean("/" + p)
}
