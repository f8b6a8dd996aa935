package project

import (
	"path/filepath"
)

// baseDir returns the directory that relative item paths in l resolve
// against: the directory of the nearest enclosing project that has a file.
// Embedded projects without a file defer to the project around them.
func baseDir(l *ItemList) string {
	for cur := l; cur != nil; {
		switch o := cur.owner.(type) {
		case *Project:
			if dir := o.Dir(); dir != "" {
				return dir
			}
			if o.host == nil {
				return ""
			}
			cur = o.host.list
		case Item:
			cur = o.List()
		default:
			return ""
		}
	}
	return ""
}

// resolvePath resolves a stored path against base. Absolute paths are kept,
// and an empty base leaves relative paths relative.
func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// relativePath expresses p relative to base in slash form for storage.
// Paths that cannot be expressed relative to base are kept as they are.
func relativePath(base, p string) string {
	if p == "" || base == "" || filepath.IsAbs(p) != filepath.IsAbs(base) {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// storedPath converts an in-memory item path to its document form.
func storedPath(p string) string {
	return filepath.ToSlash(p)
}
