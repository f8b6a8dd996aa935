// Package project implements the persistent project hierarchy.
//
// The hierarchy is a tree of heterogeneous entities:
//
//	Workspace
//	└── ProjectList
//	    └── Project
//	        └── ItemList
//	            ├── File
//	            ├── Directory   (owns a nested ItemList)
//	            ├── LinkedItems (owns a nested ItemList and names a main item)
//	            └── SubProject  (embeds a whole Project)
//
// Every entity reports its Kind. Items form a closed sum type: only the four
// variants in this package implement Item, so a type switch over them is
// exhaustive.
//
// # Ownership
//
// Each item belongs to at most one ItemList and records it as a
// back-reference. ItemList.MoveProjectItem transfers an item between lists in
// one step, updating both slices and the back-reference together.
// ItemList.CopyProjectItem clones instead; a clone never carries the window
// binding of its source.
//
// # Dirty state
//
// Structural edits call ItemList.Modified, which marks every Project on the
// way up to the outermost root dirty, ascending through directories, linked
// groups and sub-projects alike. Workspaces are marked only by their own
// ProjectList.
//
// # Persistence
//
// Projects and workspaces are stored as YAML documents. Item paths are kept
// as authored: relative paths resolve against the directory of the nearest
// ancestor project that has a file, so an item moved to another project is
// re-based with it. Workspaces store project references relative to the
// workspace document.
//
// # Collaborators
//
// I/O goes through the vfs package, diagnostics through a zap logger, and
// editors through EditorRegistry, all bundled in an Env. Notifications go to
// a notify.Sink passed to the operation that raises them.
//
// The hierarchy is not safe for concurrent mutation; all edits are expected
// on one goroutine.
package project
