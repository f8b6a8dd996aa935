package project

import "github.com/dshills/penv/internal/notify"

// Notification topics raised by the hierarchy.
const (
	// TopicItemMoved is raised after ItemList.MoveProjectItem succeeds.
	TopicItemMoved notify.Topic = "project.item.moved"

	// TopicItemCopied is raised after ItemList.CopyProjectItem succeeds.
	TopicItemCopied notify.Topic = "project.item.copied"

	// TopicItemActivated is raised when an item is activated for editing.
	TopicItemActivated notify.Topic = "project.item.activated"

	// TopicSaveVirtualItem is raised when a virtual file is asked to save.
	// The payload is the *File; the receiver decides where its content goes.
	TopicSaveVirtualItem notify.Topic = "project.item.save.virtual"

	// TopicProjectMoved is raised after ProjectList.MoveProject succeeds.
	TopicProjectMoved notify.Topic = "project.moved"

	// TopicProjectCopied is raised after ProjectList.CopyProject succeeds.
	TopicProjectCopied notify.Topic = "project.copied"
)

// ItemMoved is the payload of TopicItemMoved.
type ItemMoved struct {
	Item Item
	From *ItemList
	To   *ItemList
}

// ItemCopied is the payload of TopicItemCopied.
type ItemCopied struct {
	Source Item
	Copy   Item
	To     *ItemList
}

// ItemActivated is the payload of TopicItemActivated.
type ItemActivated struct {
	Item Item
}

// ProjectMoved is the payload of TopicProjectMoved.
type ProjectMoved struct {
	Project *Project
	From    *Workspace
	To      *Workspace
}

// ProjectCopied is the payload of TopicProjectCopied.
type ProjectCopied struct {
	Source *Project
	Copy   *Project
	To     *Workspace
}
