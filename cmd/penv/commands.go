package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/penv/internal/notify"
	"github.com/dshills/penv/internal/project"
	"github.com/dshills/penv/internal/props"
)

func (a *app) initWorkspaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-workspace PATH NAME",
		Short: "Create an empty workspace document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.documentPath(args[0], a.cfg.Document.WorkspaceExt)
			if err != nil {
				return err
			}
			ws := project.NewWorkspace(args[1], project.WithPath(path), project.WithEnv(a.env))
			if err := ws.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created workspace %s at %s\n", ws.Name(), path)
			return nil
		},
	}
}

func (a *app) initProjectCmd() *cobra.Command {
	var wsPath string

	cmd := &cobra.Command{
		Use:   "init-project PATH NAME",
		Short: "Create an empty project document, optionally adding it to a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.documentPath(args[0], a.cfg.Document.ProjectExt)
			if err != nil {
				return err
			}

			if wsPath == "" {
				p := project.New(args[1], project.WithPath(path), project.WithEnv(a.env))
				if err := p.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created project %s at %s\n", p.Name(), path)
				return nil
			}

			ws, err := a.loadWorkspace(wsPath)
			if err != nil {
				return err
			}
			// The project inherits the workspace environment.
			p := project.New(args[1], project.WithPath(path))
			if err := ws.Projects().Add(p); err != nil {
				return err
			}
			p.SetModified(true)
			if err := ws.SaveAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created project %s at %s in workspace %s\n", p.Name(), path, ws.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&wsPath, "workspace", "", "workspace document to add the project to")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var (
		typeName string
		virtual  bool
		name     string
	)

	cmd := &cobra.Command{
		Use:   "add PROJECT ITEM_PATH",
		Short: "Add a file or directory item to a project",
		Long: `Add a file or directory item to a project.

The item path is stored relative to the project document, so the project
can be moved together with its files.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}

			item, err := p.Items().CreateProjectItem(typeName)
			if err != nil {
				return err
			}
			itemPath, err := relativeTo(p.Dir(), args[1])
			if err != nil {
				return err
			}
			switch it := item.(type) {
			case *project.File:
				it.SetPath(itemPath)
			case *project.Directory:
				it.SetPath(itemPath)
			default:
				return fmt.Errorf("add: type %q cannot be created from a path", typeName)
			}
			if name == "" {
				name = filepath.Base(args[1])
			}
			item.SetName(name)
			item.SetVirtual(virtual)

			if err := p.Items().Add(item); err != nil {
				return err
			}
			if err := p.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s to %s\n", item.Kind(), item.Name(), p.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", project.TypeFile, "item type: file or directory")
	cmd.Flags().BoolVar(&virtual, "virtual", false, "item has no file on disk")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: base name of the path)")
	return cmd
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree PATH",
		Short: "Print a workspace or project document as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if filepath.Ext(args[0]) == a.cfg.Document.WorkspaceExt {
				ws, err := a.loadWorkspace(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "workspace %s\n", ws.Name())
				for _, p := range ws.Projects().Projects() {
					printProject(out, p, 1)
				}
				return nil
			}

			p, err := a.loadProject(args[0])
			if err != nil {
				return err
			}
			printProject(out, p, 0)
			return nil
		},
	}
}

// document is the part of a project or workspace the prop command edits.
type document interface {
	Name() string
	Properties() *props.Set
	SetProperty(key, value string)
	SetModified(flag bool)
	Save() error
}

func (a *app) propCmd() *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "prop DOCUMENT [KEY [VALUE]]",
		Short: "List, read or change the properties of a project or workspace",
		Long: `List, read or change the properties of a project or workspace.

With only a document every property is printed in stored order. A key
prints one value, and a key with a value sets it. --delete removes the key.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			set := doc.Properties()

			switch {
			case del:
				if len(args) != 2 {
					return fmt.Errorf("prop --delete: exactly one key required")
				}
				if !set.Delete(args[1]) {
					return fmt.Errorf("prop: %s has no property %q: %w", doc.Name(), args[1], project.ErrNotFound)
				}
				doc.SetModified(true)
				return doc.Save()
			case len(args) == 3:
				doc.SetProperty(args[1], args[2])
				return doc.Save()
			case len(args) == 2:
				v, ok := set.Get(args[1])
				if !ok {
					return fmt.Errorf("prop: %s has no property %q: %w", doc.Name(), args[1], project.ErrNotFound)
				}
				fmt.Fprintln(out, v)
				return nil
			}
			for _, k := range set.Keys() {
				v, _ := set.Get(k)
				fmt.Fprintf(out, "%s=%s\n", k, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "remove the key")
	return cmd
}

// transferCmd builds mv and cp, which differ only in the item operation.
func (a *app) transferCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " WORKSPACE FROM_PROJECT ITEM TO_PROJECT",
		Short: short,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.loadWorkspace(args[0])
			if err != nil {
				return err
			}
			from, err := findProject(ws, args[1])
			if err != nil {
				return err
			}
			to, err := findProject(ws, args[3])
			if err != nil {
				return err
			}
			item := from.Items().Find(args[2])
			if item == nil {
				return fmt.Errorf("%s: item %q not in project %q: %w", use, args[2], from.Name(), project.ErrNotFound)
			}

			if use == "mv" {
				err = item.MoveTo(to, a.bus)
			} else {
				err = item.CopyTo(to, a.bus)
			}
			if err != nil {
				return err
			}
			return ws.SaveAll()
		},
	}
}

func (a *app) documentPath(arg, ext string) (string, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += ext
	}
	return path, nil
}

func (a *app) loadWorkspace(arg string) (*project.Workspace, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return nil, err
	}
	ws := project.NewWorkspace("", project.WithPath(path), project.WithEnv(a.env))
	if err := ws.Load(); err != nil {
		return nil, err
	}
	return ws, nil
}

func (a *app) loadProject(arg string) (*project.Project, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return nil, err
	}
	p := project.New("", project.WithPath(path), project.WithEnv(a.env))
	if err := p.Load(); err != nil {
		return nil, err
	}
	return p, nil
}

// loadDocument opens a workspace or project, chosen by file extension.
func (a *app) loadDocument(arg string) (document, error) {
	if filepath.Ext(arg) == a.cfg.Document.WorkspaceExt {
		return a.loadWorkspace(arg)
	}
	return a.loadProject(arg)
}

func findProject(ws *project.Workspace, name string) (*project.Project, error) {
	p := ws.Projects().Find(name)
	if p == nil {
		return nil, fmt.Errorf("project %q not in workspace %q: %w", name, ws.Name(), project.ErrNotFound)
	}
	return p, nil
}

// relativeTo expresses target relative to dir when both can be made
// absolute; otherwise target is kept as given.
func relativeTo(dir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return abs, nil
	}
	return filepath.ToSlash(rel), nil
}

func printProject(w io.Writer, p *project.Project, depth int) {
	fmt.Fprintf(w, "%sproject %s\n", strings.Repeat("  ", depth), p.Name())
	p.Items().Walk(func(item project.Item, d int) bool {
		line := strings.Repeat("  ", depth+d+1) + item.Kind().String() + " " + item.Name()
		if path := item.Path(); path != "" {
			line += " (" + path + ")"
		}
		if item.IsVirtual() {
			line += " [virtual]"
		}
		fmt.Fprintln(w, line)
		return true
	})
}

// describe renders a hierarchy notification for the terminal.
func describe(ev notify.Event) string {
	switch p := ev.Payload.(type) {
	case project.ItemMoved:
		return fmt.Sprintf("%s %s: %s -> %s", ev.Topic, p.Item.Name(), p.From.Project().Name(), p.To.Project().Name())
	case project.ItemCopied:
		return fmt.Sprintf("%s %s -> %s", ev.Topic, p.Source.Name(), p.To.Project().Name())
	case project.ProjectMoved:
		return fmt.Sprintf("%s %s: %s -> %s", ev.Topic, p.Project.Name(), p.From.Name(), p.To.Name())
	case project.ProjectCopied:
		return fmt.Sprintf("%s %s -> %s", ev.Topic, p.Source.Name(), p.To.Name())
	case project.ItemActivated:
		return fmt.Sprintf("%s %s", ev.Topic, p.Item.Name())
	case project.Item:
		return fmt.Sprintf("%s %s", ev.Topic, p.Name())
	}
	return ev.Topic.String()
}
