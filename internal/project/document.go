package project

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dshills/penv/internal/props"
)

// Project documents have a single "project" root:
//
//	project:
//	  name: app
//	  items:
//	    - type: file
//	      name: main.go
//	      path: main.go
//	  properties:
//	    build: go
//
// Child items are kept as raw nodes until they are read so that one bad
// item does not prevent its siblings from loading.
type projectDocument struct {
	Project *projectNode `yaml:"project"`
}

type projectNode struct {
	Name       string      `yaml:"name"`
	Items      []yaml.Node `yaml:"items,omitempty"`
	Properties *yaml.Node  `yaml:"properties,omitempty"`
}

type itemNode struct {
	Type        string      `yaml:"type"`
	Name        string      `yaml:"name"`
	Virtual     bool        `yaml:"virtual"`
	WindowClass string      `yaml:"window_class,omitempty"`
	Path        string      `yaml:"path,omitempty"`
	Main        string      `yaml:"main,omitempty"`
	ProjectPath string      `yaml:"project_path,omitempty"`
	Items       []yaml.Node `yaml:"items,omitempty"`
	Properties  *yaml.Node  `yaml:"properties,omitempty"`
}

type workspaceDocument struct {
	Workspace *workspaceNode `yaml:"workspace"`
}

type workspaceNode struct {
	Name       string       `yaml:"name"`
	Projects   []projectRef `yaml:"projects,omitempty"`
	Properties *yaml.Node   `yaml:"properties,omitempty"`
}

type projectRef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

func encode(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeProject(p *Project, indent int) ([]byte, error) {
	items, err := writeItems(p.items)
	if err != nil {
		return nil, err
	}
	return encode(projectDocument{Project: &projectNode{
		Name:       p.name,
		Items:      items,
		Properties: writeProps(p.props),
	}}, indent)
}

func decodeProject(data []byte) (*projectNode, error) {
	var doc projectDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformed("%v", err)
	}
	if doc.Project == nil {
		return nil, malformed("missing project root")
	}
	return doc.Project, nil
}

// apply replaces the project content with node and returns the number of
// entries that were skipped.
func (p *Project) apply(node *projectNode) int {
	log := p.logger()
	if node.Name != "" {
		p.name = node.Name
	}
	skipped := 0
	if err := readProps(p.props, node.Properties); err != nil {
		log.Warn("properties skipped", zap.Error(err))
		skipped++
	}
	p.items.detachAll()
	return skipped + readItems(p.items, node.Items, log)
}

func encodeWorkspace(w *Workspace, indent int, log *zap.Logger) ([]byte, error) {
	node := &workspaceNode{
		Name:       w.name,
		Properties: writeProps(w.props),
	}
	dir := w.Dir()
	for _, p := range w.projects.projects {
		if p.path == "" {
			log.Warn("project not referenced", zap.String("project", p.name), zap.Error(ErrNoPath))
			continue
		}
		node.Projects = append(node.Projects, projectRef{
			Name: p.name,
			Path: relativePath(dir, p.documentPath()),
		})
	}
	return encode(workspaceDocument{Workspace: node}, indent)
}

func decodeWorkspace(data []byte) (*workspaceNode, error) {
	var doc workspaceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformed("%v", err)
	}
	if doc.Workspace == nil {
		return nil, malformed("missing workspace root")
	}
	return doc.Workspace, nil
}

func writeItems(l *ItemList) ([]yaml.Node, error) {
	if l.Len() == 0 {
		return nil, nil
	}
	nodes := make([]yaml.Node, 0, l.Len())
	for _, item := range l.items {
		n, err := writeItemNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// writeItemNode encodes one item and its children.
func writeItemNode(item Item) (yaml.Node, error) {
	b := item.base()
	in := itemNode{
		Type:        item.Kind().TypeName(),
		Name:        item.Name(),
		Virtual:     b.virtual,
		WindowClass: b.windowClass,
		Properties:  writeProps(item.Properties()),
	}

	var children *ItemList
	switch v := item.(type) {
	case *File:
		in.Path = storedPath(v.path)
	case *Directory:
		in.Path = storedPath(v.path)
		children = v.items
	case *LinkedItems:
		in.Main = v.main
		children = v.items
	case *SubProject:
		in.ProjectPath = storedPath(v.project.path)
		children = v.project.items
	default:
		return yaml.Node{}, fmt.Errorf("%w: %T", ErrUnknownKind, item)
	}

	if children != nil {
		items, err := writeItems(children)
		if err != nil {
			return yaml.Node{}, err
		}
		in.Items = items
	}

	var n yaml.Node
	if err := n.Encode(in); err != nil {
		return yaml.Node{}, err
	}
	return n, nil
}

// readItems decodes nodes into l, logging and skipping items that cannot be
// read. It returns the number of skipped items at any depth.
func readItems(l *ItemList, nodes []yaml.Node, log *zap.Logger) int {
	skipped := 0
	for i := range nodes {
		item, n, err := readItemNode(&nodes[i], log)
		skipped += n
		if err != nil {
			log.Warn("item skipped",
				zap.Int("index", i),
				zap.Int("line", nodes[i].Line),
				zap.Error(err))
			skipped++
			continue
		}
		l.attach(item)
	}
	return skipped
}

// readItemNode decodes one item and its children. The returned count is the
// number of descendants that were skipped.
func readItemNode(n *yaml.Node, log *zap.Logger) (Item, int, error) {
	var in itemNode
	if err := n.Decode(&in); err != nil {
		return nil, 0, malformed("%v", err)
	}
	kind, err := ParseItemType(in.Type)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var (
		item     Item
		children *ItemList
	)
	switch kind {
	case KindFile:
		item = NewFile(in.Name, in.Path)
	case KindDirectory:
		d := NewDirectory(in.Name, in.Path)
		item, children = d, d.items
	case KindLinkedItems:
		l := NewLinkedItems(in.Name)
		l.main = in.Main
		item, children = l, l.items
	case KindSubProject:
		s := newSubProject(New(in.Name, WithPath(in.ProjectPath)))
		item, children = s, s.project.items
	}

	b := item.base()
	b.virtual = in.Virtual
	b.windowClass = in.WindowClass

	skipped := 0
	if err := readProps(item.Properties(), in.Properties); err != nil {
		log.Warn("item properties skipped", zap.String("item", in.Name), zap.Error(err))
		skipped++
	}
	if children != nil {
		skipped += readItems(children, in.Items, log)
	}
	return item, skipped, nil
}

// writeProps encodes a property set as a mapping in insertion order, or nil
// when the set is empty. Values are always written as strings.
func writeProps(s *props.Set) *yaml.Node {
	if s.Len() == 0 {
		return nil
	}
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}
	return m
}

// readProps replaces the content of dst with the mapping in n. Entries with
// non-scalar values are dropped and reported.
func readProps(dst *props.Set, n *yaml.Node) error {
	dst.Clear()
	if n == nil {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return malformed("properties at line %d: not a mapping", n.Line)
	}
	var bad []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			bad = append(bad, k.Value)
			continue
		}
		dst.Set(k.Value, v.Value)
	}
	if len(bad) > 0 {
		return malformed("properties %q: value is not a scalar", bad)
	}
	return nil
}
