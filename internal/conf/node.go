// Package conf provides the generic configuration tree used to carry and
// merge goal configuration. A Node is a named tree position with an
// optional scalar value, named attributes, and ordered children; trees
// are merged by precedence, higher-precedence positions always winning.
package conf

import (
	"fmt"
	"sort"
	"strings"
)

// RootName is the conventional name of a goal configuration root node.
const RootName = "configuration"

// Node is one position in a configuration tree.
type Node struct {
	Name     string
	Value    string
	Attrs    map[string]string
	Children []*Node
}

// New creates an empty node with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// NewRoot creates an empty configuration root node.
func NewRoot() *Node {
	return New(RootName)
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddChild appends a child node.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Attribute returns the named attribute value, or the empty string.
func (n *Node) Attribute(name string) string {
	return n.Attrs[name]
}

// SetAttribute sets the named attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Value: n.Value}
	if len(n.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// String renders the tree as a compact XML-like single line, attributes
// in sorted order so output is deterministic. Intended for debug logging.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	if len(n.Attrs) > 0 {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, " %s=%q", k, n.Attrs[k])
		}
	}
	if n.Value == "" && len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	b.WriteString(n.Value)
	for _, c := range n.Children {
		c.render(b)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}
