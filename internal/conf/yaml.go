package conf

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML converts a yaml.v3 node into a configuration tree rooted at a
// node with the given name. Mappings become child nodes, scalars become
// values, and sequence elements become repeated children named by the
// singular form of the owning key ("excludes" yields "exclude" children;
// keys without a trailing "s" yield "item" children).
//
// Aliases are followed; document nodes are unwrapped.
func FromYAML(name string, yn *yaml.Node) (*Node, error) {
	if yn == nil {
		return nil, nil
	}

	yn = resolve(yn)
	n := New(name)
	if err := fillFromYAML(n, yn); err != nil {
		return nil, err
	}
	return n, nil
}

// UnmarshalYAML lets a *Node be used directly as a yaml.v3 target field.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	name := n.Name
	if name == "" {
		name = RootName
	}
	parsed, err := FromYAML(name, value)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func fillFromYAML(n *Node, yn *yaml.Node) error {
	yn = resolve(yn)

	switch yn.Kind {
	case yaml.ScalarNode:
		if yn.Tag != "!!null" {
			n.Value = yn.Value
		}
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(yn.Content); i += 2 {
			key := yn.Content[i].Value
			child := New(key)
			if err := fillFromYAML(child, yn.Content[i+1]); err != nil {
				return err
			}
			n.AddChild(child)
		}
		return nil

	case yaml.SequenceNode:
		item := singular(n.Name)
		for _, e := range yn.Content {
			child := New(item)
			if err := fillFromYAML(child, e); err != nil {
				return err
			}
			n.AddChild(child)
		}
		return nil

	default:
		return fmt.Errorf("unsupported yaml node kind %d at line %d", yn.Kind, yn.Line)
	}
}

// resolve unwraps document nodes and follows alias nodes.
func resolve(yn *yaml.Node) *yaml.Node {
	for {
		switch {
		case yn.Kind == yaml.DocumentNode && len(yn.Content) > 0:
			yn = yn.Content[0]
		case yn.Kind == yaml.AliasNode && yn.Alias != nil:
			yn = yn.Alias
		default:
			return yn
		}
	}
}

// singular derives the child element name for a sequence under the given
// key name.
func singular(name string) string {
	if s := strings.TrimSuffix(name, "s"); s != name && s != "" {
		return s
	}
	return "item"
}

// ToMap converts the tree into the nested map form used to decode a
// configuration into a goal implementation. A node without children maps
// to its scalar value; a node with children maps to a map of child name
// to converted child, repeated names collapsing into a slice. Attributes
// are not represented; they only influence merging.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, len(n.Children))
	for _, c := range n.Children {
		v := c.toValue()
		if prev, ok := out[c.Name]; ok {
			if list, ok := prev.([]any); ok {
				out[c.Name] = append(list, v)
			} else {
				out[c.Name] = []any{prev, v}
			}
			continue
		}
		out[c.Name] = v
	}
	return out
}

func (n *Node) toValue() any {
	if len(n.Children) == 0 {
		return n.Value
	}

	// Uniform repeated children render as a plain list so sequence-style
	// configuration decodes into slices.
	if len(n.Children) > 1 && allSameName(n.Children) {
		list := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			list = append(list, c.toValue())
		}
		return list
	}

	return n.ToMap()
}

func allSameName(nodes []*Node) bool {
	for _, c := range nodes[1:] {
		if c.Name != nodes[0].Name {
			return false
		}
	}
	return true
}
