package conf

// Source is the plugin-neutral read-only view of a configuration tree,
// as supplied by the registry collaborator. Convert turns any Source
// into a Node tree without loss.
type Source interface {
	// Name returns the node name.
	Name() string

	// Value returns the scalar value, or the empty string.
	Value() string

	// AttributeNames returns the names of all attributes.
	AttributeNames() []string

	// Attribute returns the named attribute value.
	Attribute(name string) string

	// ChildCount returns the number of child nodes.
	ChildCount() int

	// ChildAt returns the i-th child.
	ChildAt(i int) Source
}

// Convert losslessly converts a Source tree into a Node tree.
// A nil source converts to a nil node.
func Convert(s Source) *Node {
	if s == nil {
		return nil
	}

	n := New(s.Name())
	n.Value = s.Value()

	for _, attr := range s.AttributeNames() {
		n.SetAttribute(attr, s.Attribute(attr))
	}

	for i, count := 0, s.ChildCount(); i < count; i++ {
		n.AddChild(Convert(s.ChildAt(i)))
	}

	return n
}
