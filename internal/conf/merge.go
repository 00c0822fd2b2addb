package conf

// Merge deep-merges two configuration trees and returns a new tree,
// leaving both inputs untouched. The dominant tree always wins for any
// position it defines; only positions it leaves unset are filled from
// the recessive tree:
//
//   - a dominant scalar value wins; an empty dominant value is filled
//     from the recessive node,
//   - recessive attributes are added only where the dominant node has
//     no attribute of that name,
//   - children are paired by name and occurrence index: the i-th
//     recessive child named x merges into the i-th dominant child named
//     x when one exists, and is appended otherwise, preserving order.
//
// Either input may be nil, in which case a clone of the other is
// returned (nil when both are nil).
func Merge(dominant, recessive *Node) *Node {
	if dominant == nil {
		return recessive.Clone()
	}
	if recessive == nil {
		return dominant.Clone()
	}

	out := dominant.Clone()
	mergeInto(out, recessive)
	return out
}

// mergeInto fills unset positions of dst from src. dst is owned by the
// caller; src is never mutated.
func mergeInto(dst, src *Node) {
	if dst.Value == "" {
		dst.Value = src.Value
	}

	for name, value := range src.Attrs {
		if _, ok := dst.Attrs[name]; !ok {
			dst.SetAttribute(name, value)
		}
	}

	// Occurrence-indexed pairing: the i-th src child of a given name
	// merges into the i-th dst child of that name.
	seen := make(map[string]int)
	for _, sc := range src.Children {
		idx := seen[sc.Name]
		seen[sc.Name] = idx + 1

		if dc := childAt(dst, sc.Name, idx); dc != nil {
			mergeInto(dc, sc)
			continue
		}
		dst.AddChild(sc.Clone())
	}
}

// childAt returns the idx-th child of n with the given name, or nil.
func childAt(n *Node, name string, idx int) *Node {
	count := 0
	for _, c := range n.Children {
		if c.Name != name {
			continue
		}
		if count == idx {
			return c
		}
		count++
	}
	return nil
}
