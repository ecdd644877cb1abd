package model

// FieldNode is the recursive layout union: a FieldSchema leaf or an ordered
// group of nodes rendered as one grid row. The zero value is neither and
// renders nothing.
type FieldNode struct {
	Field *FieldSchema
	Group []FieldNode
}

// Leaf wraps a field schema as a node.
func Leaf(field FieldSchema) FieldNode {
	return FieldNode{Field: &field}
}

// Group wraps the provided nodes as a row. An empty call still yields a group.
func Group(nodes ...FieldNode) FieldNode {
	if nodes == nil {
		nodes = []FieldNode{}
	}
	return FieldNode{Group: nodes}
}

// Row is shorthand for a group made only of leaves.
func Row(fields ...FieldSchema) FieldNode {
	nodes := make([]FieldNode, 0, len(fields))
	for _, field := range fields {
		nodes = append(nodes, Leaf(field))
	}
	return FieldNode{Group: nodes}
}

// IsLeaf reports whether the node carries a field schema.
func (n FieldNode) IsLeaf() bool {
	return n.Field != nil
}

// IsGroup reports whether the node is a row grouping.
func (n FieldNode) IsGroup() bool {
	return n.Field == nil && n.Group != nil
}

// Visitor receives the leaves of a schema in document order together with the
// depth of the group that contains them (0 for top-level leaves).
type Visitor func(field FieldSchema, depth int)

// Walk visits every leaf of the node list in order.
func Walk(nodes []FieldNode, visit Visitor) {
	walk(nodes, 0, visit)
}

func walk(nodes []FieldNode, depth int, visit Visitor) {
	for _, node := range nodes {
		switch {
		case node.IsLeaf():
			visit(*node.Field, depth)
		case node.IsGroup():
			walk(node.Group, depth+1, visit)
		}
	}
}

// Leaves flattens the schema into its leaves in document order.
func (s FormSchema) Leaves() []FieldSchema {
	var out []FieldSchema
	Walk(s.Fields, func(field FieldSchema, _ int) {
		out = append(out, field)
	})
	return out
}

// Lookup returns the first leaf declaring name. Later duplicates are shadowed
// for lookups but still render.
func (s FormSchema) Lookup(name string) (FieldSchema, bool) {
	var (
		found FieldSchema
		ok    bool
	)
	Walk(s.Fields, func(field FieldSchema, _ int) {
		if !ok && field.Name == name {
			found, ok = field, true
		}
	})
	return found, ok
}

// WithOptions returns a copy of the schema in which every leaf declaring name
// carries options. The receiver and its nodes are left untouched.
func (s FormSchema) WithOptions(name string, options []Option) FormSchema {
	out := s
	out.Fields = mapNodes(s.Fields, func(field FieldSchema) FieldSchema {
		if field.Name == name {
			field.Options = append([]Option(nil), options...)
		}
		return field
	})
	return out
}

func mapNodes(nodes []FieldNode, fn func(FieldSchema) FieldSchema) []FieldNode {
	if nodes == nil {
		return nil
	}
	out := make([]FieldNode, len(nodes))
	for i, node := range nodes {
		switch {
		case node.IsLeaf():
			out[i] = Leaf(fn(*node.Field))
		case node.IsGroup():
			out[i] = FieldNode{Group: mapNodes(node.Group, fn)}
		}
	}
	return out
}
