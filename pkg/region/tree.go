package region

// Symbol is an outline entry with its nested children, for clients that want
// a hierarchy instead of parent indexes.
type Symbol struct {
	Entry
	Children []*Symbol `json:"children,omitempty"`
}

// Tree nests a flat outline. Parents always precede their children in the
// outline, so one pass is enough.
func Tree(outline []Entry) []*Symbol {
	nodes := make([]*Symbol, len(outline))
	var roots []*Symbol

	for i, e := range outline {
		nodes[i] = &Symbol{Entry: e}
		if e.HasParent() && e.Parent < i {
			parent := nodes[e.Parent]
			parent.Children = append(parent.Children, nodes[i])
			continue
		}
		roots = append(roots, nodes[i])
	}

	return roots
}
