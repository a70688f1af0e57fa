package syntax

// Leaf builds a leaf node covering text starting at offset start.
func Leaf(kind Kind, text string, start int) *Node {
	return &Node{
		Kind:  kind,
		Type:  kind.String(),
		Range: Range{Start: start, End: start + len(text)},
		Text:  text,
	}
}

// Ident is shorthand for an identifier leaf.
func Ident(name string, start int) *Node {
	return Leaf(KindIdentifier, name, start)
}

// Token builds an anonymous token node.
func Token(text string, start int) *Node {
	n := Leaf(KindToken, text, start)
	n.Type = text
	return n
}

// Branch builds an interior node. When r is the zero Range it is widened to
// cover the children.
func Branch(kind Kind, r Range, children ...Child) *Node {
	n := &Node{Kind: kind, Type: kind.String(), Range: r, Children: children}
	if r == (Range{}) && len(children) > 0 {
		n.Range = Range{Start: -1}
		for _, c := range children {
			if c.Node == nil {
				continue
			}
			if n.Range.Start < 0 || c.Node.Range.Start < n.Range.Start {
				n.Range.Start = c.Node.Range.Start
			}
			if c.Node.Range.End > n.Range.End {
				n.Range.End = c.Node.Range.End
			}
		}
		if n.Range.Start < 0 {
			n.Range.Start = 0
		}
	}
	return n
}

// With places n in role.
func With(role Role, n *Node) Child {
	return Child{Role: role, Node: n}
}

// Positional places n without a role.
func Positional(n *Node) Child {
	return Child{Node: n}
}
