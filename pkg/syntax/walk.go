package syntax

// NoParent marks a visit (or outline entry) at the top of its hierarchy.
const NoParent = -1

// Visit is one step of a pre-order traversal. Parent indexes the enclosing
// visit in the same stream.
type Visit struct {
	Node   *Node
	Parent int
	Role   Role
	Depth  int
}

// ParentNode returns the enclosing node of visits[i], or nil at the root.
func ParentNode(visits []Visit, i int) *Node {
	if p := visits[i].Parent; p != NoParent {
		return visits[p].Node
	}
	return nil
}

// Preorder flattens the tree in document order. Nil children are skipped.
func Preorder(root *Node) []Visit {
	if root == nil {
		return nil
	}
	visits := make([]Visit, 0, 64)
	var walk func(n *Node, parent int, role Role, depth int)
	walk = func(n *Node, parent int, role Role, depth int) {
		idx := len(visits)
		visits = append(visits, Visit{Node: n, Parent: parent, Role: role, Depth: depth})
		for _, c := range n.Children {
			if c.Node == nil {
				continue
			}
			walk(c.Node, idx, c.Role, depth+1)
		}
	}
	walk(root, NoParent, RoleNone, 0)
	return visits
}
