package semtok

import (
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

// Match returns the tokens that apply to n and its directly matched descendants.
// It holds no state; matching the same node twice yields the same tokens.
func Match(n *syntax.Node) []Token {
	if n == nil {
		return nil
	}

	return wellFormed(match(n))
}

func match(n *syntax.Node) []Token {
	switch n.Kind {
	case syntax.KindAssignment:
		return tagRole(n, syntax.RoleVariableName, TagVariableDefinition)
	case syntax.KindCapture:
		return tagRole(n, syntax.RoleVariable, TagVariableDefinition)
	case syntax.KindFor, syntax.KindTablerow:
		return tagRole(n, syntax.RoleItem, TagVariableParameter)
	case syntax.KindArgument:
		return tagRole(n, syntax.RoleKey, TagVariableParameter)
	case syntax.KindAccess:
		return matchAccess(n, nil)
	case syntax.KindRender, syntax.KindSection, syntax.KindSections, syntax.KindInclude:
		return matchFileReferences(n)
	case syntax.KindRange:
		return matchRange(n)
	default:
		return nil
	}
}

// wellFormed drops tokens on nodes whose range ends before it starts.
func wellFormed(tokens []Token) []Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Node.Range.End >= tok.Node.Range.Start {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func tagRole(n *syntax.Node, role syntax.Role, tag Tag) []Token {
	if child := n.Child(role); child != nil {
		return []Token{{Node: child, Tag: tag}}
	}
	return nil
}

// matchAccess walks the receiver side of a chain like a.b.c, which nests as
// access(access(a, b), c). Only the innermost identifier receiver is a
// variable; every identifier property is a property. Receivers that are
// neither identifiers nor accesses (literals, ranges, ...) get no tag.
func matchAccess(n *syntax.Node, out []Token) []Token {
	receiver := n.Child(syntax.RoleReceiver)
	property := n.Child(syntax.RoleProperty)

	if receiver == nil && property == nil {
		return out
	}

	switch {
	case receiver.Is(syntax.KindIdentifier):
		out = append(out, Token{Node: receiver, Tag: TagVariable})
	case receiver.Is(syntax.KindAccess):
		out = matchAccess(receiver, out)
	}

	if property.Is(syntax.KindIdentifier) {
		out = append(out, Token{Node: property, Tag: TagProperty})
	}

	return out
}

func matchFileReferences(n *syntax.Node) []Token {
	var out []Token
	for _, c := range n.Children {
		if c.Node.Is(syntax.KindString) && (c.Role == syntax.RoleFile || c.Role == syntax.RoleNone) {
			out = append(out, Token{Node: c.Node, Tag: TagStringSpecial})
		}
	}
	return out
}

func matchRange(n *syntax.Node) []Token {
	var out []Token
	for _, c := range n.Children {
		if !c.Node.Is(syntax.KindToken) {
			continue
		}
		switch c.Node.Type {
		case "(", ")":
			out = append(out, Token{Node: c.Node, Tag: TagPunctuationBracket})
		case "..":
			out = append(out, Token{Node: c.Node, Tag: TagOperator})
		}
	}
	return out
}

// IsChainReceiver reports whether n is the first receiver of an access node.
// Such nodes are already covered by Match on the outer access; any further
// receiver children of a malformed access are matched on their own.
func IsChainReceiver(n *syntax.Node, parent *syntax.Node, role syntax.Role) bool {
	return n.Is(syntax.KindAccess) && parent.Is(syntax.KindAccess) && role == syntax.RoleReceiver &&
		parent.Child(syntax.RoleReceiver) == n
}
