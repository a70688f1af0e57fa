// Package sitter converts tree-sitter parse trees into syntax.Node views.
package sitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/syntax"
)

// Convert copies the tree rooted at node. Leaf text is sliced from source so
// the result does not keep the tree-sitter tree alive.
func Convert(node *tree_sitter.Node, source []byte) *syntax.Node {
	if node == nil {
		return nil
	}

	out := &syntax.Node{
		Kind: syntax.KindForType(node.Kind(), node.IsNamed()),
		Type: node.Kind(),
		Range: syntax.Range{
			Start: int(node.StartByte()),
			End:   int(node.EndByte()),
		},
	}

	count := node.ChildCount()
	if count == 0 {
		out.Text = node.Utf8Text(source)
		return out
	}

	out.Children = make([]syntax.Child, 0, count)
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		out.Children = append(out.Children, syntax.Child{
			Role: syntax.Role(node.FieldNameForChild(uint32(i))),
			Node: Convert(child, source),
		})
	}

	return out
}

// Parse runs a tree-sitter parser for lang over source and converts the result.
func Parse(lang *tree_sitter.Language, source []byte) (*syntax.Node, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, errors.Errorf("setting tree-sitter language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("tree-sitter returned no tree")
	}
	defer tree.Close()

	return Convert(tree.RootNode(), source), nil
}
