package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

func TestDecode(t *testing.T) {
	dump := `{
		"type": "program", "start": 0, "end": 13,
		"children": [
			{"node": {"type": "access", "start": 3, "end": 10, "children": [
				{"field": "receiver", "node": {"type": "identifier", "start": 3, "end": 7, "text": "user"}},
				{"node": {"type": ".", "anonymous": true, "start": 7, "end": 8}},
				{"field": "property", "node": {"type": "identifier", "start": 8, "end": 10, "text": "id"}}
			]}},
			{"node": {"type": "mystery_statement", "start": 10, "end": 13}}
		]
	}`

	root, err := syntax.Decode(strings.NewReader(dump))
	require.NoError(t, err, "decoding tree dump")

	assert.Equal(t, syntax.KindDocument, root.Kind)
	require.Len(t, root.Children, 2)

	access := root.Children[0].Node
	assert.Equal(t, syntax.KindAccess, access.Kind)
	assert.Equal(t, syntax.Range{Start: 3, End: 10}, access.Range)
	assert.Equal(t, "user", access.Child(syntax.RoleReceiver).Text)
	assert.Equal(t, "id", access.Child(syntax.RoleProperty).Text)
	assert.Equal(t, syntax.KindToken, access.Children[1].Node.Kind)

	assert.Equal(t, syntax.KindUnrecognized, root.Children[1].Node.Kind)
	assert.Equal(t, "mystery_statement", root.Children[1].Node.Type)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := syntax.Decode(strings.NewReader(`{"type": 12}`))
	require.Error(t, err)
}

func TestPreorder(t *testing.T) {
	tree := syntax.Branch(syntax.KindDocument, syntax.Range{},
		syntax.Positional(syntax.Branch(syntax.KindCapture, syntax.Range{Start: 0, End: 30},
			syntax.With(syntax.RoleVariable, syntax.Ident("title", 11)),
		)),
		syntax.Positional(nil),
		syntax.Positional(syntax.Ident("tail", 31)),
	)

	visits := syntax.Preorder(tree)
	require.Len(t, visits, 4)

	assert.Equal(t, syntax.KindDocument, visits[0].Node.Kind)
	assert.Equal(t, syntax.NoParent, visits[0].Parent)

	assert.Equal(t, syntax.KindCapture, visits[1].Node.Kind)
	assert.Equal(t, 0, visits[1].Parent)
	assert.Equal(t, 1, visits[1].Depth)

	assert.Equal(t, "title", visits[2].Node.Text)
	assert.Equal(t, syntax.RoleVariable, visits[2].Role)
	assert.Equal(t, 1, visits[2].Parent)
	assert.Equal(t, 2, visits[2].Depth)
	assert.Same(t, visits[1].Node, syntax.ParentNode(visits, 2))

	assert.Equal(t, "tail", visits[3].Node.Text)
	assert.Equal(t, 0, visits[3].Parent)

	assert.Nil(t, syntax.Preorder(nil))
}

func TestBranchWidensRange(t *testing.T) {
	n := syntax.Branch(syntax.KindAccess, syntax.Range{},
		syntax.With(syntax.RoleReceiver, syntax.Ident("a", 4)),
		syntax.With(syntax.RoleProperty, syntax.Ident("bcd", 6)),
	)
	assert.Equal(t, syntax.Range{Start: 4, End: 9}, n.Range)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tree    *syntax.Node
		wantErr []string
	}{
		{
			name: "test_well_formed",
			tree: syntax.Branch(syntax.KindAccess, syntax.Range{},
				syntax.With(syntax.RoleReceiver, syntax.Ident("a", 0)),
				syntax.With(syntax.RoleProperty, syntax.Ident("b", 2)),
			),
		},
		{
			name:    "test_access_without_receiver_and_property",
			tree:    syntax.Branch(syntax.KindAccess, syntax.Range{Start: 0, End: 3}),
			wantErr: []string{"access node at [0,3): missing receiver and property"},
		},
		{
			name: "test_unexpected_roles_accumulate",
			tree: syntax.Branch(syntax.KindDocument, syntax.Range{Start: 0, End: 40},
				syntax.Positional(syntax.Branch(syntax.KindCapture, syntax.Range{Start: 0, End: 20},
					syntax.With(syntax.RoleItem, syntax.Ident("x", 10)),
				)),
				syntax.Positional(syntax.Branch(syntax.KindArgument, syntax.Range{Start: 21, End: 30},
					syntax.With(syntax.RoleFile, syntax.Ident("y", 21)),
				)),
			),
			wantErr: []string{
				"capture node at [0,20): unexpected role item",
				"argument node at [21,30): unexpected role file",
			},
		},
		{
			name: "test_unchecked_kinds_pass",
			tree: syntax.Branch(syntax.KindUnrecognized, syntax.Range{Start: 0, End: 4},
				syntax.With("anything", syntax.Ident("z", 0)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := syntax.Validate(tt.tree)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestKindForType(t *testing.T) {
	assert.Equal(t, syntax.KindFor, syntax.KindForType("for_loop_statement", true))
	assert.Equal(t, syntax.KindToken, syntax.KindForType("..", false))
	assert.Equal(t, syntax.KindUnrecognized, syntax.KindForType("liquid_tag", true))
	assert.Equal(t, "unrecognized", syntax.Kind(200).String())
}
