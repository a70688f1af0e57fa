/*
Package syntax is the read-only view of a parsed Liquid file that the
classification pipeline works on.

	parser (tree-sitter, JSON dump)
	        |
	        v
	+---------------+     Preorder     +-----------+
	|  syntax.Node  | ---------------> |  []Visit  |
	+---------------+                  +-----------+
	  kind + roles                     node, parent, role
	  byte range                       (document order)

Nodes are built once per parse by a collaborator and never mutated by this module.
*/
package syntax

import (
	"encoding/json"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"
)

// Role names a child slot of a node (a tree-sitter field name).
type Role string

const (
	RoleNone         Role = ""
	RoleVariableName Role = "variable_name"
	RoleValue        Role = "value"
	RoleVariable     Role = "variable"
	RoleItem         Role = "item"
	RoleIterator     Role = "iterator"
	RoleReceiver     Role = "receiver"
	RoleProperty     Role = "property"
	RoleFile         Role = "file"
	RoleKey          Role = "key"
	RoleStart        Role = "start"
	RoleEnd          Role = "end"
	RoleCondition    Role = "condition"
)

// Range is a half-open byte range into the source text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Contains reports whether o lies inside r (inclusive of equal bounds).
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

type Child struct {
	Role Role  `json:"field,omitempty"`
	Node *Node `json:"node"`
}

type Node struct {
	Kind     Kind
	Type     string
	Range    Range
	Text     string
	Children []Child
}

// Child returns the first child in the given role, or nil.
func (me *Node) Child(role Role) *Node {
	if me == nil {
		return nil
	}
	for _, c := range me.Children {
		if c.Role == role && c.Node != nil {
			return c.Node
		}
	}
	return nil
}

// Is reports whether the node is non-nil and of kind k.
func (me *Node) Is(k Kind) bool {
	return me != nil && me.Kind == k
}

// wireNode is the JSON tree dump format:
//
//	{"type":"access","start":0,"end":5,"children":[{"field":"receiver","node":{...}}]}
type wireNode struct {
	Type      string  `json:"type"`
	Kind      string  `json:"kind,omitempty"`
	Anonymous bool    `json:"anonymous,omitempty"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Text      string  `json:"text,omitempty"`
	Children  []Child `json:"children,omitempty"`
}

func (me *Node) UnmarshalJSON(b []byte) error {
	var w wireNode
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*me = Node{
		Kind:     KindForType(w.Type, !w.Anonymous),
		Type:     w.Type,
		Range:    Range{Start: w.Start, End: w.End},
		Text:     w.Text,
		Children: w.Children,
	}
	return nil
}

func (me *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireNode{
		Type:      me.Type,
		Kind:      me.Kind.String(),
		Anonymous: me.Kind == KindToken,
		Start:     me.Range.Start,
		End:       me.Range.End,
		Text:      me.Text,
		Children:  me.Children,
	})
}

// Decode reads one JSON tree dump.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Errorf("reading syntax tree: %w", err)
	}
	return &root, nil
}
