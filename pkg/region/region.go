// Package region derives fold regions and outline entries from a file's
// pre-order node stream.
package region

import (
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

// Fold is one collapsible block.
type Fold struct {
	Kind  syntax.Kind  `json:"kind"`
	Range syntax.Range `json:"range"`
}

// Entry is one navigable outline symbol. Parent indexes the enclosing entry
// in the same outline, or is syntax.NoParent.
type Entry struct {
	Name   string       `json:"name,omitempty"`
	Kind   syntax.Kind  `json:"kind"`
	Range  syntax.Range `json:"range"`
	Parent int          `json:"parent"`
	Depth  int          `json:"depth"`
}

func (e Entry) HasParent() bool {
	return e.Parent != syntax.NoParent
}

var foldable = map[syntax.Kind]bool{
	syntax.KindIf:         true,
	syntax.KindUnless:     true,
	syntax.KindCase:       true,
	syntax.KindFor:        true,
	syntax.KindCapture:    true,
	syntax.KindForm:       true,
	syntax.KindPaginate:   true,
	syntax.KindTablerow:   true,
	syntax.KindRaw:        true,
	syntax.KindJavascript: true,
	syntax.KindStyle:      true,
	syntax.KindSchema:     true,
	syntax.KindComment:    true,
}

// outlineName maps outline-eligible kinds to the role holding their name.
// RoleNone means the entry is an unnamed anchor.
var outlineName = map[syntax.Kind]syntax.Role{
	syntax.KindCapture: syntax.RoleVariable,
	syntax.KindFor:     syntax.RoleItem,
	syntax.KindSchema:  syntax.RoleNone,
}

func IsFoldable(k syntax.Kind) bool {
	return foldable[k]
}

func IsOutlined(k syntax.Kind) bool {
	_, ok := outlineName[k]
	return ok
}

// Extract produces folds and outline entries, both in document order.
func Extract(visits []syntax.Visit) ([]Fold, []Entry) {
	var folds []Fold
	var outline []Entry

	// entryOf[i] is the outline index of visits[i], or NoParent
	entryOf := make([]int, len(visits))

	for i, v := range visits {
		entryOf[i] = syntax.NoParent
		n := v.Node

		if foldable[n.Kind] {
			folds = append(folds, Fold{Kind: n.Kind, Range: n.Range})
		}

		role, ok := outlineName[n.Kind]
		if !ok {
			continue
		}

		entry := Entry{
			Kind:   n.Kind,
			Range:  n.Range,
			Parent: nearestEntry(visits, entryOf, v.Parent),
		}
		if name := n.Child(role); role != syntax.RoleNone && name != nil {
			entry.Name = name.Text
		}
		if entry.HasParent() {
			entry.Depth = outline[entry.Parent].Depth + 1
		}

		entryOf[i] = len(outline)
		outline = append(outline, entry)
	}

	return folds, outline
}

func nearestEntry(visits []syntax.Visit, entryOf []int, parent int) int {
	for p := parent; p != syntax.NoParent; p = visits[p].Parent {
		if entryOf[p] != syntax.NoParent {
			return entryOf[p]
		}
	}
	return syntax.NoParent
}
