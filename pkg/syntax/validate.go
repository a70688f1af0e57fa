package syntax

import (
	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

// legalRoles lists, per kind, the roles a well-formed node may carry. Kinds
// missing from the table are not checked.
var legalRoles = map[Kind]map[Role]bool{
	KindAssignment: {RoleVariableName: true, RoleValue: true},
	KindCapture:    {RoleVariable: true},
	KindFor:        {RoleItem: true, RoleIterator: true},
	KindTablerow:   {RoleItem: true, RoleIterator: true},
	KindAccess:     {RoleReceiver: true, RoleProperty: true},
	KindRender:     {RoleFile: true},
	KindInclude:    {RoleFile: true},
	KindSection:    {RoleFile: true},
	KindSections:   {RoleFile: true},
	KindArgument:   {RoleKey: true, RoleValue: true},
	KindRange:      {RoleStart: true, RoleEnd: true},
}

// MalformedNodeError describes one node whose shape does not match its kind.
type MalformedNodeError struct {
	Kind   Kind
	Range  Range
	Reason string
}

func (e *MalformedNodeError) Error() string {
	return e.Kind.String() + " node at " + e.Range.String() + ": " + e.Reason
}

// Validate reports every malformed node in the tree. Classification never needs
// this; it skips malformed nodes on its own. It exists for tooling that wants to
// surface grammar mismatches.
func Validate(root *Node) error {
	var result *multierror.Error
	for _, v := range Preorder(root) {
		n := v.Node
		if allowed, ok := legalRoles[n.Kind]; ok {
			for _, c := range n.Children {
				if c.Role != RoleNone && !allowed[c.Role] {
					result = multierror.Append(result, &MalformedNodeError{
						Kind:   n.Kind,
						Range:  n.Range,
						Reason: "unexpected role " + string(c.Role),
					})
				}
			}
		}
		if n.Kind == KindAccess && n.Child(RoleReceiver) == nil && n.Child(RoleProperty) == nil {
			result = multierror.Append(result, &MalformedNodeError{
				Kind:   n.Kind,
				Range:  n.Range,
				Reason: "missing receiver and property",
			})
		}
		if n.Range.End < n.Range.Start {
			result = multierror.Append(result, &MalformedNodeError{
				Kind:   n.Kind,
				Range:  n.Range,
				Reason: "inverted range",
			})
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return errors.Errorf("validating syntax tree: %w", err)
	}
	return nil
}
