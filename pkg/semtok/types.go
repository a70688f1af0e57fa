/*
Tags and Tokens:
---------------

	+-------------+     +---------------+
	|    Tag      | --> |  syntax.Node  |
	+-------------+     +---------------+
	      |                    |
	      v                    v
	[variable.definition,   byte range
	 variable.parameter,    leaf text
	 variable, property,
	 string.special,
	 punctuation.bracket,
	 operator]

A Token pairs one tag with the sub-node it applies to. Tokens are computed per
request and never cached.
*/
package semtok

import (
	"encoding/json"

	"github.com/walteh/liquid-bridge/pkg/syntax"
)

// Tag is the meaning of an identifier, string or token in its context.
type Tag uint8

const (
	TagNone Tag = iota

	// TagVariableDefinition marks a name being bound (assign, capture)
	TagVariableDefinition

	// TagVariableParameter marks loop items and named arguments
	TagVariableParameter

	// TagVariable marks the root of an access chain
	TagVariable

	// TagProperty marks every property identifier on an access chain
	TagProperty

	// TagStringSpecial marks file references (render "x", section "y")
	TagStringSpecial

	// TagPunctuationBracket marks the parentheses of a range
	TagPunctuationBracket

	// TagOperator marks the ".." of a range
	TagOperator
)

var tagNames = [...]struct {
	name    string
	capture string
}{
	TagNone:               {"none", ""},
	TagVariableDefinition: {"variable-definition", "variable.definition"},
	TagVariableParameter:  {"variable-parameter", "variable.parameter"},
	TagVariable:           {"variable", "variable"},
	TagProperty:           {"property", "property"},
	TagStringSpecial:      {"string-special", "string.special"},
	TagPunctuationBracket: {"punctuation-bracket", "punctuation.bracket"},
	TagOperator:           {"operator", "operator"},
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t].name
	}
	return "unknown"
}

// Capture returns the highlight capture name the editor's theme understands.
func (t Tag) Capture() string {
	if int(t) < len(tagNames) {
		return tagNames[t].capture
	}
	return ""
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.Capture()), nil
}

// Token is one (sub-node, tag) pair.
type Token struct {
	Node *syntax.Node
	Tag  Tag
}

func (t Token) Range() syntax.Range {
	return t.Node.Range
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag   Tag          `json:"tag"`
		Range syntax.Range `json:"range"`
		Text  string       `json:"text,omitempty"`
	}{t.Tag, t.Node.Range, t.Node.Text})
}
