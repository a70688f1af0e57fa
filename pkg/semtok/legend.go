package semtok

import (
	"sort"

	"github.com/walteh/liquid-bridge/pkg/position"
)

// TokenType indexes Legend.TokenTypes.
type TokenType uint32

const (
	TokenVariable TokenType = iota
	TokenParameter
	TokenProperty
	TokenString
	TokenOperator
)

// TokenModifier is a bit set over Legend.TokenModifiers.
type TokenModifier uint32

const (
	ModifierNone        TokenModifier = 0
	ModifierDeclaration TokenModifier = 1 << 0
	ModifierStatic      TokenModifier = 1 << 1
)

// Legend is the semantic tokens legend a server registers for these tokens.
var Legend = struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}{
	TokenTypes: []string{
		"variable",  // 0
		"parameter", // 1
		"property",  // 2
		"string",    // 3
		"operator",  // 4
	},
	TokenModifiers: []string{
		"declaration", // 1 << 0
		"static",      // 1 << 1
	},
}

// LSP reports the semantic token type for the tag. Punctuation has no LSP
// token type and reports false.
func (t Tag) LSP() (TokenType, TokenModifier, bool) {
	switch t {
	case TagVariableDefinition:
		return TokenVariable, ModifierDeclaration, true
	case TagVariableParameter:
		return TokenParameter, ModifierNone, true
	case TagVariable:
		return TokenVariable, ModifierNone, true
	case TagProperty:
		return TokenProperty, ModifierNone, true
	case TagStringSpecial:
		return TokenString, ModifierStatic, true
	case TagOperator:
		return TokenOperator, ModifierNone, true
	default:
		return 0, ModifierNone, false
	}
}

// Encode produces the LSP relative token encoding
// (deltaLine, deltaStart, length, type, modifiers) for tokens over text.
// Tokens are sorted by offset first; tokens spanning lines are clipped to
// their first line. Tokens with inverted ranges are dropped.
func Encode(tokens []Token, text string) []uint32 {
	sorted := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if _, _, ok := tok.Tag.LSP(); ok && tok.Node != nil && tok.Node.Range.End >= tok.Node.Range.Start {
			sorted = append(sorted, tok)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Node.Range.Start < sorted[j].Node.Range.Start
	})

	idx := position.NewIndex(text)
	data := make([]uint32, 0, len(sorted)*5)
	prev := position.Place{}

	for _, tok := range sorted {
		typ, mod, _ := tok.Tag.LSP()
		r := idx.Range(tok.Node.Range.Start, tok.Node.Range.End)

		length := r.End.Character - r.Start.Character
		if r.End.Line != r.Start.Line {
			length = idx.Length(tok.Node.Range.Start, lineEnd(text, tok.Node.Range.Start))
		}

		deltaLine := r.Start.Line - prev.Line
		deltaStart := r.Start.Character
		if deltaLine == 0 {
			deltaStart -= prev.Character
		}

		data = append(data, uint32(deltaLine), uint32(deltaStart), uint32(length), uint32(typ), uint32(mod))
		prev = r.Start
	}

	return data
}

func lineEnd(text string, offset int) int {
	for i := offset; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}
