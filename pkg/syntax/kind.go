package syntax

// Kind is the closed set of node categories the classification rules understand.
// Grammar node types outside this set map to KindUnrecognized.
type Kind uint8

const (
	KindUnrecognized Kind = iota
	KindDocument

	// statements
	KindAssignment
	KindCapture
	KindFor
	KindTablerow
	KindRender
	KindSection
	KindSections
	KindInclude
	KindSchema
	KindComment
	KindIf
	KindUnless
	KindCase
	KindForm
	KindPaginate
	KindRaw
	KindJavascript
	KindStyle

	// expressions
	KindAccess
	KindArgument
	KindRange

	// leaves
	KindIdentifier
	KindString
	KindNumber

	// KindToken is an anonymous grammar token such as "(", ".." or "%}".
	KindToken
)

var kindNames = [...]string{
	KindUnrecognized: "unrecognized",
	KindDocument:     "document",
	KindAssignment:   "assignment",
	KindCapture:      "capture",
	KindFor:          "for",
	KindTablerow:     "tablerow",
	KindRender:       "render",
	KindSection:      "section",
	KindSections:     "sections",
	KindInclude:      "include",
	KindSchema:       "schema",
	KindComment:      "comment",
	KindIf:           "if",
	KindUnless:       "unless",
	KindCase:         "case",
	KindForm:         "form",
	KindPaginate:     "paginate",
	KindRaw:          "raw",
	KindJavascript:   "javascript",
	KindStyle:        "style",
	KindAccess:       "access",
	KindArgument:     "argument",
	KindRange:        "range",
	KindIdentifier:   "identifier",
	KindString:       "string",
	KindNumber:       "number",
	KindToken:        "token",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnrecognized]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// grammarTypes maps the node type names emitted by the Liquid tree-sitter grammar.
var grammarTypes = map[string]Kind{
	"program":              KindDocument,
	"template":             KindDocument,
	"assignment_statement": KindAssignment,
	"capture_statement":    KindCapture,
	"for_loop_statement":   KindFor,
	"tablerow_statement":   KindTablerow,
	"render_statement":     KindRender,
	"section_statement":    KindSection,
	"sections_statement":   KindSections,
	"include_statement":    KindInclude,
	"schema_statement":     KindSchema,
	"comment":              KindComment,
	"comment_statement":    KindComment,
	"if_statement":         KindIf,
	"unless_statement":     KindUnless,
	"case_statement":       KindCase,
	"form_statement":       KindForm,
	"paginate_statement":   KindPaginate,
	"raw_statement":        KindRaw,
	"javascript_statement": KindJavascript,
	"style_statement":      KindStyle,
	"access":               KindAccess,
	"argument":             KindArgument,
	"range":                KindRange,
	"identifier":           KindIdentifier,
	"string":               KindString,
	"number":               KindNumber,
}

// KindForType resolves a grammar node type. Named types the table does not know
// are unrecognized; anonymous tokens are KindToken.
func KindForType(typ string, named bool) Kind {
	if !named {
		return KindToken
	}
	if k, ok := grammarTypes[typ]; ok {
		return k
	}
	return KindUnrecognized
}
