// Package diff renders readable differences between expected and actual
// values for test failure messages.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// Exported pretty-prints both values with only exported fields and returns a
// line diff from got to want, or "" when they print the same.
func Exported[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)

	d := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if d == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nactual -> expected (+ add, - remove):\n\n")
	b.WriteString(d)
	return b.String()
}
