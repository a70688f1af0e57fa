package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/liquid-bridge/pkg/diff"
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

func TestExported(t *testing.T) {
	a := syntax.Range{Start: 1, End: 4}

	assert.Empty(t, diff.Exported(a, a))

	d := diff.Exported(syntax.Range{Start: 1, End: 5}, a)
	assert.NotEmpty(t, d)
	assert.Contains(t, d, "End")
}
