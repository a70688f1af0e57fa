// Package position converts byte offsets into the line/character coordinates
// editors and language-server clients speak.
package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Place is a zero-based line and UTF-16 character offset.
type Place struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

type Range struct {
	Start Place `json:"start"`
	End   Place `json:"end"`
}

// Index answers offset lookups for one immutable text.
type Index struct {
	text       string
	lineStarts []int
}

func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Place maps a byte offset. Offsets past the end clamp to the end of text;
// offsets inside a multi-byte rune count the runes before them only.
func (me *Index) Place(offset int) Place {
	if offset < 0 {
		offset = 0
	}
	if offset > len(me.text) {
		offset = len(me.text)
	}

	line := sort.Search(len(me.lineStarts), func(i int) bool {
		return me.lineStarts[i] > offset
	}) - 1

	return Place{Line: line, Character: utf16Len(me.text[me.lineStarts[line]:offset])}
}

func (me *Index) Range(start, end int) Range {
	return Range{Start: me.Place(start), End: me.Place(end)}
}

// Length is the UTF-16 length of text[start:end].
func (me *Index) Length(start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(me.text) {
		end = len(me.text)
	}
	if end <= start {
		return 0
	}
	return utf16Len(me.text[start:end])
}

func (me *Index) LineCount() int {
	return len(me.lineStarts)
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if size == 1 && r == utf8.RuneError {
			// a truncated rune at the cut point is not counted
			if !utf8.FullRuneInString(s) {
				break
			}
		}
		n += utf16.RuneLen(r)
		s = s[size:]
	}
	return n
}
