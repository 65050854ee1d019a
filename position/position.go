// Package position maps code point offsets of a text to 1-based line and column numbers.
package position

import (
	"sort"
	"strings"
)

const bom = "\ufeff"

// Range is a 1-based, end-exclusive span of a text.
type Range struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// Mapper resolves code point offsets into line/column pairs.
// Offsets count runes, so a multi-byte Japanese character is one unit.
type Mapper struct {
	text       string
	length     int
	lineStarts []int
}

// New precomputes the line starts of text. A single leading byte order mark is dropped
// and is not counted in any offset.
func New(text string) *Mapper {
	text = StripBOM(text)
	m := &Mapper{
		text:       text,
		lineStarts: []int{0},
	}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			m.lineStarts = append(m.lineStarts, offset)
		}
	}
	m.length = offset
	return m
}

// StripBOM removes one leading U+FEFF from text.
func StripBOM(text string) string {
	return strings.TrimPrefix(text, bom)
}

// Text returns the mapped text without its byte order mark.
func (m *Mapper) Text() string {
	return m.text
}

// Len returns the number of runes of the mapped text.
func (m *Mapper) Len() int {
	return m.length
}

// Lines returns the number of lines, an empty text having one.
func (m *Mapper) Lines() int {
	return len(m.lineStarts)
}

// LineCol returns the 1-based line and column of offset.
// Negative offsets are clamped to the start of the text.
func (m *Mapper) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	// index of the first line start strictly greater than offset
	i := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	})
	return i, offset - m.lineStarts[i-1] + 1
}

// Span returns the range covering length runes starting at offset. The end column is
// computed on the start line.
func (m *Mapper) Span(offset, length int) Range {
	line, col := m.LineCol(offset)
	return Range{
		StartLine:   line,
		StartColumn: col,
		EndLine:     line,
		EndColumn:   col + length,
	}
}
