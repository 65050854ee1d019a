package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineCol(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"first char", "abc\ndef", 0, 1, 1},
		{"end of first line", "abc\ndef", 2, 1, 3},
		{"newline belongs to its line", "abc\ndef", 3, 1, 4},
		{"start of second line", "abc\ndef", 4, 2, 1},
		{"multibyte counts as one unit", "日本語\n文章", 4, 2, 1},
		{"multibyte column", "日本語です", 3, 1, 4},
		{"crlf keeps carriage return on previous line", "ab\r\ncd", 4, 2, 1},
		{"empty lines", "a\n\n\nb", 4, 4, 1},
		{"negative offset clamped", "abc", -3, 1, 1},
		{"offset past end stays on last line", "ab\ncd", 10, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := New(tt.text).LineCol(tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestBOMIsTransparent(t *testing.T) {
	plain := New("abc\ndef")
	withBOM := New("\ufeffabc\ndef")

	assert.Equal(t, plain.Text(), withBOM.Text())
	assert.Equal(t, plain.Len(), withBOM.Len())
	for offset := 0; offset < plain.Len(); offset++ {
		l1, c1 := plain.LineCol(offset)
		l2, c2 := withBOM.LineCol(offset)
		assert.Equal(t, l1, l2, "line at offset %d", offset)
		assert.Equal(t, c1, c2, "column at offset %d", offset)
	}
}

func TestOnlyOneBOMIsStripped(t *testing.T) {
	m := New("\ufeff\ufeffa")
	assert.Equal(t, "\ufeffa", m.Text())
	assert.Equal(t, 2, m.Len())
}

func TestSpan(t *testing.T) {
	m := New("一行目\n彼の本の")
	r := m.Span(5, 1)
	assert.Equal(t, Range{StartLine: 2, StartColumn: 2, EndLine: 2, EndColumn: 3}, r)
}

func TestLines(t *testing.T) {
	assert.Equal(t, 1, New("").Lines())
	assert.Equal(t, 3, New("a\nb\n").Lines())
}
