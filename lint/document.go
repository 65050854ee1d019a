package lint

import (
	"strings"
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/position"
)

var sentenceEnds = map[rune]bool{
	'。': true, '．': true, '！': true, '？': true, '!': true, '?': true,
}

// Segment is a slice of the document starting at rune offset Start.
type Segment struct {
	Start int
	Text  string
}

// Runes returns the length of the segment in runes.
func (s Segment) Runes() int {
	return len([]rune(s.Text))
}

// Document is the text handed to rules. Offsets are rune offsets into Text, which
// never carries a byte order mark.
type Document struct {
	Text      string
	runes     []rune
	mapper    *position.Mapper
	sentences []Segment
}

// NewDocument prepares text for linting.
func NewDocument(text string) *Document {
	m := position.New(text)
	d := &Document{
		Text:   m.Text(),
		runes:  []rune(m.Text()),
		mapper: m,
	}
	d.sentences = splitSegments(d.runes)
	return d
}

// Runes returns the document as code points. Callers must not modify it.
func (d *Document) Runes() []rune {
	return d.runes
}

// Sentences returns the non-blank sentences of the document. A sentence ends after a
// terminal punctuation mark or at a line break; the break is not part of it.
func (d *Document) Sentences() []Segment {
	return d.sentences
}

// Report builds a diagnostic located at the rune offset.
func (d *Document) Report(ruleID string, offset int, message string) Diagnostic {
	line, col := d.mapper.LineCol(offset)
	return Diagnostic{
		RuleID:   ruleID,
		Message:  message,
		Line:     line,
		Column:   col,
		Index:    offset,
		Severity: SeverityError,
	}
}

func splitSegments(runes []rune) []Segment {
	var segments []Segment
	start := 0
	flush := func(end int) {
		if end > start {
			text := string(runes[start:end])
			if strings.TrimFunc(text, unicode.IsSpace) != "" {
				segments = append(segments, Segment{Start: start, Text: text})
			}
		}
		start = end
	}
	// closing brackets and stacked marks stay with the sentence they end
	ended := false
	for i, r := range runes {
		if ended && !isClosing(r) && !sentenceEnds[r] {
			flush(i)
			ended = false
		}
		switch {
		case r == '\n' || r == '\r':
			flush(i)
			start = i + 1
			ended = false
		case sentenceEnds[r]:
			ended = true
		}
	}
	flush(len(runes))
	return segments
}

func isClosing(r rune) bool {
	switch r {
	case '」', '』', '）', ')', '】':
		return true
	}
	return false
}
