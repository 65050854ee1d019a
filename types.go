package kousei

import (
	"github.com/tassa-yoniso-manasi-karoto/go-kousei/position"
)

// Token is a single morpheme produced by the analyzer
type Token struct {
	Surface   string `json:"surface"`   // Text as it appears
	POS       string `json:"pos"`       // Part of speech (IPA label, e.g. 名詞)
	POSDetail string `json:"posDetail"` // First sub-category (e.g. 非自立)
	Position  int    `json:"position"`  // 1-based code point position of the first character
	Start     int    `json:"-"`         // 0-based rune offset, inclusive
	End       int    `json:"-"`         // 0-based rune offset, exclusive
}

// Tokens is the analysis of one text, in order of appearance.
type Tokens []Token

// Range is a 1-based position span inside the analyzed text.
type Range = position.Range

// IssueType classifies where an issue comes from
type IssueType string

const (
	IssueParticleRepetition IssueType = "particle_repetition"
	IssueConsistency        IssueType = "consistency"
	IssueKanjiOpenClose     IssueType = "kanji_open_close"
	IssueTextlint           IssueType = "textlint"
)

// Issue is a positioned style finding
type Issue struct {
	ID         string    `json:"id"`                   // Unique within one analysis call
	Type       IssueType `json:"type"`                 // Kind of finding
	Message    string    `json:"message"`              // Human-readable explanation
	Range      Range     `json:"range"`                // Primary location
	Ranges     []Range   `json:"ranges,omitempty"`     // Every occurrence for multi-occurrence findings
	Suggestion string    `json:"suggestion,omitempty"` // Replacement text, if any
	Source     string    `json:"source,omitempty"`     // Originating rule identifier
}

// FrequencyResult is one row of the content-word frequency table
type FrequencyResult struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	POS   string `json:"pos"`
}

// Result bundles the output of Analyze
type Result struct {
	Frequency []FrequencyResult `json:"frequency"`
	Issues    []Issue           `json:"issues"`
}

// Settings gates which checks Analyze runs.
type Settings struct {
	Textlint           bool            `json:"textlint"`
	KanjiOpenClose     bool            `json:"kanjiOpenClose"`
	ParticleRepetition bool            `json:"particleRepetition"`
	Rules              map[string]bool `json:"rules,omitempty"` // Per-rule toggles forwarded to the linter
}

// DefaultSettings mirrors the default editor pipeline: external lint and kanji
// open/close recommendations, without particle repetition.
func DefaultSettings() Settings {
	return Settings{
		Textlint:       true,
		KanjiOpenClose: true,
	}
}
