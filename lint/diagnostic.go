package lint

import (
	"sort"
)

// Severity follows the textlint convention
type Severity int

const (
	SeverityInfo    Severity = 0
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

// Diagnostic is one message reported by a rule. The JSON shape matches the messages
// of textlint's json formatter so both engines decode into it.
type Diagnostic struct {
	RuleID   string   `json:"ruleId"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`   // 1-based
	Column   int      `json:"column"` // 1-based
	Index    int      `json:"index"`  // 0-based offset into the text
	Severity Severity `json:"severity"`
	Fix      *Fix     `json:"fix,omitempty"`
}

// Fix replaces Range (start inclusive, end exclusive) with Text.
type Fix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// sortDiagnostics orders diagnostics by position, then by rule.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		if diags[i].Column != diags[j].Column {
			return diags[i].Column < diags[j].Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}
