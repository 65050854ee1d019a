package kousei

import (
	"context"
	"fmt"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/lint"
)

// LinterLoader builds the lint engine of the project at dir. An error wrapping
// lint.ErrNoConfig means the project does not use external linting.
type LinterLoader func(ctx context.Context, dir string) (lint.Engine, error)

// DefaultLinterLoader loads the project rule file with lint.Load.
func DefaultLinterLoader(opts ...lint.Option) LinterLoader {
	return func(ctx context.Context, dir string) (lint.Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return lint.Load(dir, opts...)
	}
}

// runLinter lints text with the per-call rule toggles. Engines that cannot switch rules
// themselves get their disabled rules filtered afterwards.
func runLinter(ctx context.Context, engine lint.Engine, text string, rules map[string]bool) ([]lint.Diagnostic, error) {
	if o, ok := engine.(lint.Overrider); ok && len(rules) > 0 {
		return o.LintWith(ctx, text, rules)
	}
	return engine.Lint(ctx, text)
}

// DiagnosticsToIssues converts linter diagnostics into textlint issues. Diagnostics of
// rules switched off in rules are dropped. A preset-qualified id such as
// "ja-technical-writing/max-ten" also matches the toggle "max-ten".
func DiagnosticsToIssues(diags []lint.Diagnostic, rules map[string]bool) []Issue {
	issues := make([]Issue, 0, len(diags))
	for _, d := range diags {
		if enabled, ok := ruleToggle(rules, d.RuleID); ok && !enabled {
			continue
		}
		issue := Issue{
			ID:      fmt.Sprintf("textlint-%d-%d-%s", d.Line, d.Column, d.RuleID),
			Type:    IssueTextlint,
			Message: d.Message,
			Range: Range{
				StartLine:   d.Line,
				StartColumn: d.Column,
				EndLine:     d.Line,
				EndColumn:   d.Column + 1,
			},
			Source: d.RuleID,
		}
		if d.Fix != nil {
			issue.Suggestion = d.Fix.Text
		}
		issues = append(issues, issue)
	}
	return uniqueIDs(issues)
}

func ruleToggle(rules map[string]bool, id string) (enabled, ok bool) {
	if enabled, ok = rules[id]; ok {
		return
	}
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		enabled, ok = rules[id[i+1:]]
	}
	return
}

// uniqueIDs suffixes repeated ids with #2, #3 and so on, in order of appearance.
func uniqueIDs(issues []Issue) []Issue {
	seen := make(map[string]int, len(issues))
	for i := range issues {
		id := issues[i].ID
		seen[id]++
		if n := seen[id]; n > 1 {
			issues[i].ID = fmt.Sprintf("%s#%d", id, n)
		}
	}
	return issues
}
