package kousei

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/lint"
)

// fakeEngine returns canned diagnostics and records the overrides it was called with.
type fakeEngine struct {
	diags     []lint.Diagnostic
	err       error
	calls     int
	overrides map[string]bool
}

func (f *fakeEngine) Lint(ctx context.Context, text string) ([]lint.Diagnostic, error) {
	f.calls++
	return f.diags, f.err
}

// overridingEngine additionally switches rules per call.
type overridingEngine struct {
	fakeEngine
}

func (o *overridingEngine) LintWith(ctx context.Context, text string, overrides map[string]bool) ([]lint.Diagnostic, error) {
	o.overrides = overrides
	return o.Lint(ctx, text)
}

func TestDiagnosticsToIssues(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "max-ten", Message: "読点が多すぎます", Line: 2, Column: 5, Severity: lint.SeverityError},
		{
			RuleID: "no-hankaku-kana", Message: "半角カナ", Line: 1, Column: 1,
			Fix: &lint.Fix{Range: [2]int{0, 3}, Text: "ガイド"},
		},
	}

	want := []Issue{
		{
			ID:      "textlint-2-5-max-ten",
			Type:    IssueTextlint,
			Message: "読点が多すぎます",
			Range:   Range{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 6},
			Source:  "max-ten",
		},
		{
			ID:         "textlint-1-1-no-hankaku-kana",
			Type:       IssueTextlint,
			Message:    "半角カナ",
			Range:      Range{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2},
			Suggestion: "ガイド",
			Source:     "no-hankaku-kana",
		},
	}
	if diff := cmp.Diff(want, DiagnosticsToIssues(diags, nil)); diff != "" {
		t.Errorf("DiagnosticsToIssues() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticsToIssuesToggles(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "ja-technical-writing/max-ten", Line: 1, Column: 1},
		{RuleID: "sentence-length", Line: 1, Column: 1},
		{RuleID: "no-doubled-joshi", Line: 1, Column: 3},
	}

	issues := DiagnosticsToIssues(diags, map[string]bool{
		"max-ten":          false,
		"no-doubled-joshi": true,
	})
	var sources []string
	for _, issue := range issues {
		sources = append(sources, issue.Source)
	}
	assert.Equal(t, []string{"sentence-length", "no-doubled-joshi"}, sources)

	assert.NotNil(t, DiagnosticsToIssues(nil, nil))
}

func TestDiagnosticsToIssuesUniqueIDs(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "no-exclamation-question-mark", Line: 1, Column: 4},
		{RuleID: "no-exclamation-question-mark", Line: 1, Column: 4},
		{RuleID: "no-exclamation-question-mark", Line: 1, Column: 4},
		{RuleID: "no-exclamation-question-mark", Line: 1, Column: 5},
	}

	var ids []string
	for _, issue := range DiagnosticsToIssues(diags, nil) {
		ids = append(ids, issue.ID)
	}
	assert.Equal(t, []string{
		"textlint-1-4-no-exclamation-question-mark",
		"textlint-1-4-no-exclamation-question-mark#2",
		"textlint-1-4-no-exclamation-question-mark#3",
		"textlint-1-5-no-exclamation-question-mark",
	}, ids)
}

func TestRunLinter(t *testing.T) {
	ctx := context.Background()
	rules := map[string]bool{"max-ten": true}

	plain := &fakeEngine{}
	_, err := runLinter(ctx, plain, "文", rules)
	require.NoError(t, err)
	assert.Equal(t, 1, plain.calls)

	overriding := &overridingEngine{}
	_, err = runLinter(ctx, overriding, "文", rules)
	require.NoError(t, err)
	assert.Equal(t, rules, overriding.overrides)

	failing := &fakeEngine{err: errors.New("boom")}
	_, err = runLinter(ctx, failing, "文", nil)
	assert.Error(t, err)
}

func TestDefaultLinterLoader(t *testing.T) {
	_, err := DefaultLinterLoader()(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, lint.ErrNoConfig))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DefaultLinterLoader()(ctx, t.TempDir())
	assert.True(t, errors.Is(err, context.Canceled))
}
