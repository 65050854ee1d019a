package lint

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// BuiltinRules returns a fresh instance of every in-process rule.
func BuiltinRules() []Rule {
	return []Rule{
		SentenceLength{},
		MaxTen{},
		MaxKanjiContinuousLen{},
		NoExclamationQuestionMark{},
		NoHankakuKana{},
	}
}

// SentenceLength reports sentences longer than the "max" option (100 runes).
type SentenceLength struct{}

func (SentenceLength) ID() string { return "sentence-length" }

func (r SentenceLength) Check(doc *Document, opts Options) []Diagnostic {
	limit := opts.Int("max", 100)
	var diags []Diagnostic
	for _, s := range doc.Sentences() {
		if n := s.Runes(); n > limit {
			diags = append(diags, doc.Report(r.ID(), s.Start,
				fmt.Sprintf("文が長すぎます（%d文字、上限%d文字）", n, limit)))
		}
	}
	return diags
}

// MaxTen reports the comma that makes a sentence reach the "max" option (3) of 読点.
type MaxTen struct{}

func (MaxTen) ID() string { return "max-ten" }

func (r MaxTen) Check(doc *Document, opts Options) []Diagnostic {
	limit := opts.Int("max", 3)
	var diags []Diagnostic
	for _, s := range doc.Sentences() {
		count := 0
		for i, c := range []rune(s.Text) {
			if c != '、' && c != '，' {
				continue
			}
			count++
			if count == limit {
				diags = append(diags, doc.Report(r.ID(), s.Start+i,
					fmt.Sprintf("一つの文で「、」を%dつ以上使用しています", limit)))
				break
			}
		}
	}
	return diags
}

// MaxKanjiContinuousLen reports runs of kanji longer than the "max" option (6).
type MaxKanjiContinuousLen struct{}

func (MaxKanjiContinuousLen) ID() string { return "max-kanji-continuous-len" }

func (r MaxKanjiContinuousLen) Check(doc *Document, opts Options) []Diagnostic {
	limit := opts.Int("max", 6)
	var diags []Diagnostic
	runs(doc.Runes(), isKanji, func(start, end int) {
		if end-start > limit {
			run := string(doc.Runes()[start:end])
			diags = append(diags, doc.Report(r.ID(), start,
				fmt.Sprintf("漢字が%d字以上連続しています: %s", limit+1, run)))
		}
	})
	return diags
}

// NoExclamationQuestionMark reports ！ ？ ! and ?. Each form can be allowed with the
// allowFullWidthExclamation, allowFullWidthQuestion, allowHalfWidthExclamation and
// allowHalfWidthQuestion options.
type NoExclamationQuestionMark struct{}

func (NoExclamationQuestionMark) ID() string { return "no-exclamation-question-mark" }

func (r NoExclamationQuestionMark) Check(doc *Document, opts Options) []Diagnostic {
	allowed := map[rune]bool{
		'！': opts.Bool("allowFullWidthExclamation", false),
		'？': opts.Bool("allowFullWidthQuestion", false),
		'!': opts.Bool("allowHalfWidthExclamation", false),
		'?': opts.Bool("allowHalfWidthQuestion", false),
	}
	var diags []Diagnostic
	for i, c := range doc.Runes() {
		if ok, tracked := allowed[c]; tracked && !ok {
			diags = append(diags, doc.Report(r.ID(), i,
				fmt.Sprintf("「%c」の使用は避けてください", c)))
		}
	}
	return diags
}

// NoHankakuKana reports half-width katakana and fixes it to the full-width form.
type NoHankakuKana struct{}

func (NoHankakuKana) ID() string { return "no-hankaku-kana" }

func (r NoHankakuKana) Check(doc *Document, _ Options) []Diagnostic {
	var diags []Diagnostic
	runs(doc.Runes(), isHankakuKana, func(start, end int) {
		run := string(doc.Runes()[start:end])
		d := doc.Report(r.ID(), start, fmt.Sprintf("半角カナ「%s」が使われています", run))
		d.Fix = &Fix{
			Range: [2]int{start, end},
			Text:  norm.NFKC.String(run),
		}
		diags = append(diags, d)
	})
	return diags
}

// runs calls fn with the bounds of every maximal run of runes matching pred.
func runs(text []rune, pred func(rune) bool, fn func(start, end int)) {
	start := -1
	for i, c := range text {
		switch {
		case pred(c) && start < 0:
			start = i
		case !pred(c) && start >= 0:
			fn(start, i)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, len(text))
	}
}

func isKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// ｦ through the voicing marks; the half-width punctuation is left alone
func isHankakuKana(r rune) bool {
	return r >= 0xFF66 && r <= 0xFF9F
}
