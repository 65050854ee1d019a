package kousei

import (
	"fmt"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/position"
)

const kanjiOpenCloseSource = "kanji-open-close"

// openForms maps kanji spellings to the kana form conventionally preferred in prose.
var openForms = map[string]string{
	"事":   "こと",
	"時":   "とき",
	"所":   "ところ",
	"他":   "ほか",
	"等":   "など",
	"為":   "ため",
	"故":   "ゆえ",
	"或いは": "あるいは",
	"貴方":  "あなた",
	"何時":  "いつ",
	"何処":  "どこ",
	"此処":  "ここ",
	"其処":  "そこ",
	"彼処":  "あそこ",
	"何故":  "なぜ",
	"殆ど":  "ほとんど",
	"滅多に": "めったに",
	"居る":  "いる",
	"或る":  "ある",
	"無く":  "なく",
	"無い":  "ない",
}

// formalNounOnly lists spellings that are opened only as formal nouns (名詞/非自立),
// as in その事 or その時. The counter suffix in 3時 and the nouns inside 事件 or 時間 keep
// their kanji.
var formalNounOnly = map[string]bool{
	"事": true,
	"時": true,
}

const posDetailDependent = "非自立"

// OpenForms returns a copy of the built-in kanji to kana table.
func OpenForms() map[string]string {
	out := make(map[string]string, len(openForms))
	for k, v := range openForms {
		out[k] = v
	}
	return out
}

// DetectKanjiOpenClose flags tokens whose kanji spelling has a conventional kana form.
// extra extends the built-in table; built-in entries win on conflict.
func DetectKanjiOpenClose(tokens Tokens, m *position.Mapper, extra map[string]string) []Issue {
	var issues []Issue
	for _, token := range tokens {
		if !ContainsKanjis(token.Surface) {
			continue
		}
		kana, ok := openForms[token.Surface]
		if !ok {
			if kana, ok = extra[token.Surface]; !ok {
				continue
			}
		}
		if formalNounOnly[token.Surface] && (token.POS != POSNoun || token.POSDetail != posDetailDependent) {
			continue
		}
		r := m.Span(token.Start, token.RuneLen())
		issues = append(issues, Issue{
			ID:         fmt.Sprintf("kanji-%d-%d", r.StartLine, r.StartColumn),
			Type:       IssueKanjiOpenClose,
			Message:    fmt.Sprintf("「%s」はひらがなで「%s」と書くことが推奨されます", token.Surface, kana),
			Range:      r,
			Suggestion: kana,
			Source:     kanjiOpenCloseSource,
		})
	}
	return issues
}
