package kousei

import (
	"sort"
	"unicode/utf8"
)

var contentPOS = map[string]bool{
	POSNoun:         true,
	POSVerb:         true,
	POSAdjective:    true,
	POSAdverb:       true,
	POSAdnominal:    true,
	POSConjunction:  true,
	POSInterjection: true,
}

// excludedNounDetails are noun sub-categories that carry no content of their own
var excludedNounDetails = map[string]bool{
	"非自立": true,
	"接尾":  true,
	"代名詞": true,
	"数":   true,
}

// IsContentWord reports whether token counts toward the frequency table.
func IsContentWord(token Token) bool {
	if !contentPOS[token.POS] {
		return false
	}
	if token.POS == POSNoun && excludedNounDetails[token.POSDetail] {
		return false
	}
	return utf8.RuneCountInString(token.Surface) > 1
}

// CountFrequency aggregates content words by surface. The part of speech of the first
// occurrence is kept when a surface appears under several. The result is sorted by
// count, descending; ties keep first-seen order.
func CountFrequency(tokens Tokens) []FrequencyResult {
	index := make(map[string]int)
	results := []FrequencyResult{}
	for _, token := range tokens {
		if !IsContentWord(token) {
			continue
		}
		if i, ok := index[token.Surface]; ok {
			results[i].Count++
			continue
		}
		index[token.Surface] = len(results)
		results = append(results, FrequencyResult{
			Word:  token.Surface,
			Count: 1,
			POS:   token.POS,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results
}
