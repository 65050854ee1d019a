package kousei

import (
	"fmt"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/position"
)

// ParticleRepetitionThreshold is the number of uses of one particle inside a sentence
// from which an issue is reported.
const ParticleRepetitionThreshold = 3

const particleRepetitionSource = "particle-repetition"

var trackedParticles = map[string]bool{
	"の": true, "が": true, "に": true, "を": true,
	"と": true, "で": true, "や": true, "も": true,
}

var sentenceTerminators = map[string]bool{
	"。": true, "！": true, "？": true,
}

// Sentence is a run of tokens closed by a terminator, a line break or the end of text.
// The terminator itself is the last token when present.
type Sentence Tokens

// SplitSentences groups the tokens of text into sentences. A line break the analyzer
// skipped between two tokens also closes a sentence.
func SplitSentences(text string, tokens Tokens) []Sentence {
	runes := []rune(text)
	var sentences []Sentence
	var current Sentence
	for i, token := range tokens {
		if i > 0 && len(current) > 0 && gapHasNewline(runes, tokens[i-1].End, token.Start) {
			sentences = append(sentences, current)
			current = nil
		}
		current = append(current, token)
		if isSentenceBoundary(token) {
			sentences = append(sentences, current)
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}

func isSentenceBoundary(token Token) bool {
	return sentenceTerminators[token.Surface] || strings.Contains(token.Surface, "\n")
}

func gapHasNewline(runes []rune, from, to int) bool {
	if from < 0 || to > len(runes) || from >= to {
		return false
	}
	for _, r := range runes[from:to] {
		if r == '\n' {
			return true
		}
	}
	return false
}

// DetectParticleRepetition reports particles used ParticleRepetitionThreshold times
// or more within one sentence. Offsets are resolved against m.
func DetectParticleRepetition(tokens Tokens, m *position.Mapper) []Issue {
	var issues []Issue
	for _, sentence := range SplitSentences(m.Text(), tokens) {
		issues = append(issues, checkSentenceParticles(sentence, m)...)
	}
	return issues
}

func checkSentenceParticles(sentence Sentence, m *position.Mapper) []Issue {
	var order []string
	occurrences := make(map[string][]Token)
	for _, token := range sentence {
		if token.POS != POSParticle || !trackedParticles[token.Surface] {
			continue
		}
		if _, seen := occurrences[token.Surface]; !seen {
			order = append(order, token.Surface)
		}
		occurrences[token.Surface] = append(occurrences[token.Surface], token)
	}

	var issues []Issue
	for _, particle := range order {
		found := occurrences[particle]
		if len(found) < ParticleRepetitionThreshold {
			continue
		}
		ranges := make([]Range, 0, len(found))
		for _, token := range found {
			ranges = append(ranges, m.Span(token.Start, token.RuneLen()))
		}
		first := ranges[0]
		issues = append(issues, Issue{
			ID:      fmt.Sprintf("particle-%d-%d-%s", first.StartLine, first.StartColumn, particle),
			Type:    IssueParticleRepetition,
			Message: fmt.Sprintf("助詞「%s」が1文に%d回使われています", particle, len(found)),
			Range:   first,
			Ranges:  ranges,
			Source:  particleRepetitionSource,
		})
	}
	return issues
}
