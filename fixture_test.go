package kousei

import (
	"context"
	"strings"
	"unicode"
)

type seg struct {
	surface, pos, detail string
}

func noun(s string) seg     { return seg{s, POSNoun, "一般"} }
func particle(s string) seg { return seg{s, POSParticle, "格助詞"} }
func verb(s string) seg     { return seg{s, POSVerb, "自立"} }
func symbol(s string) seg   { return seg{s, "記号", "句点"} }

// fixtureTokenizer emits the given segments in order. A segment matches when it follows
// the previous one, whitespace aside, and is dropped otherwise, so one fixture can
// serve several texts.
type fixtureTokenizer struct {
	segs []seg
}

func (f fixtureTokenizer) Tokenize(text string) Tokens {
	runes := []rune(text)
	var tokens Tokens
	offset := 0
	for _, s := range f.segs {
		sr := []rune(s.surface)
		i := offset
		for i < len(runes) && unicode.IsSpace(runes[i]) && !strings.HasPrefix(s.surface, string(runes[i])) {
			i++
		}
		if !hasRunePrefix(runes[i:], sr) {
			continue
		}
		tokens = append(tokens, Token{
			Surface:   s.surface,
			POS:       s.pos,
			POSDetail: s.detail,
			Position:  i + 1,
			Start:     i,
			End:       i + len(sr),
		})
		offset = i + len(sr)
	}
	return tokens
}

func (f fixtureTokenizer) builder() TokenizerBuilder {
	return func(context.Context, string) (Tokenizer, error) {
		return f, nil
	}
}

func tokenize(text string, segs ...seg) Tokens {
	return fixtureTokenizer{segs: segs}.Tokenize(text)
}

func hasRunePrefix(text, prefix []rune) bool {
	if len(prefix) == 0 || len(prefix) > len(text) {
		return false
	}
	for i := range prefix {
		if text[i] != prefix[i] {
			return false
		}
	}
	return true
}
