package kousei

import (
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/translitkit/common"
)

// Wakati renders the tokens as space-separated text (分かち書き). Blank tokens are
// dropped and the translitkit spacing rule decides between neighbours, so punctuation
// stays attached to the word before it.
func (tokens Tokens) Wakati() string {
	var b strings.Builder
	prev := ""
	for _, surface := range tokens.Surfaces() {
		if strings.TrimSpace(surface) == "" {
			continue
		}
		if prev != "" && common.DefaultSpacingRule(prev, surface) {
			b.WriteByte(' ')
		}
		b.WriteString(surface)
		prev = surface
	}
	return b.String()
}
