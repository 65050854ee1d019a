package kousei

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kagomeOnce sync.Once
	kagome     *KagomeTokenizer
	kagomeErr  error
)

// embeddedTokenizer shares one tokenizer over the embedded IPA dictionary between tests.
func embeddedTokenizer(t *testing.T) *KagomeTokenizer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping dictionary load in short mode")
	}
	kagomeOnce.Do(func() {
		kagome, kagomeErr = NewKagomeTokenizer("", "")
	})
	require.NoError(t, kagomeErr)
	return kagome
}

// TestKagomeTokenize checks surfaces, parts of speech and offsets
func TestKagomeTokenize(t *testing.T) {
	tokens := embeddedTokenizer(t).Tokenize("彼の本。")

	assert.Equal(t, []string{"彼", "の", "本", "。"}, tokens.Surfaces())
	assert.Equal(t, POSNoun, tokens[0].POS)
	assert.Equal(t, "代名詞", tokens[0].POSDetail)
	assert.Equal(t, POSParticle, tokens[1].POS)

	for i, token := range tokens {
		assert.Equal(t, i, token.Start)
		assert.Equal(t, i+1, token.End)
		assert.Equal(t, i+1, token.Position)
	}
}

// TestKagomeTokenizeOffsets checks that offsets count code points across lines
func TestKagomeTokenizeOffsets(t *testing.T) {
	text := "日本語を\n勉強する"
	tokens := embeddedTokenizer(t).Tokenize(text)
	runes := []rune(text)

	require.NotEmpty(t, tokens)
	for _, token := range tokens {
		assert.Equal(t, token.Surface, string(runes[token.Start:token.End]))
	}
	last := tokens[len(tokens)-1]
	assert.Equal(t, len(runes), last.End)
}

func TestKagomeTokenizeEmpty(t *testing.T) {
	assert.Empty(t, embeddedTokenizer(t).Tokenize(""))
}

func TestNewKagomeTokenizerErrors(t *testing.T) {
	_, err := NewKagomeTokenizer(filepath.Join(t.TempDir(), "missing.dict"), "")
	assert.Error(t, err)

	notZip := filepath.Join(t.TempDir(), "ipa.dict")
	require.NoError(t, os.WriteFile(notZip, []byte("not a dictionary archive"), 0o644))
	_, err = NewKagomeTokenizer(notZip, "")
	assert.Error(t, err)

	_, err = NewKagomeTokenizer("", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestKagomeBuilder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := KagomeBuilder("")(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

// TestKagomeUserDictionary loads a user dictionary so a compound stays one token
func TestKagomeUserDictionary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping dictionary load in short mode")
	}
	path := filepath.Join(t.TempDir(), "user.csv")
	entry := "校正支援,校正支援,コウセイシエン,カスタム名詞\n"
	require.NoError(t, os.WriteFile(path, []byte(entry), 0o644))

	k, err := NewKagomeTokenizer("", path)
	require.NoError(t, err)
	tokens := k.Tokenize("校正支援の道具")
	require.NotEmpty(t, tokens)
	assert.Equal(t, "校正支援", tokens[0].Surface)
}
