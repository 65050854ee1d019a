package kousei

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/edsrzf/mmap-go"
	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// IPA part-of-speech labels used by the rules
const (
	POSNoun         = "名詞"
	POSVerb         = "動詞"
	POSAdjective    = "形容詞"
	POSAdverb       = "副詞"
	POSAdnominal    = "連体詞"
	POSConjunction  = "接続詞"
	POSInterjection = "感動詞"
	POSParticle     = "助詞"
)

// DefaultDictionaryFile is looked up in the XDG data directories when Initialize
// receives an empty dictionary path.
const DefaultDictionaryFile = "kousei/ipa.dict"

// Tokenizer segments a text into morphemes. Implementations must be safe for
// concurrent use once built.
type Tokenizer interface {
	Tokenize(text string) Tokens
}

// TokenizerBuilder constructs a Tokenizer from an on-disk dictionary.
type TokenizerBuilder func(ctx context.Context, dictionaryPath string) (Tokenizer, error)

// KagomeTokenizer is the kagome-backed Tokenizer.
type KagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeTokenizer builds a tokenizer from a kagome dictionary archive. An empty
// dictionaryPath selects the embedded IPA dictionary. userDictPath is optional.
func NewKagomeTokenizer(dictionaryPath, userDictPath string) (*KagomeTokenizer, error) {
	d := ipa.Dict()
	if dictionaryPath != "" {
		var err error
		if d, err = loadDictionary(dictionaryPath); err != nil {
			return nil, err
		}
	}

	opts := []tokenizer.Option{tokenizer.OmitBosEos()}
	if userDictPath != "" {
		udict, err := dict.NewUserDict(userDictPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load user dictionary %s: %w", userDictPath, err)
		}
		opts = append(opts, tokenizer.UserDict(udict))
	}

	t, err := tokenizer.New(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	return &KagomeTokenizer{t: t}, nil
}

// Tokenize implements Tokenizer.
func (k *KagomeTokenizer) Tokenize(text string) Tokens {
	ktoks := k.t.Tokenize(text)
	tokens := make(Tokens, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		token := Token{
			Surface:  kt.Surface,
			Position: kt.Start + 1,
			Start:    kt.Start,
			End:      kt.End,
		}
		pos := kt.POS()
		if len(pos) > 0 {
			token.POS = pos[0]
		}
		if len(pos) > 1 {
			token.POSDetail = pos[1]
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// KagomeBuilder returns a TokenizerBuilder producing kagome tokenizers that also
// load userDictPath when it is not empty.
func KagomeBuilder(userDictPath string) TokenizerBuilder {
	return func(ctx context.Context, dictionaryPath string) (Tokenizer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewKagomeTokenizer(dictionaryPath, userDictPath)
	}
}

// DefaultDictionaryPath searches the XDG data directories for DefaultDictionaryFile.
func DefaultDictionaryPath() (string, error) {
	path, err := xdg.SearchDataFile(DefaultDictionaryFile)
	if err != nil {
		return "", fmt.Errorf("no dictionary in XDG data dirs: %w", err)
	}
	return path, nil
}

// loadDictionary maps a kagome dictionary zip into memory and decodes it.
func loadDictionary(path string) (*dict.Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map dictionary %s: %w", path, err)
	}
	// dict.Load copies everything it needs out of the archive
	defer m.Unmap()

	zr, err := zip.NewReader(bytes.NewReader(m), int64(len(m)))
	if err != nil {
		return nil, fmt.Errorf("dictionary %s is not a zip archive: %w", path, err)
	}
	d, err := dict.Load(zr, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	return d, nil
}
