package kousei

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestIsContentWord(t *testing.T) {
	tests := []struct {
		token Token
		want  bool
	}{
		{Token{Surface: "学校", POS: POSNoun, POSDetail: "一般"}, true},
		{Token{Surface: "走る", POS: POSVerb, POSDetail: "自立"}, true},
		{Token{Surface: "美しい", POS: POSAdjective}, true},
		{Token{Surface: "とても", POS: POSAdverb}, true},
		{Token{Surface: "その", POS: POSAdnominal}, true},
		{Token{Surface: "しかし", POS: POSConjunction}, true},
		{Token{Surface: "ああ", POS: POSInterjection}, true},
		{Token{Surface: "本", POS: POSNoun, POSDetail: "一般"}, false},
		{Token{Surface: "こと", POS: POSNoun, POSDetail: "非自立"}, false},
		{Token{Surface: "さん", POS: POSNoun, POSDetail: "接尾"}, false},
		{Token{Surface: "これ", POS: POSNoun, POSDetail: "代名詞"}, false},
		{Token{Surface: "１００", POS: POSNoun, POSDetail: "数"}, false},
		{Token{Surface: "から", POS: POSParticle}, false},
		{Token{Surface: "ました", POS: "助動詞"}, false},
		{Token{Surface: "。。", POS: "記号"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.token.Surface, func(t *testing.T) {
			assert.Equal(t, tt.want, IsContentWord(tt.token))
		})
	}
}

func TestCountFrequency(t *testing.T) {
	tokens := Tokens{
		{Surface: "先生", POS: POSNoun},
		{Surface: "学校", POS: POSNoun},
		{Surface: "ある", POS: POSVerb},
		{Surface: "は", POS: POSParticle},
		{Surface: "学校", POS: POSNoun},
		{Surface: "ある", POS: POSAdnominal},
		{Surface: "生徒", POS: POSNoun},
		{Surface: "学校", POS: POSNoun},
		{Surface: "先生", POS: POSNoun},
		{Surface: "これ", POS: POSNoun, POSDetail: "代名詞"},
		{Surface: "これ", POS: POSNoun, POSDetail: "代名詞"},
		{Surface: "これ", POS: POSNoun, POSDetail: "代名詞"},
		{Surface: "これ", POS: POSNoun, POSDetail: "代名詞"},
	}

	want := []FrequencyResult{
		{Word: "学校", Count: 3, POS: POSNoun},
		{Word: "先生", Count: 2, POS: POSNoun},
		{Word: "ある", Count: 2, POS: POSVerb},
		{Word: "生徒", Count: 1, POS: POSNoun},
	}
	if diff := cmp.Diff(want, CountFrequency(tokens)); diff != "" {
		t.Errorf("CountFrequency() mismatch (-want +got):\n%s", diff)
	}
}

func TestCountFrequencyEmpty(t *testing.T) {
	got := CountFrequency(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
