package kousei

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSubstitutions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "with header",
			input:    "kanji,kana\n頂く,いただく\n下さい,ください\n",
			expected: map[string]string{"頂く": "いただく", "下さい": "ください"},
		},
		{
			name:     "without header",
			input:    "頂く,いただく\n",
			expected: map[string]string{"頂く": "いただく"},
		},
		{
			name:     "blank cells skipped",
			input:    "頂く,いただく\n,ください\n",
			expected: map[string]string{"頂く": "いただく"},
		},
		{
			name:    "single column",
			input:   "頂く\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ReadSubstitutions(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("substitutions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSubstitutions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.csv")
	require.NoError(t, os.WriteFile(path, []byte("致します,いたします\n"), 0o644))

	subs, err := LoadSubstitutions(path)
	require.NoError(t, err)
	assert.Equal(t, "いたします", subs["致します"])

	_, err = LoadSubstitutions(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
