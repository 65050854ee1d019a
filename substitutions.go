package kousei

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadSubstitutions reads extra kanji to kana pairs from a CSV file with two columns.
// A first row whose second column is not kana (e.g. "kanji,kana") is treated as a header.
func LoadSubstitutions(csvPath string) (map[string]string, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadSubstitutions(file)
}

// ReadSubstitutions parses substitution pairs from r. See LoadSubstitutions.
func ReadSubstitutions(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	subs := make(map[string]string)
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(record))
		}

		kanji := strings.TrimSpace(record[0])
		kana := strings.TrimSpace(record[1])
		if line == 1 && !isKana(kana) {
			continue
		}
		if kanji == "" || kana == "" {
			continue
		}
		subs[kanji] = kana
	}

	return subs, nil
}

func isKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 0x3040 && r <= 0x309F) && !(r >= 0x30A0 && r <= 0x30FF) {
			return false
		}
	}
	return true
}
