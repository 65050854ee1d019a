package kousei

import (
	"unicode"
)

// ContainsKanjis checks if a string contains any kanji characters
func ContainsKanjis(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
