package utils

import "strings"

// NormalizeWidthNumbers converts full-width numerals to ASCII numerals
func NormalizeWidthNumbers(input string) string {
	replacer := strings.NewReplacer(
		"０", "0", "１", "1", "２", "2", "３", "3", "４", "4", "５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	)
	return replacer.Replace(input)
}

// NormalizeKana folds hiragana into katakana so kana sort keys collate uniformly.
// Non-kana runes pass through unchanged.
func NormalizeKana(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.TrimSpace(input) {
		if r >= 'ぁ' && r <= 'ゖ' {
			r += 'ァ' - 'ぁ'
		}
		b.WriteRune(r)
	}
	return b.String()
}
