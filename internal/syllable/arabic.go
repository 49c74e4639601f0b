package syllable

import "unicode"

// Tanween and short-vowel marks occupy U+064B through U+0650.
const (
	fathatan = '\u064B'
	kasra    = '\u0650'
)

func isArabicShortVowel(r rune) bool {
	return r >= fathatan && r <= kasra
}

func isArabicLongVowel(r rune) bool {
	switch r {
	case 'ا', 'و', 'ي', 'ى', 'آ':
		return true
	}
	return false
}

// countArabic counts short-vowel marks when the text is vocalized and falls
// back to long-vowel letters when it is not.
func countArabic(word string) int {
	marks := 0
	long := 0
	lettersSeen := 0
	for _, r := range word {
		switch {
		case isArabicShortVowel(r):
			marks++
		case isArabicLongVowel(r):
			if lettersSeen > 0 {
				long++
			}
			lettersSeen++
		case unicode.IsLetter(r):
			lettersSeen++
		}
	}
	if lettersSeen == 0 {
		if hasAlnum(word) {
			return 1
		}
		return 0
	}
	if marks > 0 {
		return marks
	}
	return long + 1
}
