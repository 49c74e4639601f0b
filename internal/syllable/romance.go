package syllable

import "strings"

const (
	romanceStrong = "aeoáéíóúàèòâêôãõ"
	romanceWeak   = "iuüïîûìùy"
)

func isRomanceVowel(r rune) bool {
	return strings.ContainsRune(romanceStrong, r) || strings.ContainsRune(romanceWeak, r)
}

// countRomance counts vowel nuclei for Spanish, Italian, Portuguese and
// related orthographies. Two adjacent strong vowels form a hiatus; a weak
// vowel next to any other vowel forms a diphthong unless accented.
func countRomance(word string) int {
	runes := letters(word)
	if len(runes) == 0 {
		if hasAlnum(word) {
			return 1
		}
		return 0
	}
	n := len(runes)
	count := 0
	prevVowel := false
	prevStrong := false
	for i, r := range runes {
		vowel := isRomanceVowel(r)
		// y before a vowel is a consonant (yo, ayer).
		if r == 'y' && i+1 < n && isRomanceVowel(runes[i+1]) {
			vowel = false
		}
		// Silent u in que, qui, gue, gui.
		if r == 'u' && i > 0 && (runes[i-1] == 'q' || runes[i-1] == 'g') && i+1 < n && (runes[i+1] == 'e' || runes[i+1] == 'i') {
			vowel = false
		}
		if !vowel {
			prevVowel = false
			prevStrong = false
			continue
		}
		strong := strings.ContainsRune(romanceStrong, r)
		switch {
		case !prevVowel:
			count++
		case strong && prevStrong:
			count++
		}
		prevVowel = true
		prevStrong = strong
	}
	if count == 0 {
		return 1
	}
	return count
}

// countFrench drops the mute final e that the Romance rules would count.
func countFrench(word string) int {
	count := countRomance(word)
	w := string(letters(word))
	if count > 1 && (strings.HasSuffix(w, "e") || strings.HasSuffix(w, "es") || strings.HasSuffix(w, "ent")) {
		n := len([]rune(w))
		stem := []rune(w)
		idx := n - 1
		if strings.HasSuffix(w, "es") {
			idx = n - 2
		} else if strings.HasSuffix(w, "ent") {
			idx = n - 3
		}
		if idx > 0 && !isRomanceVowel(stem[idx-1]) {
			count--
		}
	}
	return count
}
