package syllable

import "strings"

// Words the vowel-group rules get wrong often enough to matter.
var englishExceptions = map[string]int{
	"every":      2,
	"different":  3,
	"business":   2,
	"family":     3,
	"people":     2,
	"area":       3,
	"idea":       3,
	"create":     2,
	"created":    3,
	"science":    2,
	"being":      2,
	"poem":       2,
	"quiet":      2,
	"real":       1,
	"really":     2,
	"toward":     2,
	"towards":    2,
	"naive":      2,
	"recipe":     3,
	"simile":     3,
	"maybe":      2,
	"anyone":     3,
	"someone":    2,
	"everyone":   3,
	"sometimes":  2,
	"somewhere":  2,
	"themselves": 2,
	"therefore":  2,
	"whereas":    2,
	"whereby":    2,
}

func isEnglishVowel(word []rune, i int) bool {
	switch word[i] {
	case 'a', 'e', 'i', 'o', 'u':
		// u after q is part of the consonant.
		if word[i] == 'u' && i > 0 && word[i-1] == 'q' {
			return false
		}
		return true
	case 'y':
		return i > 0
	}
	return false
}

func countEnglish(word string) int {
	runes := letters(strings.ReplaceAll(word, "’", "'"))
	if len(runes) == 0 {
		if hasAlnum(word) {
			return 1
		}
		return 0
	}
	w := string(runes)
	if n, ok := englishExceptions[w]; ok {
		return n
	}

	count := 0
	prev := false
	for i := range runes {
		v := isEnglishVowel(runes, i)
		if v && !prev {
			count++
		}
		prev = v
	}

	n := len(runes)
	vowelAt := func(i int) bool {
		return i >= 0 && i < n && isEnglishVowel(runes, i)
	}

	switch {
	case strings.HasSuffix(w, "le") && n > 2 && !vowelAt(n-3):
		// table, little: the final "le" carries its own syllable.
	case strings.HasSuffix(w, "e") && n > 1 && !vowelAt(n-2):
		count--
	case strings.HasSuffix(w, "ed") && n > 2 && !vowelAt(n-3) && runes[n-3] != 't' && runes[n-3] != 'd':
		count--
	case strings.HasSuffix(w, "es") && n > 2 && !vowelAt(n-3) && !sibilantBefore(w):
		count--
	}

	for i := 1; i+1 < n; i++ {
		pair := string(runes[i : i+2])
		before := runes[i-1]
		switch pair {
		case "ia":
			if !strings.ContainsRune("ctsgl", before) {
				count++
			}
		case "io":
			if !strings.ContainsRune("ctsgx", before) {
				count++
			}
		case "ua", "uo":
			if before != 'q' && before != 'g' {
				count++
			}
		}
	}
	if strings.HasSuffix(w, "ing") && n > 3 && vowelAt(n-4) {
		count++
	}
	if strings.HasSuffix(w, "ism") {
		count++
	}

	if count < 1 {
		return 1
	}
	return count
}

func sibilantBefore(w string) bool {
	stem := strings.TrimSuffix(w, "es")
	for _, suffix := range []string{"s", "x", "z", "ch", "sh", "g", "c"} {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return false
}
