// Package syllable estimates syllable counts per word.
package syllable

import (
	"strings"
	"unicode"
)

// Counter returns the number of syllables in a single word.
type Counter interface {
	Count(word string) int
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(string) int

// Count implements Counter.
func (f CounterFunc) Count(word string) int {
	return f(word)
}

// ForLang returns the heuristic counter for a language code.
func ForLang(lang string) Counter {
	switch baseLang(lang) {
	case "es", "it", "pt", "ca", "gl", "ro":
		return CounterFunc(countRomance)
	case "fr":
		return CounterFunc(countFrench)
	case "ar":
		return CounterFunc(countArabic)
	case "en", "":
		return CounterFunc(countEnglish)
	default:
		return CounterFunc(countGeneric)
	}
}

// Dictionary looks words up in a pronunciation table and falls back to a
// heuristic counter for unknown words.
type Dictionary struct {
	entries  map[string]int
	fallback Counter
}

// NewDictionary wraps entries keyed by lowercase word.
func NewDictionary(entries map[string]int, fallback Counter) *Dictionary {
	if fallback == nil {
		fallback = CounterFunc(countEnglish)
	}
	return &Dictionary{entries: entries, fallback: fallback}
}

// Count implements Counter.
func (d *Dictionary) Count(word string) int {
	key := strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
	key = strings.ToLower(strings.ReplaceAll(key, "’", "'"))
	if n, ok := d.entries[key]; ok && n > 0 {
		return n
	}
	return d.fallback.Count(word)
}

// Len reports the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

func baseLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

// letters lowercases word and drops everything that is not a letter.
func letters(word string) []rune {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToLower(r))
		}
	}
	return out
}

func hasAlnum(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func countGeneric(word string) int {
	runes := letters(word)
	if len(runes) == 0 {
		if hasAlnum(word) {
			return 1
		}
		return 0
	}
	count := 0
	prev := false
	for _, r := range runes {
		v := strings.ContainsRune("aeiouyäöüåæøéèêëáàâíìîïóòôúùûýœ", r)
		if v && !prev {
			count++
		}
		prev = v
	}
	if count == 0 {
		return 1
	}
	return count
}
