package syllable

import "testing"

func TestEnglishCounts(t *testing.T) {
	counter := ForLang("en")
	cases := map[string]int{
		"cat":            1,
		"the":            1,
		"make":           1,
		"table":          2,
		"jumped":         1,
		"wanted":         2,
		"boxes":          2,
		"going":          2,
		"don't":          1,
		"organizational": 6,
		"people":         2,
	}
	for word, want := range cases {
		if got := counter.Count(word); got != want {
			t.Fatalf("Count(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestEnglishNonWords(t *testing.T) {
	counter := ForLang("en")
	if got := counter.Count(""); got != 0 {
		t.Fatalf("expected 0 for empty word, got %d", got)
	}
	if got := counter.Count("..."); got != 0 {
		t.Fatalf("expected 0 for punctuation, got %d", got)
	}
	if got := counter.Count("2024"); got != 1 {
		t.Fatalf("expected 1 for number, got %d", got)
	}
}

func TestRomanceCounts(t *testing.T) {
	counter := ForLang("es")
	cases := map[string]int{
		"casa":   2,
		"poeta":  3,
		"ciudad": 2,
		"quiero": 2,
		"día":    2,
	}
	for word, want := range cases {
		if got := counter.Count(word); got != want {
			t.Fatalf("Count(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestFrenchMuteE(t *testing.T) {
	if got := ForLang("fr-FR").Count("table"); got != 1 {
		t.Fatalf("expected 1 syllable for french table, got %d", got)
	}
}

func TestArabicCounts(t *testing.T) {
	counter := ForLang("ar")
	vocalized := "كَتَبَ"
	if got := counter.Count(vocalized); got != 3 {
		t.Fatalf("expected 3 syllables for vocalized word, got %d", got)
	}
	plain := "كتاب"
	if got := counter.Count(plain); got != 2 {
		t.Fatalf("expected 2 syllables for unvocalized word, got %d", got)
	}
}

func TestGenericCounts(t *testing.T) {
	counter := ForLang("de")
	if got := counter.Count("Haus"); got != 1 {
		t.Fatalf("expected 1 syllable for Haus, got %d", got)
	}
	if got := counter.Count("schönheit"); got != 2 {
		t.Fatalf("expected 2 syllables for schönheit, got %d", got)
	}
}

func TestDictionaryOverridesHeuristic(t *testing.T) {
	dict := NewDictionary(map[string]int{"fire": 2, "don't": 1}, ForLang("en"))
	if got := dict.Count("Fire"); got != 2 {
		t.Fatalf("expected dictionary count 2, got %d", got)
	}
	if got := dict.Count("cat"); got != 1 {
		t.Fatalf("expected fallback count 1, got %d", got)
	}
	for _, word := range []string{"fire.", "fire,", "(fire)", "\"Fire!\""} {
		if got := dict.Count(word); got != 2 {
			t.Fatalf("expected dictionary count 2 for %q, got %d", word, got)
		}
	}
	if got := dict.Count("Don’t"); got != 1 {
		t.Fatalf("expected dictionary count 1 for curly apostrophe, got %d", got)
	}
	if dict.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dict.Len())
	}
}
