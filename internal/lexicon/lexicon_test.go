package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSkipsBlankAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	content := "# familiar words\nthe\n\nCat\n  dog  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 words, got %d", set.Len())
	}
	for _, w := range []string{"the", "cat", "CAT", "dog"} {
		if !set.Contains(w) {
			t.Fatalf("expected %q to be familiar", w)
		}
	}
	if set.Contains("bird") {
		t.Fatalf("did not expect bird to be familiar")
	}
}

func TestLoadEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestNilSet(t *testing.T) {
	var set *Set
	if set.Contains("the") {
		t.Fatalf("nil set should contain nothing")
	}
	if set.Len() != 0 {
		t.Fatalf("nil set should be empty")
	}
}

func TestFilterEnglish(t *testing.T) {
	filter := FilterForLang("en")
	for _, word := range []string{"hello", "don't"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass english filter", word)
		}
	}
	for _, word := range []string{"résumé", "naïve", "co-op", "'tis", "Hello"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterLetters(t *testing.T) {
	filter := FilterForLang("es")
	if !filter("canción") {
		t.Fatalf("expected accented word to pass")
	}
	if filter("año2") {
		t.Fatalf("expected digits to be rejected")
	}
}

func TestParseCMUDict(t *testing.T) {
	input := strings.Join([]string{
		";;; comment",
		"FIRE  F AY1 ER0",
		"FIRE(2)  F AY1 R",
		"CAT  K AE1 T",
		"READABILITY  R IY2 D AH0 B IH1 L AH0 T IY0",
	}, "\n")
	entries, err := ParseCMUDict(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCMUDict failed: %v", err)
	}
	if entries["fire"] != 2 {
		t.Fatalf("expected first pronunciation of fire to win, got %d", entries["fire"])
	}
	if entries["cat"] != 1 {
		t.Fatalf("expected cat to have 1 syllable, got %d", entries["cat"])
	}
	if entries["readability"] != 5 {
		t.Fatalf("expected readability to have 5 syllables, got %d", entries["readability"])
	}
}

func TestLoadCMUDict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmudict.txt")
	if err := os.WriteFile(path, []byte("DON'T  D OW1 N T\n"), 0o644); err != nil {
		t.Fatalf("failed to write dictionary: %v", err)
	}
	entries, err := LoadCMUDict(path)
	if err != nil {
		t.Fatalf("LoadCMUDict failed: %v", err)
	}
	if entries["don't"] != 1 {
		t.Fatalf("expected don't to have 1 syllable, got %v", entries)
	}
	if _, err := LoadCMUDict(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing dictionary")
	}
}
