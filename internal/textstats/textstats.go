// Package textstats derives token statistics from raw text.
package textstats

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/readability/internal/model"
	"github.com/verte-zerg/readability/internal/syllable"
)

const (
	// linsearSample is the number of leading words Linsear Write looks at.
	linsearSample = 100
	longWordRunes = 6
)

// Familiar reports whether a word belongs to the familiar-word list.
type Familiar interface {
	Contains(word string) bool
}

// Counter computes TokenStats. The zero value counts English syllables with
// the regex segmenter and treats every word as unfamiliar.
type Counter struct {
	Syllables syllable.Counter
	Familiar  Familiar
	Segmenter string
}

// Count derives all statistics for text in a single pass over its words.
func (c Counter) Count(text string) model.TokenStats {
	seg := segmenterFor(c.Segmenter)
	syl := c.Syllables
	if syl == nil {
		syl = syllable.ForLang("en")
	}

	var stats model.TokenStats
	tokens := seg.words(text)
	stats.Words = len(tokens)
	stats.Sentences = seg.sentences(text)
	stats.Characters, stats.Letters = countChars(text)

	unfamiliar := map[string]struct{}{}
	difficult := map[string]struct{}{}
	complexWords := map[string]struct{}{}
	for _, token := range tokens {
		n := syl.Count(token)
		stats.Syllables += n
		if n >= 3 {
			stats.Polysyllables++
		}
		if utf8.RuneCountInString(token) > longWordRunes {
			stats.LongWords++
		}
		if n > 5 {
			stats.VeryComplex++
			if isFaseeh(token) {
				stats.Faseeh++
			}
		}
		key := strings.Trim(normalizeApostrophes(strings.ToLower(token)), "'")
		if key == "" || (c.Familiar != nil && c.Familiar.Contains(key)) {
			continue
		}
		unfamiliar[key] = struct{}{}
		if n < 2 {
			continue
		}
		difficult[key] = struct{}{}
		if n >= 3 {
			complexWords[key] = struct{}{}
		}
	}
	stats.Unfamiliar = len(unfamiliar)
	stats.Difficult = len(difficult)
	stats.Complex = len(complexWords)

	c.countSample(text, seg, syl, &stats)
	return stats
}

// countSample fills the Linsear Write inputs from the first words of text.
func (c Counter) countSample(text string, seg segmenter, syl syllable.Counter, stats *model.TokenStats) {
	fields := strings.Fields(text)
	if len(fields) > linsearSample {
		fields = fields[:linsearSample]
	}
	for _, f := range fields {
		if syl.Count(f) < 3 {
			stats.SampleEasy++
		} else {
			stats.SampleHard++
		}
	}
	stats.SampleSentences = seg.sentences(strings.Join(fields, " "))
}

// countChars returns non-whitespace characters and letters (punctuation excluded).
func countChars(text string) (chars, letters int) {
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		chars++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) {
			letters++
		}
	}
	return chars, letters
}

func normalizeApostrophes(word string) string {
	return strings.Map(func(r rune) rune {
		if isApostrophe(r) {
			return '\''
		}
		return r
	}, word)
}

// isFaseeh flags classical Arabic word forms used by the Osman formula.
func isFaseeh(word string) bool {
	if strings.ContainsAny(word, "ءئؤذظ") {
		return true
	}
	return strings.HasSuffix(word, "وا") || strings.HasSuffix(word, "ون")
}
