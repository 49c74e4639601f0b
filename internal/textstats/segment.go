package textstats

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Segmenter names accepted by Counter.
const (
	SegmenterRegex   = "regex"
	SegmenterUnicode = "unicode"
)

// Segmenters lists the accepted segmenter names.
var Segmenters = []string{SegmenterRegex, SegmenterUnicode}

type segmenter interface {
	words(text string) []string
	sentences(text string) int
}

func segmenterFor(name string) segmenter {
	if strings.EqualFold(name, SegmenterUnicode) {
		return unicodeSegmenter{}
	}
	return regexSegmenter{}
}

// A sentence candidate starts at a word character and runs to the next
// terminal punctuation run.
var sentencePattern = regexp.MustCompile(`[\p{L}\p{N}_][^.!?]*[.!?]*`)

// regexSegmenter strips punctuation (keeping apostrophes) and splits on
// whitespace. Sentences of two words or fewer are treated as fragments.
type regexSegmenter struct{}

func (regexSegmenter) words(text string) []string {
	fields := strings.Fields(stripPunctuation(text))
	out := fields[:0]
	for _, f := range fields {
		if isWordToken(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s regexSegmenter) sentences(text string) int {
	if len(s.words(text)) == 0 {
		return 0
	}
	candidates := sentencePattern.FindAllString(text, -1)
	ignored := 0
	for _, c := range candidates {
		if len(s.words(c)) <= 2 {
			ignored++
		}
	}
	n := len(candidates) - ignored
	if n < 1 {
		return 1
	}
	return n
}

// unicodeSegmenter follows UAX #29 word and sentence boundaries.
type unicodeSegmenter struct{}

func (unicodeSegmenter) words(text string) []string {
	var out []string
	tokens := words.FromString(text)
	for tokens.Next() {
		token := tokens.Value()
		if isWordToken(token) {
			out = append(out, token)
		}
	}
	return out
}

func (s unicodeSegmenter) sentences(text string) int {
	n := 0
	hasWords := false
	tokens := sentences.FromString(text)
	for tokens.Next() {
		if len(s.words(tokens.Value())) > 0 {
			n++
			hasWords = true
		}
	}
	if !hasWords {
		return 0
	}
	return n
}

func isWordToken(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '‘'
}

// stripPunctuation removes everything except word characters, whitespace
// and apostrophes.
func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r), r == '_':
			return r
		case unicode.IsSpace(r), isApostrophe(r):
			return r
		default:
			return -1
		}
	}, text)
}
