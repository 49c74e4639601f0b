package readability

import (
	"math"

	"github.com/verte-zerg/readability/internal/model"
)

// Every formula assumes Words > 0 and Sentences > 0; Compute enforces it.

func wordsPerSentence(s model.TokenStats) float64 {
	return float64(s.Words) / float64(s.Sentences)
}

func syllablesPerWord(s model.TokenStats) float64 {
	return float64(s.Syllables) / float64(s.Words)
}

func perWord(n int, s model.TokenStats) float64 {
	return float64(n) / float64(s.Words)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FleschReadingEase scores 0-100+, higher is easier.
func FleschReadingEase(s model.TokenStats) float64 {
	return round(206.835-1.015*wordsPerSentence(s)-84.6*syllablesPerWord(s), 2)
}

// FleschKincaidGrade estimates a US grade level.
func FleschKincaidGrade(s model.TokenStats) float64 {
	return round(0.39*wordsPerSentence(s)+11.8*syllablesPerWord(s)-15.59, 1)
}

// SMOG estimates a grade level from polysyllable density.
func SMOG(s model.TokenStats) float64 {
	return round(3.1291+1.0430*math.Sqrt(30*float64(s.Polysyllables)/float64(s.Sentences)), 1)
}

// ColemanLiau estimates a grade level from letters and sentences per 100 words.
func ColemanLiau(s model.TokenStats) float64 {
	letters := perWord(s.Letters, s) * 100
	sentences := perWord(s.Sentences, s) * 100
	return round(0.0588*letters-0.296*sentences-15.8, 2)
}

// AutomatedReadabilityIndex estimates a grade level from characters per word.
func AutomatedReadabilityIndex(s model.TokenStats) float64 {
	return round(4.71*perWord(s.Characters, s)+0.5*wordsPerSentence(s)-21.43, 1)
}

// DaleChall scores text by the share of unfamiliar words.
func DaleChall(s model.TokenStats) float64 {
	pct := perWord(s.Unfamiliar, s) * 100
	score := 0.1579*pct + 0.0496*wordsPerSentence(s)
	if pct > 5 {
		score += 3.6365
	}
	return round(score, 2)
}

// LinsearWrite estimates a grade level from the leading word sample.
func LinsearWrite(s model.TokenStats) float64 {
	if s.SampleSentences == 0 {
		return 0
	}
	r := float64(s.SampleEasy+3*s.SampleHard) / float64(s.SampleSentences)
	if r <= 20 {
		r -= 2
	}
	return round(r/2, 2)
}

// GunningFog estimates a grade level from sentence length and complex words.
func GunningFog(s model.TokenStats) float64 {
	return round(0.4*(wordsPerSentence(s)+100*perWord(s.Complex, s)), 2)
}

// FernandezHuerta is the Spanish adaptation of Flesch Reading Ease.
func FernandezHuerta(s model.TokenStats) float64 {
	return round(206.84-60*syllablesPerWord(s)-1.02*wordsPerSentence(s), 2)
}

// SzigrisztPazos is the Spanish perspicuity index.
func SzigrisztPazos(s model.TokenStats) float64 {
	return round(206.835-62.3*syllablesPerWord(s)-wordsPerSentence(s), 2)
}

// GutierrezPolini is a Spanish comprehensibility score based on letters.
func GutierrezPolini(s model.TokenStats) float64 {
	return round(95.2-9.7*perWord(s.Letters, s)-0.35*wordsPerSentence(s), 2)
}

// Crawford estimates years of schooling for Spanish text.
func Crawford(s model.TokenStats) float64 {
	sentences := perWord(s.Sentences, s) * 100
	syllables := syllablesPerWord(s) * 100
	return round(-0.205*sentences+0.049*syllables-3.407, 1)
}

// Gulpease is the Italian readability index (0-100, higher is easier).
func Gulpease(s model.TokenStats) float64 {
	return round(89+300*perWord(s.Sentences, s)-10*perWord(s.Characters, s), 1)
}

// Osman is the Arabic adaptation of Flesch Reading Ease.
func Osman(s model.TokenStats) float64 {
	rates := perWord(s.LongWords, s) + syllablesPerWord(s) + perWord(s.Faseeh, s) + perWord(s.VeryComplex, s)
	return round(200.791-1.015*wordsPerSentence(s)-24.181*rates, 2)
}
