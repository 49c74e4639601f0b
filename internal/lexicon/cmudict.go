package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCMUDict reads a CMU pronouncing dictionary and returns syllable counts
// keyed by lowercase word.
func LoadCMUDict(path string) (map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()
	return ParseCMUDict(file)
}

// ParseCMUDict parses lines of the form "WORD  PH1 PH2 ...". Vowel phonemes
// carry a stress digit, so the syllable count is the number of phonemes
// ending in a digit. Alternate pronunciations ("WORD(2)") are ignored in
// favour of the first one.
func ParseCMUDict(r io.Reader) (map[string]int, error) {
	entries := make(map[string]int)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		word := strings.ToLower(fields[0])
		if i := strings.IndexByte(word, '('); i > 0 {
			word = word[:i]
		}
		if _, ok := entries[word]; ok {
			continue
		}
		count := 0
		for _, ph := range fields[1:] {
			if ph == "#" {
				break
			}
			last := ph[len(ph)-1]
			if last >= '0' && last <= '9' {
				count++
			}
		}
		if count > 0 {
			entries[word] = count
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pronouncing dictionary: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("pronouncing dictionary is empty")
	}
	return entries, nil
}
