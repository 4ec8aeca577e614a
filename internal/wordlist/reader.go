// Package wordlist reads the input word list: one lookup key per line.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadFile reads words from a file, one per line. Words are normalized
// (surrounding whitespace trimmed, lower-cased) and blank lines skipped.
// Order is preserved and duplicate lines stay separate entries.
func ReadFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := Normalize(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return words, nil
}

// Normalize trims whitespace and lower-cases a word
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
