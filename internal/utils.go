package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// AudioFileName builds a stable, unique media file name for a word
// Format: sanitized(word)_md5(word)[:8].mp3
func AudioFileName(word string) string {
	hash := md5.Sum([]byte(word))
	hashStr := hex.EncodeToString(hash[:])[:8]
	return fmt.Sprintf("%s_%s.mp3", SanitizeFilename(word), hashStr)
}

// isAlphaNumeric checks if a rune is alphanumeric
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
