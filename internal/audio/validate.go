package audio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// ValidateWord validates that the input is usable as a spelling word
func ValidateWord(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}

	if !hasLetter {
		return fmt.Errorf("text must contain at least one letter")
	}

	return nil
}

// ValidateMP3 checks that data starts like an MP3 stream: either an ID3
// tag or an MPEG frame sync.
func ValidateMP3(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("audio data too short (%d bytes)", len(data))
	}

	if bytes.HasPrefix(data, []byte("ID3")) {
		return nil
	}

	// MPEG frame sync: 11 set bits
	if data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return nil
	}

	return fmt.Errorf("data does not look like MP3 audio")
}
