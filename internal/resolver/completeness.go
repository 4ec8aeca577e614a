package resolver

import (
	"strings"

	"codeberg.org/snonux/spellingwords/internal/dictionary"
)

// Completeness reports which required card fields a lookup result carries
type Completeness struct {
	DefinitionPresent   bool
	PartOfSpeechPresent bool
	AudioPresent        bool
}

// IsComplete reports whether all three required fields are present
func (c Completeness) IsComplete() bool {
	return c.DefinitionPresent && c.PartOfSpeechPresent && c.AudioPresent
}

// Assess checks a lookup result for field completeness. A nil result, a
// not-found result, or a whitespace-only field all count as absent.
func Assess(r *dictionary.Result) Completeness {
	if r == nil || !r.Found {
		return Completeness{}
	}
	return Completeness{
		DefinitionPresent:   strings.TrimSpace(r.Definition) != "",
		PartOfSpeechPresent: strings.TrimSpace(r.PartOfSpeech) != "",
		AudioPresent:        strings.TrimSpace(r.AudioURL) != "",
	}
}
