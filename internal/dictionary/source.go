package dictionary

import (
	"context"
	"errors"
	"fmt"
)

// Result holds the fields a single source returned for a word. Optional
// fields are empty strings when the entry does not carry them.
type Result struct {
	Word         string // The looked-up word
	Source       string // Display name of the source that produced this result
	Found        bool   // Whether the source has an entry for the word at all
	Definition   string // First usable short definition
	PartOfSpeech string // Functional label, e.g. "noun"
	AudioURL     string // URL of the pronunciation audio file
}

// ErrUnconfigured marks a source that has no API key. It is never counted
// as a failed lookup attempt.
var ErrUnconfigured = errors.New("source not configured: missing API key")

// UnavailableError marks a transient failure (network error, timeout,
// remote rejection). The lookup counts as an attempt, and resolution
// continues with the next source.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Source defines the interface for dictionary lookup providers
type Source interface {
	// Lookup fetches the entry for a word. A word without an entry is not
	// an error: it returns a Result with Found set to false.
	Lookup(ctx context.Context, word string) (*Result, error)

	// Name returns the source display name
	Name() string

	// IsAvailable checks if the source is properly configured
	IsAvailable() error
}

// Credentials carries the per-source API keys. The collegiate key is
// optional; an empty key means that source is unconfigured, not an error.
type Credentials struct {
	ElementaryKey string
	CollegiateKey string
}
