package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/spellingwords/internal/dictionary"
)

// MockSource mocks a dictionary source for resolver tests. Safe for
// concurrent lookups.
type MockSource struct {
	SourceName string
	Results    map[string]*dictionary.Result
	Errors     map[string]error
	// Unconfigured makes IsAvailable and Lookup report a missing API key
	Unconfigured bool

	mu    sync.Mutex
	Calls []string
}

// Lookup returns the canned result or error for a word
func (m *MockSource) Lookup(ctx context.Context, word string) (*dictionary.Result, error) {
	if m.Unconfigured {
		return nil, dictionary.ErrUnconfigured
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	m.mu.Unlock()

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}

	if result, ok := m.Results[word]; ok {
		r := *result
		r.Word = word
		r.Source = m.SourceName
		return &r, nil
	}

	// Default: word has no entry
	return &dictionary.Result{Word: word, Source: m.SourceName}, nil
}

// Name returns the mock source name
func (m *MockSource) Name() string {
	return m.SourceName
}

// IsAvailable reports whether the mock is configured
func (m *MockSource) IsAvailable() error {
	if m.Unconfigured {
		return dictionary.ErrUnconfigured
	}
	return nil
}

// Unavailable builds a transient unavailability error for a mock source
func Unavailable(source string) error {
	return &dictionary.UnavailableError{
		Source: source,
		Err:    fmt.Errorf("connection refused"),
	}
}

// CompleteResult builds a found result with all three fields present
func CompleteResult(definition, partOfSpeech, audioURL string) *dictionary.Result {
	return &dictionary.Result{
		Found:        true,
		Definition:   definition,
		PartOfSpeech: partOfSpeech,
		AudioURL:     audioURL,
	}
}
