// Package report accumulates words that did not fully resolve and renders
// them into the missing-words report written next to the flashcard package.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/spellingwords/internal/resolver"
)

const reportRule = "======================================================================"

// Builder collects incomplete resolution records. It is safe for
// concurrent Record calls; Render reflects whatever has been accumulated
// at the time of the call and may be called any number of times.
type Builder struct {
	mu          sync.Mutex
	entries     []*resolver.Record
	generatedAt time.Time
	now         func() time.Time
}

// NewBuilder creates an empty report builder
func NewBuilder() *Builder {
	return &Builder{
		now: time.Now,
	}
}

// Record adds an incomplete resolution record. Complete records are
// ignored so that the report holds an entry exactly for every word whose
// status is not complete.
func (b *Builder) Record(rec *resolver.Record) {
	if rec == nil || rec.Status == resolver.StatusComplete {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, rec)
}

// Len returns the number of recorded words
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Render produces the report text. With zero recorded words it returns a
// valid report stating that nothing is missing.
func (b *Builder) Render(packagePath string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	// The timestamp is fixed on first render so repeated renders of the
	// same accumulated set yield identical output.
	if b.generatedAt.IsZero() {
		b.generatedAt = b.now().UTC()
	}

	var sb strings.Builder
	sb.WriteString("Spelling Words - Missing/Incomplete Words Report\n")
	fmt.Fprintf(&sb, "Generated: %s UTC\n", b.generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "APKG: %s\n", packagePath)
	sb.WriteString("\n")
	sb.WriteString(reportRule + "\n\n")

	if len(b.entries) == 0 {
		sb.WriteString("No missing words.\n\n")
	}

	for _, rec := range b.entries {
		fmt.Fprintf(&sb, "Word: %q\n", rec.Word)
		fmt.Fprintf(&sb, "Reason: %s\n", Reason(rec))
		fmt.Fprintf(&sb, "Attempted: %s\n", formatAttempts(rec.Attempts))
		if len(rec.Skipped) > 0 {
			fmt.Fprintf(&sb, "Skipped: %s\n", formatSkipped(rec.Skipped))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(reportRule + "\n")
	fmt.Fprintf(&sb, "Total missing: %d words\n", len(b.entries))

	return sb.String()
}

// MissingFilePath derives the report path from the package path: the
// package base name plus a "-missing" marker and a .txt extension.
func MissingFilePath(packagePath string) string {
	dir := filepath.Dir(packagePath)
	base := filepath.Base(packagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"-missing.txt")
}

// WriteFile renders the report and writes it alongside the package,
// returning the report path
func (b *Builder) WriteFile(packagePath string) (string, error) {
	path := MissingFilePath(packagePath)
	if err := os.WriteFile(path, []byte(b.Render(packagePath)), 0644); err != nil {
		return "", fmt.Errorf("failed to write missing words report: %w", err)
	}
	return path, nil
}

// Reason returns the report reason line for a record
func Reason(rec *resolver.Record) string {
	switch rec.Status {
	case resolver.StatusUnresolved:
		if len(rec.Attempts) == 0 {
			return "No dictionary sources configured"
		}
		return "Word not found in any dictionary"
	case resolver.StatusMissingDefinition:
		return "No definition found in any dictionary"
	case resolver.StatusMissingAudio:
		return "No audio found in any dictionary"
	case resolver.StatusMissingPartOfSpeech:
		return "No part of speech found in any dictionary"
	default:
		return string(rec.Status)
	}
}

func formatAttempts(attempts []resolver.Attempt) string {
	if len(attempts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.Outcome == resolver.OutcomeUnavailable && a.Detail != "" {
			parts = append(parts, fmt.Sprintf("%s (unavailable: %s)", a.Source, a.Detail))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%s)", a.Source, a.Outcome))
		}
	}
	return strings.Join(parts, ", ")
}

func formatSkipped(skipped []string) string {
	parts := make([]string, 0, len(skipped))
	for _, name := range skipped {
		parts = append(parts, fmt.Sprintf("%s (no API key configured)", name))
	}
	return strings.Join(parts, ", ")
}
