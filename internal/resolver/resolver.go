package resolver

import (
	"context"
	"errors"
	"strings"

	"codeberg.org/snonux/spellingwords/internal/dictionary"
)

// Options configures a Resolver
type Options struct {
	// Sources in priority order. Earlier sources win for every field
	// they carry; later sources only fill what is still missing.
	Sources []dictionary.Source

	// SeverityRanking orders missing fields for partial-status
	// classification. Defaults to DefaultSeverityRanking.
	SeverityRanking []Field
}

// Resolver queries dictionary sources in priority order per word
type Resolver struct {
	sources []dictionary.Source
	ranking []Field
}

// New creates a resolver over the given options
func New(opts *Options) *Resolver {
	ranking := opts.SeverityRanking
	if len(ranking) == 0 {
		ranking = DefaultSeverityRanking
	}
	return &Resolver{
		sources: opts.Sources,
		ranking: ranking,
	}
}

// Resolve fills a word's required fields from the configured sources and
// classifies the outcome. It never returns an error: unavailable sources
// and absent entries are recorded in the attempts log instead.
func (r *Resolver) Resolve(ctx context.Context, word string) *Record {
	rec := &Record{Word: word}

	for _, source := range r.sources {
		if err := source.IsAvailable(); errors.Is(err, dictionary.ErrUnconfigured) {
			// Never tried, so not an attempt. Still noted so the report
			// can explain why fallback coverage was reduced.
			rec.Skipped = append(rec.Skipped, source.Name())
			continue
		}

		result, err := source.Lookup(ctx, word)
		if err != nil {
			if errors.Is(err, dictionary.ErrUnconfigured) {
				rec.Skipped = append(rec.Skipped, source.Name())
				continue
			}
			rec.Attempts = append(rec.Attempts, Attempt{
				Source:  source.Name(),
				Outcome: OutcomeUnavailable,
				Detail:  err.Error(),
			})
			continue
		}

		if !result.Found {
			rec.Attempts = append(rec.Attempts, Attempt{
				Source:  source.Name(),
				Outcome: OutcomeNotFound,
			})
			continue
		}

		rec.Attempts = append(rec.Attempts, Attempt{
			Source:  source.Name(),
			Outcome: OutcomeFound,
		})
		r.merge(rec, result)

		if r.accumulated(rec).IsComplete() {
			break
		}
	}

	rec.Status = r.classify(rec)
	return rec
}

// merge fills every still-empty field of the record from the result.
// Fields filled by an earlier source are never overwritten.
func (r *Resolver) merge(rec *Record, result *dictionary.Result) {
	c := Assess(result)
	if rec.Definition == "" && c.DefinitionPresent {
		rec.Definition = strings.TrimSpace(result.Definition)
	}
	if rec.PartOfSpeech == "" && c.PartOfSpeechPresent {
		rec.PartOfSpeech = strings.TrimSpace(result.PartOfSpeech)
	}
	if rec.AudioURL == "" && c.AudioPresent {
		rec.AudioURL = strings.TrimSpace(result.AudioURL)
	}
}

// accumulated reports completeness of the merged record so far
func (r *Resolver) accumulated(rec *Record) Completeness {
	return Completeness{
		DefinitionPresent:   rec.Definition != "",
		PartOfSpeechPresent: rec.PartOfSpeech != "",
		AudioPresent:        rec.AudioURL != "",
	}
}

func (r *Resolver) classify(rec *Record) Status {
	c := r.accumulated(rec)
	switch {
	case c.IsComplete():
		return StatusComplete
	case !c.DefinitionPresent && !c.PartOfSpeechPresent && !c.AudioPresent:
		return StatusUnresolved
	default:
		return missingStatus(c, r.ranking)
	}
}
