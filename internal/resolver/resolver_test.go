package resolver

import (
	"context"
	"reflect"
	"testing"

	"codeberg.org/snonux/spellingwords/internal/dictionary"
	"codeberg.org/snonux/spellingwords/internal/testutil"
)

func newTestResolver(sources ...dictionary.Source) *Resolver {
	return New(&Options{Sources: sources})
}

func TestResolveCompleteFromFirstSource(t *testing.T) {
	elementary := &testutil.MockSource{
		SourceName: "Elementary Dictionary",
		Results: map[string]*dictionary.Result{
			"cat": testutil.CompleteResult("a small domesticated mammal", "noun", "https://example.com/cat.mp3"),
		},
	}
	collegiate := &testutil.MockSource{SourceName: "Collegiate Dictionary"}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "cat")

	if rec.Status != StatusComplete {
		t.Errorf("Status = %v, want %v", rec.Status, StatusComplete)
	}
	if rec.Definition != "a small domesticated mammal" {
		t.Errorf("Definition = %q", rec.Definition)
	}

	// A word complete in the first source must never hit the second one
	if len(collegiate.Calls) != 0 {
		t.Errorf("Collegiate was queried %d times, want 0", len(collegiate.Calls))
	}
	wantAttempts := []Attempt{
		{Source: "Elementary Dictionary", Outcome: OutcomeFound},
	}
	if !reflect.DeepEqual(rec.Attempts, wantAttempts) {
		t.Errorf("Attempts = %v, want %v", rec.Attempts, wantAttempts)
	}
}

func TestResolveFieldFallback(t *testing.T) {
	// Elementary has the definition but no audio; collegiate has audio
	// and a different definition. The merged record must keep the
	// elementary definition and take only the audio from collegiate.
	elementary := &testutil.MockSource{
		SourceName: "Elementary Dictionary",
		Results: map[string]*dictionary.Result{
			"murmur": {Found: true, Definition: "a low continuous sound", PartOfSpeech: "noun"},
		},
	}
	collegiate := &testutil.MockSource{
		SourceName: "Collegiate Dictionary",
		Results: map[string]*dictionary.Result{
			"murmur": testutil.CompleteResult("a half-suppressed utterance", "noun", "https://example.com/murmur.mp3"),
		},
	}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "murmur")

	if rec.Status != StatusComplete {
		t.Errorf("Status = %v, want %v", rec.Status, StatusComplete)
	}
	if rec.Definition != "a low continuous sound" {
		t.Errorf("Definition = %q, elementary must win for fields it has", rec.Definition)
	}
	if rec.AudioURL != "https://example.com/murmur.mp3" {
		t.Errorf("AudioURL = %q, want collegiate audio", rec.AudioURL)
	}

	wantAttempts := []Attempt{
		{Source: "Elementary Dictionary", Outcome: OutcomeFound},
		{Source: "Collegiate Dictionary", Outcome: OutcomeFound},
	}
	if !reflect.DeepEqual(rec.Attempts, wantAttempts) {
		t.Errorf("Attempts = %v, want %v", rec.Attempts, wantAttempts)
	}
}

func TestResolveNotFoundAnywhere(t *testing.T) {
	elementary := &testutil.MockSource{SourceName: "Elementary Dictionary"}
	collegiate := &testutil.MockSource{SourceName: "Collegiate Dictionary"}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "zxqplorf")

	if rec.Status != StatusUnresolved {
		t.Errorf("Status = %v, want %v", rec.Status, StatusUnresolved)
	}
	wantAttempts := []Attempt{
		{Source: "Elementary Dictionary", Outcome: OutcomeNotFound},
		{Source: "Collegiate Dictionary", Outcome: OutcomeNotFound},
	}
	if !reflect.DeepEqual(rec.Attempts, wantAttempts) {
		t.Errorf("Attempts = %v, want %v", rec.Attempts, wantAttempts)
	}
}

func TestResolveUnconfiguredSourceSkipped(t *testing.T) {
	elementary := &testutil.MockSource{
		SourceName: "Elementary Dictionary",
		Results: map[string]*dictionary.Result{
			"whisper": {Found: true, Definition: "to speak softly", PartOfSpeech: "verb"},
		},
	}
	collegiate := &testutil.MockSource{SourceName: "Collegiate Dictionary", Unconfigured: true}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "whisper")

	if rec.Status != StatusMissingAudio {
		t.Errorf("Status = %v, want %v", rec.Status, StatusMissingAudio)
	}
	// Unconfigured sources are never attempts, but they are annotated
	if len(rec.Attempts) != 1 || rec.Attempts[0].Source != "Elementary Dictionary" {
		t.Errorf("Attempts = %v, want elementary only", rec.Attempts)
	}
	if !reflect.DeepEqual(rec.Skipped, []string{"Collegiate Dictionary"}) {
		t.Errorf("Skipped = %v, want collegiate", rec.Skipped)
	}
}

func TestResolveNoSourcesConfigured(t *testing.T) {
	elementary := &testutil.MockSource{SourceName: "Elementary Dictionary", Unconfigured: true}
	collegiate := &testutil.MockSource{SourceName: "Collegiate Dictionary", Unconfigured: true}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "cat")

	if rec.Status != StatusUnresolved {
		t.Errorf("Status = %v, want %v", rec.Status, StatusUnresolved)
	}
	if len(rec.Attempts) != 0 {
		t.Errorf("Attempts = %v, want none", rec.Attempts)
	}
	want := []string{"Elementary Dictionary", "Collegiate Dictionary"}
	if !reflect.DeepEqual(rec.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", rec.Skipped, want)
	}
}

func TestResolveTransientErrorCountsAsAttempt(t *testing.T) {
	elementary := &testutil.MockSource{
		SourceName: "Elementary Dictionary",
		Errors: map[string]error{
			"cat": testutil.Unavailable("Elementary Dictionary"),
		},
	}
	collegiate := &testutil.MockSource{
		SourceName: "Collegiate Dictionary",
		Results: map[string]*dictionary.Result{
			"cat": testutil.CompleteResult("a small domesticated mammal", "noun", "https://example.com/cat.mp3"),
		},
	}

	rec := newTestResolver(elementary, collegiate).Resolve(context.Background(), "cat")

	if rec.Status != StatusComplete {
		t.Errorf("Status = %v, want %v", rec.Status, StatusComplete)
	}
	if len(rec.Attempts) != 2 {
		t.Fatalf("Attempts = %v, want 2 entries", rec.Attempts)
	}
	if rec.Attempts[0].Outcome != OutcomeUnavailable {
		t.Errorf("first attempt outcome = %v, want %v", rec.Attempts[0].Outcome, OutcomeUnavailable)
	}
	if rec.Attempts[0].Detail == "" {
		t.Error("unavailable attempt should carry error detail")
	}
}

func TestClassifyPartialStatuses(t *testing.T) {
	tests := []struct {
		name   string
		result *dictionary.Result
		want   Status
	}{
		{
			name:   "missing audio",
			result: &dictionary.Result{Found: true, Definition: "def", PartOfSpeech: "noun"},
			want:   StatusMissingAudio,
		},
		{
			name:   "missing definition",
			result: &dictionary.Result{Found: true, PartOfSpeech: "noun", AudioURL: "u"},
			want:   StatusMissingDefinition,
		},
		{
			name:   "missing part of speech",
			result: &dictionary.Result{Found: true, Definition: "def", AudioURL: "u"},
			want:   StatusMissingPartOfSpeech,
		},
		{
			// Definition outranks audio when both are missing
			name:   "missing definition and audio",
			result: &dictionary.Result{Found: true, PartOfSpeech: "noun"},
			want:   StatusMissingDefinition,
		},
		{
			// Audio outranks part of speech
			name:   "missing audio and part of speech",
			result: &dictionary.Result{Found: true, Definition: "def"},
			want:   StatusMissingAudio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &testutil.MockSource{
				SourceName: "Elementary Dictionary",
				Results:    map[string]*dictionary.Result{"w": tt.result},
			}
			rec := newTestResolver(source).Resolve(context.Background(), "w")
			if rec.Status != tt.want {
				t.Errorf("Status = %v, want %v", rec.Status, tt.want)
			}
		})
	}
}

func TestSeverityRankingConfigurable(t *testing.T) {
	source := &testutil.MockSource{
		SourceName: "Elementary Dictionary",
		Results: map[string]*dictionary.Result{
			"w": {Found: true, PartOfSpeech: "noun"}, // definition and audio missing
		},
	}

	r := New(&Options{
		Sources:         []dictionary.Source{source},
		SeverityRanking: []Field{FieldAudio, FieldDefinition, FieldPartOfSpeech},
	})

	rec := r.Resolve(context.Background(), "w")
	if rec.Status != StatusMissingAudio {
		t.Errorf("Status = %v, want %v with audio-first ranking", rec.Status, StatusMissingAudio)
	}
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"with definition", Record{Definition: "def"}, true},
		{"definition only field", Record{Definition: "def", Status: StatusMissingAudio}, true},
		{"no definition", Record{PartOfSpeech: "noun", AudioURL: "u"}, false},
		{"empty", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Usable(); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}
