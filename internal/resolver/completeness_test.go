package resolver

import (
	"testing"

	"codeberg.org/snonux/spellingwords/internal/dictionary"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name   string
		result *dictionary.Result
		want   Completeness
	}{
		{
			name:   "nil result",
			result: nil,
			want:   Completeness{},
		},
		{
			name:   "not found",
			result: &dictionary.Result{Definition: "leftover"},
			want:   Completeness{},
		},
		{
			name:   "all fields",
			result: &dictionary.Result{Found: true, Definition: "d", PartOfSpeech: "noun", AudioURL: "u"},
			want:   Completeness{DefinitionPresent: true, PartOfSpeechPresent: true, AudioPresent: true},
		},
		{
			name:   "whitespace counts as absent",
			result: &dictionary.Result{Found: true, Definition: "  ", PartOfSpeech: "noun"},
			want:   Completeness{PartOfSpeechPresent: true},
		},
		{
			name:   "definition only",
			result: &dictionary.Result{Found: true, Definition: "d"},
			want:   Completeness{DefinitionPresent: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assess(tt.result); got != tt.want {
				t.Errorf("Assess() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsComplete(t *testing.T) {
	complete := Completeness{DefinitionPresent: true, PartOfSpeechPresent: true, AudioPresent: true}
	if !complete.IsComplete() {
		t.Error("IsComplete() = false with all fields present")
	}

	partials := []Completeness{
		{PartOfSpeechPresent: true, AudioPresent: true},
		{DefinitionPresent: true, AudioPresent: true},
		{DefinitionPresent: true, PartOfSpeechPresent: true},
		{},
	}
	for _, c := range partials {
		if c.IsComplete() {
			t.Errorf("IsComplete() = true for %+v", c)
		}
	}
}
