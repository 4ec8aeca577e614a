package resolver

// Status is the terminal classification of a word's resolution
type Status string

const (
	StatusComplete            Status = "complete"
	StatusMissingDefinition   Status = "partial-missing-definition"
	StatusMissingAudio        Status = "partial-missing-audio"
	StatusMissingPartOfSpeech Status = "partial-missing-part-of-speech"
	StatusUnresolved          Status = "unresolved"
)

// Field identifies one of the required card fields
type Field string

const (
	FieldDefinition   Field = "definition"
	FieldAudio        Field = "audio"
	FieldPartOfSpeech Field = "part of speech"
)

// DefaultSeverityRanking orders missing fields by how badly their absence
// hurts a flashcard. When several fields are missing, the partial status
// names the first one in this ranking. A card without a definition is the
// least useful, so definition ranks first.
var DefaultSeverityRanking = []Field{FieldDefinition, FieldAudio, FieldPartOfSpeech}

// Outcome is what a single lookup attempt produced
type Outcome string

const (
	OutcomeFound       Outcome = "found"
	OutcomeNotFound    Outcome = "not found"
	OutcomeUnavailable Outcome = "unavailable"
)

// Attempt logs one source query during resolution
type Attempt struct {
	Source  string  // Source display name
	Outcome Outcome // What the query produced
	Detail  string  // Error text for unavailable outcomes
}

// Record is the final per-word outcome after fallback. Exactly one Record
// exists per input word; it is immutable once returned by Resolve.
type Record struct {
	Word         string
	Definition   string
	PartOfSpeech string
	AudioURL     string
	Status       Status
	Attempts     []Attempt // Sources actually queried, in order
	Skipped      []string  // Sources never tried because they are unconfigured
}

// Usable reports whether the record carries enough data for a flashcard.
// A definition is the minimum; audio and part of speech may be absent.
func (r *Record) Usable() bool {
	return r.Definition != ""
}

// missingStatus maps the first still-missing field per ranking to a status
func missingStatus(c Completeness, ranking []Field) Status {
	for _, f := range ranking {
		switch f {
		case FieldDefinition:
			if !c.DefinitionPresent {
				return StatusMissingDefinition
			}
		case FieldAudio:
			if !c.AudioPresent {
				return StatusMissingAudio
			}
		case FieldPartOfSpeech:
			if !c.PartOfSpeechPresent {
				return StatusMissingPartOfSpeech
			}
		}
	}
	return StatusComplete
}
