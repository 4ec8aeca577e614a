package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	WordsFile  string
	OutputFile string
	DeckName   string
	Verbose    bool
	Parallel   int

	// Lookup cache flags
	NoCache  bool
	CacheDir string

	// TTS fallback flags
	TTSFallback bool
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputFile:  "output.apkg",
		DeckName:    "Spelling Words",
		Parallel:    1,
		CacheDir:    ".cache",
		OpenAIModel: "tts-1",
		OpenAIVoice: "alloy",
		OpenAISpeed: 0.9,
	}
}
