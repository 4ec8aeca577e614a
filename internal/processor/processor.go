package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"codeberg.org/snonux/spellingwords/internal"
	"codeberg.org/snonux/spellingwords/internal/anki"
	"codeberg.org/snonux/spellingwords/internal/audio"
	"codeberg.org/snonux/spellingwords/internal/cli"
	"codeberg.org/snonux/spellingwords/internal/dictionary"
	"codeberg.org/snonux/spellingwords/internal/report"
	"codeberg.org/snonux/spellingwords/internal/resolver"
	"codeberg.org/snonux/spellingwords/internal/wordlist"
)

// definitionMask replaces the word inside its own definition so the card
// never spells out the answer.
const definitionMask = "[the spelling word]"

// Processor handles the main word processing logic
type Processor struct {
	flags      *cli.Flags
	resolver   *resolver.Resolver
	reporter   *report.Builder
	downloader *audio.Downloader
	tts        audio.Provider
	cache      *dictionary.LookupCache
}

// NewProcessor creates a word processor over the given credentials. Both
// dictionary clients are always constructed; an empty key simply leaves
// that source unconfigured and the resolver skips it.
func NewProcessor(flags *cli.Flags, creds dictionary.Credentials, openAIKey string) (*Processor, error) {
	elementary := dictionary.NewElementaryClient(creds.ElementaryKey)
	collegiate := dictionary.NewCollegiateClient(creds.CollegiateKey)

	p := &Processor{
		flags:      flags,
		reporter:   report.NewBuilder(),
		downloader: audio.NewDownloader(),
	}

	if !flags.NoCache {
		if err := os.MkdirAll(flags.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		cache, err := dictionary.OpenLookupCache(
			filepath.Join(flags.CacheDir, "lookups.db"), dictionary.DefaultCacheTTL)
		if err != nil {
			return nil, err
		}
		elementary.SetCache(cache)
		collegiate.SetCache(cache)
		p.cache = cache
	}

	p.resolver = resolver.New(&resolver.Options{
		Sources: []dictionary.Source{elementary, collegiate},
	})

	if flags.TTSFallback {
		tts, err := audio.NewProvider(&audio.Config{
			Provider:    "openai",
			OpenAIKey:   openAIKey,
			OpenAIModel: flags.OpenAIModel,
			OpenAIVoice: flags.OpenAIVoice,
			OpenAISpeed: flags.OpenAISpeed,
			EnableCache: !flags.NoCache,
			CacheDir:    filepath.Join(flags.CacheDir, "tts"),
		})
		if err != nil {
			return nil, fmt.Errorf("TTS fallback unavailable: %w", err)
		}
		p.tts = tts
	}

	return p, nil
}

// Close releases the lookup cache
func (p *Processor) Close() error {
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

// Run processes the word list end to end: resolve, fetch audio, build the
// APKG and write the missing-words report. A single word failing never
// aborts the run; the run fails only when no word produced a usable card
// or the package cannot be written.
func (p *Processor) Run(ctx context.Context) error {
	words, err := wordlist.ReadFile(p.flags.WordsFile)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no words found in %s", p.flags.WordsFile)
	}

	fmt.Printf("Loaded %d words\n", len(words))

	records := p.resolveAll(ctx, words)

	// Media files live in a scratch directory; the APKG embeds copies.
	mediaDir, err := os.MkdirTemp("", "spellingwords_media_*")
	if err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	defer os.RemoveAll(mediaDir)

	gen := anki.NewGenerator(&anki.GeneratorOptions{})

	complete := 0
	partial := 0
	failed := 0

	for _, rec := range records {
		if rec.Status != resolver.StatusComplete {
			p.reporter.Record(rec)
		}

		if !rec.Usable() {
			failed++
			p.logf("  ✗ %q: %s\n", rec.Word, report.Reason(rec))
			continue
		}

		card := anki.Card{
			Word:         rec.Word,
			Definition:   MaskDefinition(rec.Definition, rec.Word),
			PartOfSpeech: rec.PartOfSpeech,
			AudioFile:    p.fetchAudio(ctx, rec, mediaDir),
		}
		gen.AddCard(card)

		if rec.Status == resolver.StatusComplete {
			complete++
			p.logf("  ✓ %q resolved\n", rec.Word)
		} else {
			partial++
			p.logf("  ⚠ %q: %s\n", rec.Word, report.Reason(rec))
		}
	}

	total, withAudio, _ := gen.Stats()
	if total == 0 {
		fmt.Fprintln(os.Stderr, "Warning: No words were successfully processed")
		return fmt.Errorf("no cards to write, APKG file not created")
	}

	if err := gen.GenerateAPKG(p.flags.OutputFile, p.flags.DeckName); err != nil {
		return fmt.Errorf("failed to build APKG: %w", err)
	}

	fmt.Printf("\n=== Processing Summary ===\n")
	fmt.Printf("Total words: %d\n", len(words))
	fmt.Printf("Complete: %d\n", complete)
	fmt.Printf("Partial: %d\n", partial)
	if failed > 0 {
		fmt.Printf("Failed: %d\n", failed)
	}
	fmt.Printf("Cards created: %d (%d with audio)\n", total, withAudio)
	fmt.Printf("==========================\n")
	fmt.Printf("\nOutput: %s\n", p.flags.OutputFile)

	if p.reporter.Len() > 0 {
		path, err := p.reporter.WriteFile(p.flags.OutputFile)
		if err != nil {
			return err
		}
		fmt.Printf("Missing words report: %s\n", path)
	}

	return nil
}

// resolveAll resolves every word, optionally across a bounded worker
// pool. Results always land at the word's input index, so output order
// matches input order regardless of worker scheduling. Sources within a
// word are still queried strictly in priority order.
func (p *Processor) resolveAll(ctx context.Context, words []string) []*resolver.Record {
	records := make([]*resolver.Record, len(words))

	workers := p.flags.Parallel
	if workers <= 1 {
		for i, word := range words {
			p.logf("Resolving %d/%d: %s\n", i+1, len(words), word)
			records[i] = p.resolver.Resolve(ctx, word)
		}
		return records
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = p.resolver.Resolve(ctx, words[i])
			}
		}()
	}

	for i := range words {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

// fetchAudio obtains the pronunciation file for a record: download the
// dictionary audio when there is one, otherwise synthesize it if the TTS
// fallback is enabled. Audio failures degrade the card, never the run.
func (p *Processor) fetchAudio(ctx context.Context, rec *resolver.Record, mediaDir string) string {
	outputFile := filepath.Join(mediaDir, internal.AudioFileName(rec.Word))

	if rec.AudioURL != "" {
		if err := p.downloader.DownloadPronunciation(ctx, rec.AudioURL, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio download failed for %q: %v\n", rec.Word, err)
			return ""
		}
		return outputFile
	}

	if p.tts != nil {
		if err := p.tts.GenerateAudio(ctx, rec.Word, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: TTS fallback failed for %q: %v\n", rec.Word, err)
			return ""
		}
		return outputFile
	}

	return ""
}

// logf prints progress output when verbose mode is on
func (p *Processor) logf(format string, args ...interface{}) {
	if p.flags.Verbose {
		fmt.Printf(format, args...)
	}
}

// MaskDefinition hides occurrences of the word inside its own definition
func MaskDefinition(definition, word string) string {
	if definition == "" || word == "" {
		return definition
	}
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(word))
	if err != nil {
		return definition
	}
	return pattern.ReplaceAllString(definition, definitionMask)
}
