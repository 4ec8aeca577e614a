package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
)

const (
	mwAPIURL    = "https://www.dictionaryapi.com/api/v3/references"
	mwAudioURL  = "https://media.merriam-webster.com/audio/prons/en/us/mp3"
	mwTimeout   = 10 * time.Second
	mwUserAgent = "spellingwords/" + "1.0"

	// Merriam-Webster product reference codes
	elementaryRef = "sd2"
	collegiateRef = "collegiate"

	// ElementaryName and CollegiateName are the display names used in
	// attempt logs and the missing-words report.
	ElementaryName = "Elementary Dictionary"
	CollegiateName = "Collegiate Dictionary"
)

// MWClient implements Source for a single Merriam-Webster reference
type MWClient struct {
	name       string
	ref        string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rateLimit  *rateLimiter
	breaker    *gobreaker.CircuitBreaker
	cache      *LookupCache
}

// mwEntry is the subset of a Merriam-Webster JSON entry this client reads
type mwEntry struct {
	Meta struct {
		ID string `json:"id"`
	} `json:"meta"`
	Fl  string `json:"fl"`
	Hwi struct {
		Hw  string `json:"hw"`
		Prs []struct {
			Mw    string `json:"mw"`
			Sound struct {
				Audio string `json:"audio"`
			} `json:"sound"`
		} `json:"prs"`
	} `json:"hwi"`
	Shortdef []string `json:"shortdef"`
}

func newMWClient(name, ref, apiKey string) *MWClient {
	return &MWClient{
		name:    name,
		ref:     ref,
		apiKey:  apiKey,
		baseURL: mwAPIURL,
		httpClient: &http.Client{
			Timeout: mwTimeout,
		},
		rateLimit: newRateLimiter(60), // free tier allows 1000/day, stay well under per-minute bursts
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// NewElementaryClient creates a client for the Elementary Dictionary (sd2)
func NewElementaryClient(apiKey string) *MWClient {
	return newMWClient(ElementaryName, elementaryRef, apiKey)
}

// NewCollegiateClient creates a client for the Collegiate Dictionary
func NewCollegiateClient(apiKey string) *MWClient {
	return newMWClient(CollegiateName, collegiateRef, apiKey)
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *MWClient) SetBaseURL(u string) {
	c.baseURL = u
}

// SetCache attaches a lookup response cache
func (c *MWClient) SetCache(cache *LookupCache) {
	c.cache = cache
}

// Name returns the source display name
func (c *MWClient) Name() string {
	return c.name
}

// IsAvailable checks that an API key is configured
func (c *MWClient) IsAvailable() error {
	if c.apiKey == "" {
		return ErrUnconfigured
	}
	return nil
}

// Lookup fetches and parses the entry for a word
func (c *MWClient) Lookup(ctx context.Context, word string) (*Result, error) {
	if c.apiKey == "" {
		return nil, ErrUnconfigured
	}

	body, err := c.fetch(ctx, word)
	if err != nil {
		return nil, &UnavailableError{Source: c.name, Err: err}
	}

	return c.parse(word, body)
}

// fetch returns the raw JSON response for a word, consulting the cache first
func (c *MWClient) fetch(ctx context.Context, word string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(c.ref, word); ok {
			return body, nil
		}
	}

	var body []byte
	err := retry.Do(
		func() error {
			raw, err := c.breaker.Execute(func() (interface{}, error) {
				return c.doRequest(ctx, word)
			})
			if err != nil {
				return err
			}
			body = raw.([]byte)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(c.ref, word, body); err != nil {
			// Cache failures must not fail the lookup
			fmt.Printf("Warning: failed to cache %s response for %q: %v\n", c.name, word, err)
		}
	}

	return body, nil
}

// doRequest performs a single HTTP attempt
func (c *MWClient) doRequest(ctx context.Context, word string) ([]byte, error) {
	c.rateLimit.wait()

	reqURL := fmt.Sprintf("%s/%s/json/%s?key=%s",
		c.baseURL, c.ref, url.PathEscape(word), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", mwUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to read
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited (status %d)", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("server error (status %d)", resp.StatusCode)
	default:
		// Invalid key, bad request etc. Retrying will not help.
		return nil, retry.Unrecoverable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// parse converts a Merriam-Webster response into a Result. A response
// holding only suggestion strings means the word has no entry.
func (c *MWClient) parse(word string, body []byte) (*Result, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &UnavailableError{Source: c.name, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	result := &Result{Word: word, Source: c.name}

	if len(raw) == 0 {
		return result, nil
	}

	// The API returns plain strings (spelling suggestions) when the word
	// has no entry of its own.
	var suggestion string
	if err := json.Unmarshal(raw[0], &suggestion); err == nil {
		return result, nil
	}

	var entries []mwEntry
	for _, msg := range raw {
		var entry mwEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return result, nil
	}

	result.Found = true

	// Fill each field from the first entry that has it. Entries matching
	// the headword exactly are scanned first so "cat" does not pick up
	// fields from "cat-o'-nine-tails".
	for _, entry := range orderByHeadword(entries, word) {
		if result.Definition == "" {
			for _, def := range entry.Shortdef {
				if strings.TrimSpace(def) != "" {
					result.Definition = strings.TrimSpace(def)
					break
				}
			}
		}
		if result.PartOfSpeech == "" && strings.TrimSpace(entry.Fl) != "" {
			result.PartOfSpeech = strings.TrimSpace(entry.Fl)
		}
		if result.AudioURL == "" {
			for _, pr := range entry.Hwi.Prs {
				if pr.Sound.Audio != "" {
					result.AudioURL = AudioURL(pr.Sound.Audio)
					break
				}
			}
		}
	}

	return result, nil
}

// orderByHeadword returns entries with exact headword matches first,
// preserving relative order otherwise
func orderByHeadword(entries []mwEntry, word string) []mwEntry {
	ordered := make([]mwEntry, 0, len(entries))
	var rest []mwEntry
	for _, entry := range entries {
		// meta.id has the form "word" or "word:1"
		id := entry.Meta.ID
		if i := strings.IndexByte(id, ':'); i >= 0 {
			id = id[:i]
		}
		if strings.EqualFold(id, word) {
			ordered = append(ordered, entry)
		} else {
			rest = append(rest, entry)
		}
	}
	return append(ordered, rest...)
}

// AudioURL builds the pronunciation URL for a Merriam-Webster audio base
// name, following the documented subdirectory rules.
func AudioURL(base string) string {
	var subdir string
	switch {
	case strings.HasPrefix(base, "bix"):
		subdir = "bix"
	case strings.HasPrefix(base, "gg"):
		subdir = "gg"
	case base != "" && !unicode.IsLetter(rune(base[0])):
		subdir = "number"
	default:
		if base == "" {
			return ""
		}
		subdir = base[:1]
	}
	return fmt.Sprintf("%s/%s/%s.mp3", mwAudioURL, subdir, base)
}
