package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/spellingwords/internal/testutil"
)

func generateTestAPKG(t *testing.T, cards []Card) string {
	t.Helper()

	outputPath := filepath.Join(t.TempDir(), "deck.apkg")

	gen := NewAPKGGenerator("Spelling Test")
	for _, card := range cards {
		gen.AddCard(card)
	}
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}
	return outputPath
}

func extractZipFile(t *testing.T, zr *zip.ReadCloser, name, destDir string) string {
	t.Helper()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s in archive: %v", name, err)
		}
		defer rc.Close()

		dest := filepath.Join(destDir, name)
		out, err := os.Create(dest)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", dest, err)
		}
		defer out.Close()

		if _, err := io.Copy(out, rc); err != nil {
			t.Fatalf("Failed to extract %s: %v", name, err)
		}
		return dest
	}

	t.Fatalf("Archive does not contain %s", name)
	return ""
}

func TestGenerateAPKGStructure(t *testing.T) {
	mediaDir := t.TempDir()
	audioFile := filepath.Join(mediaDir, "cat_12345678.mp3")
	testutil.CreateTestFile(t, audioFile, testutil.MP3Bytes())

	outputPath := generateTestAPKG(t, []Card{
		{Word: "cat", Definition: "a small domesticated mammal", PartOfSpeech: "noun", AudioFile: audioFile},
		{Word: "whisper", Definition: "to speak softly", PartOfSpeech: "verb"},
	})

	zr, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Output is not a valid zip: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}

	for _, want := range []string{"collection.anki2", "media", "0"} {
		if !names[want] {
			t.Errorf("archive is missing %s (has %v)", want, names)
		}
	}

	// Media mapping must point entry 0 at the audio file's base name
	mediaPath := extractZipFile(t, zr, "media", t.TempDir())
	data, err := os.ReadFile(mediaPath)
	if err != nil {
		t.Fatalf("Failed to read media mapping: %v", err)
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		t.Fatalf("Media mapping is not valid JSON: %v", err)
	}
	if mapping["0"] != "cat_12345678.mp3" {
		t.Errorf("media mapping = %v, want entry 0 -> cat_12345678.mp3", mapping)
	}
}

func TestGenerateAPKGNotes(t *testing.T) {
	mediaDir := t.TempDir()
	audioFile := filepath.Join(mediaDir, "cat_12345678.mp3")
	testutil.CreateTestFile(t, audioFile, testutil.MP3Bytes())

	outputPath := generateTestAPKG(t, []Card{
		{Word: "cat", Definition: "a small domesticated mammal", PartOfSpeech: "noun", AudioFile: audioFile},
		{Word: "whisper", Definition: "to speak softly", PartOfSpeech: "verb"},
	})

	zr, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer zr.Close()

	dbPath := extractZipFile(t, zr, "collection.anki2", t.TempDir())
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open collection database: %v", err)
	}
	defer db.Close()

	var noteCount, cardCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if noteCount != 2 || cardCount != 2 {
		t.Errorf("notes = %d, cards = %d; want 2 and 2", noteCount, cardCount)
	}

	var fields string
	if err := db.QueryRow(`SELECT flds FROM notes WHERE sfld = 'cat'`).Scan(&fields); err != nil {
		t.Fatalf("Failed to read cat note: %v", err)
	}
	parts := strings.Split(fields, "\x1f")
	if len(parts) != 4 {
		t.Fatalf("note has %d fields, want 4: %q", len(parts), fields)
	}
	if parts[0] != "cat" || parts[1] != "a small domesticated mammal" || parts[2] != "noun" {
		t.Errorf("note fields = %v", parts)
	}
	if parts[3] != "[sound:cat_12345678.mp3]" {
		t.Errorf("audio field = %q, want sound tag", parts[3])
	}

	// Note type must describe a listen-and-spell card
	var models string
	if err := db.QueryRow(`SELECT models FROM col`).Scan(&models); err != nil {
		t.Fatalf("Failed to read models: %v", err)
	}
	if !strings.Contains(models, "Spelling Word (Listen and Spell)") {
		t.Error("models JSON does not contain the spelling note type")
	}
}

func TestGenerateAPKGWithoutMedia(t *testing.T) {
	outputPath := generateTestAPKG(t, []Card{
		{Word: "whisper", Definition: "to speak softly"},
	})

	zr, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer zr.Close()

	mediaPath := extractZipFile(t, zr, "media", t.TempDir())
	data, err := os.ReadFile(mediaPath)
	if err != nil {
		t.Fatalf("Failed to read media mapping: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("media mapping = %s, want empty object", data)
	}
}
