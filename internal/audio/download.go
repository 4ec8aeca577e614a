package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	downloadTimeout = 30 * time.Second
	maxAudioBytes   = 5 * 1024 * 1024 // 5MB
)

// Downloader fetches pronunciation audio files from dictionary media URLs
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a pronunciation downloader
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
	}
}

// DownloadPronunciation downloads the audio at audioURL to outputFile,
// validating the payload looks like MP3 data before writing it.
func (d *Downloader) DownloadPronunciation(ctx context.Context, audioURL, outputFile string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", audioURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) > maxAudioBytes {
		return fmt.Errorf("audio file exceeds %d bytes", maxAudioBytes)
	}

	if err := ValidateMP3(data); err != nil {
		return fmt.Errorf("invalid audio from %s: %w", audioURL, err)
	}

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
