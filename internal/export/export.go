// Package export saves a wallpaper's image bytes to a local file. Fetching
// never touches the gallery store; a failure surfaces as a transient,
// user-facing *Error and nothing else.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fetchTimeout = 60 * time.Second

// maxImageBytes caps a single download; anything larger than this is not a
// wallpaper.
const maxImageBytes = 256 << 20

// Error is a failed export with a message safe to show to the user.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

func failed(cause error) *Error {
	return &Error{Message: "下载失败", Cause: cause}
}

// Exporter fetches image bytes and writes them to disk.
type Exporter struct {
	client *http.Client
}

// NewExporter builds an exporter with a bounded HTTP client.
func NewExporter() *Exporter {
	return &Exporter{client: &http.Client{Timeout: fetchTimeout}}
}

// Save fetches the image behind rawURL and writes it to destPath using a
// temp-file-and-rename so a failed export never leaves a partial file.
// Supported references: http(s) URLs, data: URLs and file: URLs.
func (e *Exporter) Save(ctx context.Context, rawURL, destPath string) error {
	data, err := e.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := writeAtomic(destPath, data); err != nil {
		return failed(err)
	}
	return nil
}

// Fetch returns the raw image bytes behind rawURL.
func (e *Exporter) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	switch {
	case strings.HasPrefix(rawURL, "data:"):
		data, err := decodeDataURL(rawURL)
		if err != nil {
			return nil, failed(err)
		}
		return data, nil
	case strings.HasPrefix(rawURL, "file:"):
		data, err := readFileURL(rawURL)
		if err != nil {
			return nil, failed(err)
		}
		return data, nil
	default:
		return e.fetchHTTP(ctx, rawURL)
	}
}

func (e *Exporter) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, failed(err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, failed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, failed(fmt.Errorf("unexpected status %s", resp.Status))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, failed(err)
	}
	return data, nil
}

// decodeDataURL extracts the payload of a data:<mime>;base64,<data> URL,
// the form generated wallpapers use.
func decodeDataURL(rawURL string) ([]byte, error) {
	idx := strings.Index(rawURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	meta, payload := rawURL[len("data:"):idx], rawURL[idx+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding")
	}
	return base64.StdEncoding.DecodeString(payload)
}

func readFileURL(rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.FromSlash(u.Path))
}

// writeAtomic writes data to a temp file in the destination directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "mugen-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	cleanup = false
	return nil
}
