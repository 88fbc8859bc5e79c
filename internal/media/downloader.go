package media

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"bookstalk/internal/parser"
	"bookstalk/internal/types"
)

// Downloader fetches book cover images and stores them under a directory
// with deterministic, title-derived filenames.
type Downloader struct {
	dir    string
	client *http.Client
	logger *slog.Logger
}

// NewDownloader creates a cover image downloader writing into dir.
func NewDownloader(dir string, logger *slog.Logger) *Downloader {
	transport := &http.Transport{
		// Decompression is handled below so brotli works too.
		DisableCompression: true,
	}
	return &Downloader{
		dir: dir,
		client: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
		},
		logger: logger.With("component", "cover_downloader"),
	}
}

// FetchCover downloads the image at rawURL and writes it to
// <dir>/<sanitized title>.jpg, creating the directory if absent. The same
// title always maps to the same file; a re-download overwrites in place.
func (d *Downloader) FetchCover(ctx context.Context, rawURL, title string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &types.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "image/*,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &types.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &types.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status"),
		}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", &types.FetchError{URL: rawURL, Err: err}
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	path := filepath.Join(d.dir, parser.SanitizeFilename(title)+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, body)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	d.logger.Debug("cover stored", "url", rawURL, "path", path, "size", size)
	return path, nil
}

// decodeBody unwraps the response body according to Content-Encoding.
func decodeBody(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return gz, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}
