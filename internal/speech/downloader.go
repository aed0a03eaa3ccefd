package speech

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// newStreamingHTTPClient builds a client with connection-establishment
// timeouts but no overall request timeout, so a long audio download is never
// cut off mid-stream.
func newStreamingHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport}
}

// Downloader streams a media URL into a local file.
type Downloader struct {
	client *http.Client
	logger *zap.Logger
}

// NewDownloader creates a Downloader.
func NewDownloader(logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		client: newStreamingHTTPClient(),
		logger: logger,
	}
}

// Download streams the given URL into the scratch file using chunked reads.
func (d *Downloader) Download(ctx context.Context, url string, scratch *Scratch) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "audio/*,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("audio download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("audio download failed: status %d", resp.StatusCode)
	}

	written, err := io.Copy(scratch.File(), resp.Body)
	if err != nil {
		return fmt.Errorf("audio download interrupted: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("audio download produced an empty file")
	}

	d.logger.Debug("audio stream downloaded",
		zap.Int64("bytes", written),
		zap.String("path", scratch.Path()))

	return nil
}
