package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/timedtext"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// trackFetchTimeout bounds both manifest payload downloads and track payload
// downloads.
const trackFetchTimeout = 20 * time.Second

// Fetcher acquires a transcript from the platform's own caption tracks: it
// resolves the manifest, selects exactly one track by language preference,
// downloads it and normalizes the payload into segments.
type Fetcher struct {
	provider Provider
	client   *http.Client
	logger   *zap.Logger
}

// NewFetcher creates a Fetcher on top of the given manifest provider.
func NewFetcher(provider Provider, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		provider: provider,
		client:   &http.Client{Timeout: trackFetchTimeout},
		logger:   logger,
	}
}

// selectedTrack pairs a chosen track with the bucket it came from.
type selectedTrack struct {
	track  Track
	lang   string
	source transcript.Source
}

// Fetch runs the platform-subtitle acquisition stage. langs is the ordered
// language preference; allowAuto admits the auto-generated bucket. A missing
// track surfaces as transcript.ErrNoCaptions, which the orchestrator treats
// as a recoverable miss.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, langs []string, allowAuto bool) (*transcript.Result, error) {
	manifest, err := f.provider.FetchManifest(ctx, videoID)
	if err != nil {
		return nil, err
	}

	sel, ok := selectTrack(manifest, langs, allowAuto)
	if !ok {
		f.logger.Info("no subtitle track in platform manifest",
			zap.String("video_id", videoID),
			zap.Strings("languages", langs),
			zap.Bool("allow_auto", allowAuto))
		return nil, fmt.Errorf("%w: no platform subtitle track", transcript.ErrNoCaptions)
	}

	f.logger.Info("platform subtitle track selected",
		zap.String("video_id", videoID),
		zap.String("language", sel.lang),
		zap.String("ext", sel.track.Ext),
		zap.String("source", string(sel.source)))

	payload, err := f.downloadTrack(ctx, sel.track)
	if err != nil {
		return nil, fmt.Errorf("failed to download subtitle track: %w", err)
	}

	segments, err := normalizeTrackPayload(sel.track, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize subtitle payload: %w", err)
	}

	result := transcript.NewResult(videoID, sel.source, sel.lang, false, segments)
	return &result, nil
}

// selectTrack applies the priority order: preferred languages against the
// human bucket, then against the auto bucket when permitted, then the first
// available language in either bucket regardless of preference. Map iteration
// order is not stable in Go, so the "first available" fallback uses
// lexicographic language-tag order to stay deterministic.
func selectTrack(m *Manifest, langs []string, allowAuto bool) (selectedTrack, bool) {
	if sel, ok := pickPreferred(m.Subtitles, langs, transcript.SourceHumanCaptions); ok {
		return sel, true
	}
	if allowAuto {
		if sel, ok := pickPreferred(m.AutomaticCaptions, langs, transcript.SourceAutoCaptions); ok {
			return sel, true
		}
	}
	if sel, ok := pickFirstAvailable(m.Subtitles, transcript.SourceHumanCaptions); ok {
		return sel, true
	}
	if allowAuto {
		if sel, ok := pickFirstAvailable(m.AutomaticCaptions, transcript.SourceAutoCaptions); ok {
			return sel, true
		}
	}
	return selectedTrack{}, false
}

// pickPreferred returns the first track matching the ordered language
// preference within one bucket.
func pickPreferred(bucket map[string][]Track, langs []string, source transcript.Source) (selectedTrack, bool) {
	for _, lang := range langs {
		if tracks, ok := bucket[lang]; ok && len(tracks) > 0 {
			return selectedTrack{track: tracks[0], lang: lang, source: source}, true
		}
	}
	return selectedTrack{}, false
}

// pickFirstAvailable returns the lexicographically first language's first
// track within one bucket.
func pickFirstAvailable(bucket map[string][]Track, source transcript.Source) (selectedTrack, bool) {
	keys := make([]string, 0, len(bucket))
	for lang, tracks := range bucket {
		if len(tracks) > 0 {
			keys = append(keys, lang)
		}
	}
	if len(keys) == 0 {
		return selectedTrack{}, false
	}
	sort.Strings(keys)
	lang := keys[0]
	return selectedTrack{track: bucket[lang][0], lang: lang, source: source}, true
}

// downloadTrack retrieves a track payload by its locator URL.
func (f *Fetcher) downloadTrack(ctx context.Context, track Track) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("track download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("track download failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("track download read failed: %w", err)
	}
	return string(body), nil
}

// normalizeTrackPayload routes timed-text markup through the cue parser;
// any other payload format is wrapped whole as a single untimed segment.
func normalizeTrackPayload(track Track, payload string) ([]transcript.Segment, error) {
	if isTimedTextExt(track.Ext) {
		return timedtext.Parse(payload)
	}
	return []transcript.Segment{{Start: 0, Duration: 0, Text: payload}}, nil
}

// isTimedTextExt reports whether a track extension denotes cue-based markup.
func isTimedTextExt(ext string) bool {
	switch ext {
	case "vtt", "srt":
		return true
	}
	return false
}

// browserUserAgent avoids track downloads being flagged as bot traffic.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
