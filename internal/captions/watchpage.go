package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

const (
	watchPageTimeout   = 20 * time.Second
	watchPageURL       = "https://www.youtube.com/watch?v="
	watchPageUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// WatchPageBackend discovers transcripts by scraping the platform's watch
// page player response, the same surface the platform's own web player reads.
// It implements DiscoveryBackend.
type WatchPageBackend struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewWatchPageBackend creates a watch-page discovery backend.
func NewWatchPageBackend(logger *zap.Logger) *WatchPageBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchPageBackend{
		client:  &http.Client{Timeout: watchPageTimeout},
		baseURL: watchPageURL,
		logger:  logger,
	}
}

// captionsRenderer mirrors the captions block of the player response JSON.
type captionsRenderer struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []struct {
			BaseURL        string `json:"baseUrl"`
			LanguageCode   string `json:"languageCode"`
			Kind           string `json:"kind"`
			IsTranslatable bool   `json:"isTranslatable"`
		} `json:"captionTracks"`
		TranslationLanguages []struct {
			LanguageCode string `json:"languageCode"`
		} `json:"translationLanguages"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// ListTranscripts fetches the watch page and extracts every caption track the
// player response lists, bucketed into human and auto-generated transcripts.
func (b *WatchPageBackend) ListTranscripts(ctx context.Context, videoID string) (*TranscriptList, error) {
	page, err := b.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if strings.Contains(page, `"playabilityStatus":{"status":"ERROR"`) {
		return nil, fmt.Errorf("%w: watch page reports playability error", transcript.ErrVideoUnavailable)
	}

	rendererJSON, ok := extractCaptionsJSON(page)
	if !ok {
		return nil, fmt.Errorf("%w: watch page exposes no captions block", transcript.ErrCaptionsDisabled)
	}

	var renderer captionsRenderer
	if err := json.Unmarshal([]byte(rendererJSON), &renderer); err != nil {
		return nil, fmt.Errorf("failed to decode captions renderer: %w", err)
	}

	tracklist := renderer.PlayerCaptionsTracklistRenderer
	if len(tracklist.CaptionTracks) == 0 {
		return nil, fmt.Errorf("%w: captions renderer lists no tracks", transcript.ErrCaptionsDisabled)
	}

	translationTargets := make([]string, 0, len(tracklist.TranslationLanguages))
	for _, lang := range tracklist.TranslationLanguages {
		translationTargets = append(translationTargets, lang.LanguageCode)
	}

	list := &TranscriptList{}
	for _, track := range tracklist.CaptionTracks {
		handle := &watchPageHandle{
			backend:            b,
			baseURL:            track.BaseURL,
			languageCode:       track.LanguageCode,
			generated:          track.Kind == "asr",
			translatable:       track.IsTranslatable,
			translationTargets: translationTargets,
		}
		if handle.generated {
			list.Generated = append(list.Generated, handle)
		} else {
			list.Manual = append(list.Manual, handle)
		}
	}

	b.logger.Debug("watch page transcripts discovered",
		zap.String("video_id", videoID),
		zap.Int("manual", len(list.Manual)),
		zap.Int("generated", len(list.Generated)))

	return list, nil
}

// fetchWatchPage downloads the watch page HTML, pre-accepting the consent
// interstitial so the player response is present.
func (b *WatchPageBackend) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+videoID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create watch page request: %w", err)
	}
	req.Header.Set("User-Agent", watchPageUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+"})

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("watch page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: watch page returned 404", transcript.ErrVideoUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("watch page read failed: %w", err)
	}
	return string(body), nil
}

// extractCaptionsJSON cuts the captions object out of the embedded player
// response. The object ends right before the videoDetails key.
func extractCaptionsJSON(page string) (string, bool) {
	const marker = `"captions":`
	start := strings.Index(page, marker)
	if start < 0 {
		return "", false
	}
	rest := page[start+len(marker):]

	end := strings.Index(rest, `,"videoDetails"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// watchPageHandle is one caption track discovered on the watch page.
type watchPageHandle struct {
	backend            *WatchPageBackend
	baseURL            string
	languageCode       string
	generated          bool
	translatable       bool
	translationTargets []string
}

func (h *watchPageHandle) LanguageCode() string { return h.languageCode }
func (h *watchPageHandle) IsGenerated() bool    { return h.generated }

// Translate returns a handle whose fetch URL requests on-demand translation
// to the target language.
func (h *watchPageHandle) Translate(target string) (Handle, error) {
	if !h.translatable {
		return nil, fmt.Errorf("track %q is not translatable", h.languageCode)
	}
	supported := false
	for _, lang := range h.translationTargets {
		if lang == target {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("translation target %q not offered for track %q", target, h.languageCode)
	}

	clone := *h
	clone.languageCode = target
	clone.baseURL = h.baseURL + "&tlang=" + target
	return &clone, nil
}

// timedTextXML mirrors the legacy timedtext XML fetched from a track's base URL.
type timedTextXML struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Content  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch downloads and decodes the track's item list.
func (h *watchPageHandle) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript request: %w", err)
	}
	req.Header.Set("User-Agent", watchPageUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := h.backend.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transcript read failed: %w", err)
	}

	var doc timedTextXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode transcript XML: %w", err)
	}

	items := make([]Item, 0, len(doc.Texts))
	for _, text := range doc.Texts {
		items = append(items, Item{
			Start:    text.Start,
			Duration: text.Duration,
			Text:     strings.TrimSpace(html.UnescapeString(text.Content)),
		})
	}
	return items, nil
}
