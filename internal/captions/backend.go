// Package captions wraps an independent transcript-discovery backend with
// language and kind negotiation.
package captions

import "context"

// Item is one raw transcript entry as delivered by the captions backend.
// Missing fields decode to their zero values, which is exactly the normalized
// default (duration 0, empty text).
type Item struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Handle is one discoverable transcript: language-tagged, human or
// auto-generated, optionally translatable.
type Handle interface {
	// LanguageCode returns the transcript's language tag.
	LanguageCode() string

	// IsGenerated reports whether the transcript was machine-generated.
	IsGenerated() bool

	// Translate returns a handle for this transcript translated to the
	// target language, or an error when the backend cannot translate it.
	Translate(target string) (Handle, error)

	// Fetch downloads the transcript's item list.
	Fetch(ctx context.Context) ([]Item, error)
}

// TranscriptList is the discovery result for one video: all transcripts the
// backend exposes, bucketed by provenance. Slice order is the backend's
// listing order and is deterministic.
type TranscriptList struct {
	Manual    []Handle
	Generated []Handle
}

// DiscoveryBackend is the capability set of a backend that supports listing
// available transcripts before fetching one.
type DiscoveryBackend interface {
	ListTranscripts(ctx context.Context, videoID string) (*TranscriptList, error)
}

// DirectBackend is the capability set of a legacy backend that only offers
// fetch-by-video-and-language, with no discovery.
type DirectBackend interface {
	// FetchTranscript fetches items for one specific language.
	FetchTranscript(ctx context.Context, videoID, language string) ([]Item, error)

	// FetchAnyTranscript fetches items with no language constraint.
	FetchAnyTranscript(ctx context.Context, videoID string) ([]Item, error)
}
