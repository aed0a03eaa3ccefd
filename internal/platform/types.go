// Package platform talks to the video-hosting platform: caption manifests,
// track payloads and media-format negotiation.
package platform

// Track references one downloadable subtitle resource within a manifest.
type Track struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Format is one media format the platform offers for a video, with the codec
// and bitrate metadata needed for audio-only stream negotiation.
type Format struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	ACodec   string  `json:"acodec"`
	VCodec   string  `json:"vcodec"`
	ABR      float64 `json:"abr"`
	URL      string  `json:"url"`
}

// Manifest is the platform's full per-video listing: caption tracks bucketed
// into human-authored subtitles and auto-generated captions (keyed by
// language tag), plus available media formats. Discovered fresh per request;
// never cached.
type Manifest struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
	Formats           []Format           `json:"formats"`
	URL               string             `json:"url"`
}

// BestAudioStreamURL picks a direct audio stream URL for the video: the
// highest-bitrate audio-only format when one exists, otherwise the manifest's
// generic media URL. Returns empty when the platform offered neither.
func (m *Manifest) BestAudioStreamURL() string {
	var best *Format
	for i := range m.Formats {
		f := &m.Formats[i]
		if f.VCodec != "" && f.VCodec != "none" {
			continue
		}
		if f.ACodec == "" || f.ACodec == "none" || f.URL == "" {
			continue
		}
		if best == nil || f.ABR > best.ABR {
			best = f
		}
	}
	if best != nil {
		return best.URL
	}
	return m.URL
}
