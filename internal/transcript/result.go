package transcript

// Source identifies which acquisition stage produced a transcript.
type Source string

const (
	// SourceHumanCaptions marks a subtitle track authored by a person.
	SourceHumanCaptions Source = "human_captions"
	// SourceAutoCaptions marks a track machine-generated by the hosting platform.
	SourceAutoCaptions Source = "auto_captions"
	// SourceUnknown marks a transcript whose provenance the backend does not report.
	SourceUnknown Source = "unknown"
	// SourceWhisperTranscription marks text produced by the speech-to-text fallback.
	SourceWhisperTranscription Source = "whisper_transcription"
)

// Result is the unified response shape shared by every acquisition stage.
// It is constructed once per successful stage and never mutated afterwards.
type Result struct {
	VideoID              string    `json:"video_id"`
	Source               Source    `json:"source"`
	Language             string    `json:"language"`
	Translated           bool      `json:"translated"`
	Segments             []Segment `json:"segments"`
	WordCount            int       `json:"word_count"`
	ApproxRuntimeSeconds float64   `json:"approx_runtime_seconds"`
}

// NewResult builds a Result and derives WordCount and ApproxRuntimeSeconds
// from the given segments. An empty language collapses to "unknown". Segments
// are kept in source order; no re-sorting happens here, so a malformed source
// can yield non-monotonic timing and the result passes it through.
func NewResult(videoID string, source Source, language string, translated bool, segments []Segment) Result {
	if language == "" {
		language = "unknown"
	}
	if segments == nil {
		segments = []Segment{}
	}

	wordCount := 0
	runtime := 0.0
	for _, seg := range segments {
		wordCount += seg.WordCount()
		if end := seg.End(); end > runtime {
			runtime = end
		}
	}

	return Result{
		VideoID:              videoID,
		Source:               source,
		Language:             language,
		Translated:           translated,
		Segments:             segments,
		WordCount:            wordCount,
		ApproxRuntimeSeconds: runtime,
	}
}
