package transcript

import "strings"

// Segment is the canonical unit of transcript output: one timed span of text.
// Start and Duration are in seconds. Duration may be zero when the source does
// not report one (single-blob sources, audio transcription).
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// WordCount returns the number of whitespace-delimited tokens in the segment text.
func (s Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}

// End returns the end time of the segment in seconds.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}
