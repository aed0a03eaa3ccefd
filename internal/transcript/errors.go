package transcript

import "errors"

// Sentinel errors classifying stage failures. The orchestrator distinguishes
// recoverable misses (advance to the next stage) from terminal failures
// (unavailability is a property of the video, so no later stage can succeed).
var (
	// ErrNoCaptions signals that the current source exposes no usable caption
	// track for the video. Recoverable: the next stage is attempted.
	ErrNoCaptions = errors.New("no captions available")

	// ErrCaptionsDisabled signals that the source reports captions switched
	// off for the video. Recoverable for the same reason.
	ErrCaptionsDisabled = errors.New("captions disabled for this video")

	// ErrVideoUnavailable signals that the video does not exist or is
	// private. Terminal: the whole pipeline short-circuits.
	ErrVideoUnavailable = errors.New("video unavailable")
)

// IsTerminal reports whether err should abort the acquisition pipeline
// instead of advancing it to the next stage.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrVideoUnavailable)
}
