// Package video resolves free-form video references into canonical video IDs.
package video

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when neither a bare ID nor a recognizable URL
// pattern yields a video identifier.
var ErrNoVideoID = errors.New("no video id found in reference")

// idPattern is the platform's fixed 11-character identifier charset.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// urlPatterns cover the supported URL shapes, each capturing the 11-character id.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`shorts/([A-Za-z0-9_-]{11})`),
}

// Resolve extracts the canonical video ID from a raw reference, which may be
// a bare 11-character id or a URL in one of the supported shapes. Pure
// function; no network access.
func Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoVideoID
	}

	if idPattern.MatchString(raw) {
		return raw, nil
	}

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}

	return "", ErrNoVideoID
}
