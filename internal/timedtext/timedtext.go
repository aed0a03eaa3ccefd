// Package timedtext normalizes cue-based subtitle markup into canonical
// transcript segments.
package timedtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// cueTiming matches a cue timing line: "HH:MM:SS[.mmm] --> HH:MM:SS[.mmm]",
// optionally followed by cue settings which are ignored.
var cueTiming = regexp.MustCompile(`^(\d{1,2}:)?\d{2}:\d{2}[.,]?\d*\s+-->\s+(\d{1,2}:)?\d{2}:\d{2}[.,]?\d*`)

// inlineTag strips inline styling and word-timing tags that auto-generated
// tracks embed in cue text, e.g. <c> spans and <00:00:01.500> markers.
var inlineTag = regexp.MustCompile(`<[^>]*>`)

// Parse converts timed-text markup (WebVTT-style cues) into an ordered
// segment sequence. Cue order is preserved as-is. Negative spans clamp to a
// zero duration; empty cues are kept with an empty text. A cue whose timing
// line cannot be parsed fails the whole payload.
func Parse(payload string) ([]transcript.Segment, error) {
	lines := strings.Split(strings.ReplaceAll(payload, "\r\n", "\n"), "\n")

	segments := []transcript.Segment{}
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			continue
		}

		start, end, err := parseTimingLine(line)
		if err != nil {
			return nil, err
		}

		var textLines []string
		for i++; i < len(lines); i++ {
			text := strings.TrimSpace(lines[i])
			if text == "" {
				break
			}
			textLines = append(textLines, inlineTag.ReplaceAllString(text, ""))
		}

		duration := end - start
		if duration < 0 {
			duration = 0
		}

		segments = append(segments, transcript.Segment{
			Start:    start,
			Duration: duration,
			Text:     strings.TrimSpace(strings.Join(textLines, "\n")),
		})
	}

	return segments, nil
}

// parseTimingLine extracts the start and end timestamps in seconds from a cue
// timing line.
func parseTimingLine(line string) (start, end float64, err error) {
	if !cueTiming.MatchString(line) {
		return 0, 0, fmt.Errorf("malformed cue timing line: %q", line)
	}

	parts := strings.SplitN(line, "-->", 2)
	start, err = parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	// Cue settings may trail the end timestamp, separated by whitespace.
	endField := strings.Fields(strings.TrimSpace(parts[1]))[0]
	end, err = parseTimestamp(endField)
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// parseTimestamp parses "HH:MM:SS[.mmm]" (hours optional) into seconds,
// preserving fractional seconds.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.ReplaceAll(ts, ",", ".")
	fields := strings.Split(ts, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("malformed timestamp: %q", ts)
	}

	var hours int64
	var err error
	if len(fields) == 3 {
		hours, err = strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
		}
		fields = fields[1:]
	}

	minutes, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}

	seconds, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}
