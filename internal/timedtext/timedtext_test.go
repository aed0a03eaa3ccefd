package timedtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should parse a simple two-cue payload", func(t *testing.T) {
		// Arrange
		payload := "WEBVTT\n" +
			"\n" +
			"00:00:01.000 --> 00:00:04.500\n" +
			"Hello world\n" +
			"\n" +
			"00:00:04.500 --> 00:00:06.000\n" +
			"Second cue\n"

		// Act
		segments, err := Parse(payload)

		// Assert
		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, 1.0, segments[0].Start)
		assert.Equal(t, 3.5, segments[0].Duration)
		assert.Equal(t, "Hello world", segments[0].Text)
		assert.Equal(t, 4.5, segments[1].Start)
		assert.Equal(t, 1.5, segments[1].Duration)
		assert.Equal(t, "Second cue", segments[1].Text)
	})

	t.Run("should preserve fractional seconds and hour fields", func(t *testing.T) {
		payload := "01:02:03.250 --> 01:02:05.750\ncue text\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.InDelta(t, 3723.25, segments[0].Start, 1e-9)
		assert.InDelta(t, 2.5, segments[0].Duration, 1e-9)
	})

	t.Run("should clamp inverted cue spans to zero duration", func(t *testing.T) {
		payload := "00:00:10.000 --> 00:00:05.000\nbackwards\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, 0.0, segments[0].Duration, "duration must never go negative")
	})

	t.Run("should keep empty cues with empty text", func(t *testing.T) {
		payload := "00:00:01.000 --> 00:00:02.000\n\n00:00:02.000 --> 00:00:03.000\nspoken\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "", segments[0].Text)
		assert.Equal(t, "spoken", segments[1].Text)
	})

	t.Run("should join multi-line cue text and trim surrounding whitespace", func(t *testing.T) {
		payload := "00:00:00.000 --> 00:00:02.000\n  first line  \nsecond line\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "first line\nsecond line", segments[0].Text)
	})

	t.Run("should strip inline styling and word-timing tags", func(t *testing.T) {
		payload := "00:00:00.000 --> 00:00:02.000\n<c>we<00:00:00.480><c> are</c><00:00:00.640><c> live</c></c>\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "we are live", segments[0].Text)
	})

	t.Run("should ignore cue identifiers and settings", func(t *testing.T) {
		payload := "WEBVTT\n\ncue-1\n00:00:01.000 --> 00:00:02.000 align:start position:0%\nhello\n"

		segments, err := Parse(payload)

		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, "hello", segments[0].Text)
	})

	t.Run("should fail on a malformed timing line", func(t *testing.T) {
		payload := "garbage --> more garbage\ntext\n"

		_, err := Parse(payload)

		assert.Error(t, err)
	})

	t.Run("should return an empty sequence for a payload without cues", func(t *testing.T) {
		segments, err := Parse("WEBVTT\n\nNOTE nothing here\n")

		require.NoError(t, err)
		assert.Empty(t, segments)
	})
}
