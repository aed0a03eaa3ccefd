package captions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// fakeHandle is an in-memory Handle for selection tests.
type fakeHandle struct {
	lang         string
	generated    bool
	items        []Item
	translateErr error
	fetchErr     error
}

func (f *fakeHandle) LanguageCode() string { return f.lang }
func (f *fakeHandle) IsGenerated() bool    { return f.generated }

func (f *fakeHandle) Translate(target string) (Handle, error) {
	if f.translateErr != nil {
		return nil, f.translateErr
	}
	return &fakeHandle{lang: target, generated: f.generated, items: f.items}, nil
}

func (f *fakeHandle) Fetch(_ context.Context) ([]Item, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

// fakeDiscovery implements DiscoveryBackend.
type fakeDiscovery struct {
	list *TranscriptList
	err  error
}

func (f *fakeDiscovery) ListTranscripts(_ context.Context, _ string) (*TranscriptList, error) {
	return f.list, f.err
}

// fakeDirect implements DirectBackend with per-language canned results.
type fakeDirect struct {
	byLanguage map[string][]Item
	anyItems   []Item
	anyErr     error
	langErr    error
}

func (f *fakeDirect) FetchTranscript(_ context.Context, _, language string) ([]Item, error) {
	if f.langErr != nil {
		return nil, f.langErr
	}
	if items, ok := f.byLanguage[language]; ok {
		return items, nil
	}
	return nil, errors.New("no transcript for language " + language)
}

func (f *fakeDirect) FetchAnyTranscript(_ context.Context, _ string) ([]Item, error) {
	if f.anyErr != nil {
		return nil, f.anyErr
	}
	if f.anyItems == nil {
		return nil, errors.New("no transcript at all")
	}
	return f.anyItems, nil
}

var sampleItems = []Item{{Start: 0, Duration: 2, Text: "sample text"}}

func testRequest() Request {
	return Request{
		VideoID:   "dQw4w9WgXcQ",
		Languages: []string{"en", "en-US", "en-GB"},
		AllowAuto: true,
	}
}

func TestAdapter_Discovery(t *testing.T) {
	t.Run("should prefer a human transcript in a preferred language", func(t *testing.T) {
		// Arrange
		backend := &fakeDiscovery{list: &TranscriptList{
			Manual:    []Handle{&fakeHandle{lang: "en", items: sampleItems}},
			Generated: []Handle{&fakeHandle{lang: "en", generated: true, items: sampleItems}},
		}}
		adapter := NewAdapter(backend, nil)

		// Act
		result, err := adapter.Fetch(context.Background(), testRequest())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, transcript.SourceHumanCaptions, result.Source)
		assert.Equal(t, "en", result.Language)
		assert.False(t, result.Translated)
	})

	t.Run("should fall back to a generated transcript when permitted", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Generated: []Handle{&fakeHandle{lang: "en", generated: true, items: sampleItems}},
		}}
		adapter := NewAdapter(backend, nil)

		result, err := adapter.Fetch(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, transcript.SourceAutoCaptions, result.Source)
	})

	t.Run("should skip generated transcripts when auto captions are not permitted", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Generated: []Handle{&fakeHandle{lang: "en", generated: true, items: sampleItems}},
		}}
		adapter := NewAdapter(backend, nil)
		req := testRequest()
		req.AllowAuto = false

		_, err := adapter.Fetch(context.Background(), req)

		assert.ErrorIs(t, err, transcript.ErrNoCaptions)
	})

	t.Run("should take the first listed human transcript when no language matches", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Manual: []Handle{
				&fakeHandle{lang: "ja", items: sampleItems},
				&fakeHandle{lang: "ko", items: sampleItems},
			},
		}}
		adapter := NewAdapter(backend, nil)

		result, err := adapter.Fetch(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, "ja", result.Language)
		assert.Equal(t, transcript.SourceHumanCaptions, result.Source)
	})

	t.Run("should translate to the requested target language", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Manual: []Handle{&fakeHandle{lang: "en", items: sampleItems}},
		}}
		adapter := NewAdapter(backend, nil)
		req := testRequest()
		req.TranslateTo = "de"

		result, err := adapter.Fetch(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, result.Translated)
		assert.Equal(t, "de", result.Language)
	})

	t.Run("should proceed untranslated when translation fails", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Manual: []Handle{&fakeHandle{lang: "en", items: sampleItems, translateErr: errors.New("not translatable")}},
		}}
		adapter := NewAdapter(backend, nil)
		req := testRequest()
		req.TranslateTo = "de"

		result, err := adapter.Fetch(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, result.Translated)
		assert.Equal(t, "en", result.Language)
	})

	t.Run("should not translate when transcript already matches the target", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{
			Manual: []Handle{&fakeHandle{lang: "de", items: sampleItems, translateErr: errors.New("should not be called")}},
		}}
		adapter := NewAdapter(backend, nil)
		req := testRequest()
		req.Languages = []string{"de"}
		req.TranslateTo = "de"

		result, err := adapter.Fetch(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, result.Translated)
	})

	t.Run("should propagate terminal video-unavailable errors", func(t *testing.T) {
		backend := &fakeDiscovery{err: transcript.ErrVideoUnavailable}
		adapter := NewAdapter(backend, nil)

		_, err := adapter.Fetch(context.Background(), testRequest())

		assert.ErrorIs(t, err, transcript.ErrVideoUnavailable)
	})

	t.Run("should report a miss for an empty transcript list", func(t *testing.T) {
		backend := &fakeDiscovery{list: &TranscriptList{}}
		adapter := NewAdapter(backend, nil)

		_, err := adapter.Fetch(context.Background(), testRequest())

		assert.ErrorIs(t, err, transcript.ErrNoCaptions)
	})
}

func TestAdapter_Direct(t *testing.T) {
	t.Run("should fetch the first preferred language that resolves", func(t *testing.T) {
		backend := &fakeDirect{byLanguage: map[string][]Item{"en-US": sampleItems}}
		adapter := NewAdapter(backend, nil)

		result, err := adapter.Fetch(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, "en-US", result.Language)
		assert.Equal(t, transcript.SourceUnknown, result.Source)
	})

	t.Run("should fall back to a language-agnostic fetch when permitted", func(t *testing.T) {
		backend := &fakeDirect{anyItems: sampleItems}
		adapter := NewAdapter(backend, nil)

		result, err := adapter.Fetch(context.Background(), testRequest())

		require.NoError(t, err)
		assert.Equal(t, "unknown", result.Language)
		assert.Equal(t, transcript.SourceUnknown, result.Source)
	})

	t.Run("should miss when nothing resolves and auto captions are off", func(t *testing.T) {
		backend := &fakeDirect{anyItems: sampleItems}
		adapter := NewAdapter(backend, nil)
		req := testRequest()
		req.AllowAuto = false

		_, err := adapter.Fetch(context.Background(), req)

		assert.ErrorIs(t, err, transcript.ErrNoCaptions)
	})

	t.Run("should short-circuit on video unavailable", func(t *testing.T) {
		backend := &fakeDirect{langErr: transcript.ErrVideoUnavailable}
		adapter := NewAdapter(backend, nil)

		_, err := adapter.Fetch(context.Background(), testRequest())

		assert.ErrorIs(t, err, transcript.ErrVideoUnavailable)
	})
}

func TestAdapter_UnknownBackend(t *testing.T) {
	t.Run("should reject a backend with no known capability set", func(t *testing.T) {
		adapter := NewAdapter(struct{}{}, nil)

		_, err := adapter.Fetch(context.Background(), testRequest())

		assert.ErrorContains(t, err, "no known capability set")
	})
}
