package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deidrajw/youtube-transcript-api/internal/captions"
	"github.com/Deidrajw/youtube-transcript-api/internal/pipeline"
	"github.com/Deidrajw/youtube-transcript-api/internal/platform"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// manifestProvider serves one canned manifest for the end-to-end flow.
type manifestProvider struct {
	manifest *platform.Manifest
}

func (p *manifestProvider) FetchManifest(_ context.Context, _ string) (*platform.Manifest, error) {
	return p.manifest, nil
}

// missingCaptionsBackend always misses, keeping the captions stage out of the way.
type missingCaptionsBackend struct{}

func (missingCaptionsBackend) ListTranscripts(_ context.Context, _ string) (*captions.TranscriptList, error) {
	return nil, transcript.ErrCaptionsDisabled
}

// neverAudio fails the test if the audio stage is ever reached.
type neverAudio struct{ t *testing.T }

func (n neverAudio) Fetch(_ context.Context, _, _ string) (*transcript.Result, error) {
	n.t.Fatal("audio stage must not run in this scenario")
	return nil, nil
}

func TestEndToEnd_AutoCaptionsOnly(t *testing.T) {
	t.Run("should serve auto captions when the manifest offers nothing else", func(t *testing.T) {
		// Arrange: a platform exposing only an auto-generated English track
		trackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("WEBVTT\n\n00:00:00.000 --> 00:00:03.000\nnever gonna give you up\n"))
		}))
		defer trackSrv.Close()

		provider := &manifestProvider{manifest: &platform.Manifest{
			AutomaticCaptions: map[string][]platform.Track{
				"en": {{Ext: "vtt", URL: trackSrv.URL}},
			},
		}}
		orchestrator := pipeline.NewOrchestrator(
			platform.NewFetcher(provider, nil),
			captions.NewAdapter(missingCaptionsBackend{}, nil),
			neverAudio{t: t},
			nil,
		)
		srv := New("secret", orchestrator, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/transcript",
			strings.NewReader(`{"video_id":"dQw4w9WgXcQ","lang":"en"}`))
		req.Header.Set(apiKeyHeader, "secret")
		rec := httptest.NewRecorder()

		// Act
		srv.Router().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		var result transcript.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "dQw4w9WgXcQ", result.VideoID)
		assert.Equal(t, transcript.SourceAutoCaptions, result.Source)
		assert.Equal(t, "en", result.Language)
		assert.Equal(t, 6, result.WordCount)
		assert.Equal(t, 3.0, result.ApproxRuntimeSeconds)
	})
}
