// Package pipeline runs the ordered multi-source transcript acquisition chain.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/captions"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// Request is one transcript acquisition request after input validation.
type Request struct {
	VideoID     string
	Language    string
	TranslateTo string
	AllowAuto   bool
}

// PlatformStage is the platform-subtitle acquisition stage.
type PlatformStage interface {
	Fetch(ctx context.Context, videoID string, langs []string, allowAuto bool) (*transcript.Result, error)
}

// CaptionsStage is the captions-API acquisition stage.
type CaptionsStage interface {
	Fetch(ctx context.Context, req captions.Request) (*transcript.Result, error)
}

// AudioStage is the speech-to-text fallback stage.
type AudioStage interface {
	Fetch(ctx context.Context, videoID, language string) (*transcript.Result, error)
}

// ExhaustedError is returned when every stage missed and the final stage
// failed. Trail records why each stage produced nothing, in stage order.
type ExhaustedError struct {
	Trail []string
}

func (e *ExhaustedError) Error() string {
	return "transcript unavailable: " + strings.Join(e.Trail, "; ")
}

// Orchestrator tries each acquisition stage in strict priority order:
// platform subtitles first (cheapest, highest fidelity), then the captions
// API, then paid speech-to-text last. A stage runs only after the previous
// one definitively missed; first success short-circuits the chain.
type Orchestrator struct {
	platform PlatformStage
	captions CaptionsStage
	audio    AudioStage
	logger   *zap.Logger
}

// NewOrchestrator wires the pipeline from its three stages.
func NewOrchestrator(platform PlatformStage, captionsStage CaptionsStage, audio AudioStage, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		platform: platform,
		captions: captionsStage,
		audio:    audio,
		logger:   logger,
	}
}

// namedStage pairs a stage name (used in the diagnostic trail) with its runner.
type namedStage struct {
	name string
	run  func(ctx context.Context) (*transcript.Result, error)
}

// Acquire traverses the stage chain for one request. Recoverable misses
// accumulate in the diagnostic trail; a terminal video-unavailable error from
// any stage aborts immediately since no later stage can succeed either.
func (o *Orchestrator) Acquire(ctx context.Context, req Request) (*transcript.Result, error) {
	langs := transcript.LanguagePreferences(req.Language)

	stages := []namedStage{
		{
			name: "platform_subtitles",
			run: func(ctx context.Context) (*transcript.Result, error) {
				return o.platform.Fetch(ctx, req.VideoID, langs, req.AllowAuto)
			},
		},
		{
			name: "captions_api",
			run: func(ctx context.Context) (*transcript.Result, error) {
				return o.captions.Fetch(ctx, captions.Request{
					VideoID:     req.VideoID,
					Languages:   langs,
					AllowAuto:   req.AllowAuto,
					TranslateTo: req.TranslateTo,
				})
			},
		},
		{
			name: "audio_transcription",
			run: func(ctx context.Context) (*transcript.Result, error) {
				return o.audio.Fetch(ctx, req.VideoID, req.Language)
			},
		},
	}

	var trail []string
	for _, stage := range stages {
		result, err := stage.run(ctx)
		if err == nil {
			o.logger.Info("transcript acquired",
				zap.String("video_id", req.VideoID),
				zap.String("stage", stage.name),
				zap.String("source", string(result.Source)),
				zap.String("language", result.Language),
				zap.Int("segments", len(result.Segments)))
			return result, nil
		}

		if transcript.IsTerminal(err) {
			o.logger.Warn("acquisition aborted, video unavailable",
				zap.String("video_id", req.VideoID),
				zap.String("stage", stage.name),
				zap.Error(err))
			return nil, err
		}

		trail = append(trail, fmt.Sprintf("%s: %v", stage.name, err))
		o.logger.Info("acquisition stage missed, advancing",
			zap.String("video_id", req.VideoID),
			zap.String("stage", stage.name),
			zap.Error(err))
	}

	o.logger.Warn("all acquisition stages exhausted",
		zap.String("video_id", req.VideoID),
		zap.Strings("trail", trail))

	return nil, &ExhaustedError{Trail: trail}
}
