package speech

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/platform"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// Fallback is the audio transcription acquisition stage: resolve a direct
// audio stream URL, download it to transient storage, and transcribe it.
type Fallback struct {
	provider    platform.Provider
	downloader  *Downloader
	transcriber Transcriber
	logger      *zap.Logger
}

// NewFallback wires the fallback stage from its collaborators.
func NewFallback(provider platform.Provider, downloader *Downloader, transcriber Transcriber, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		provider:    provider,
		downloader:  downloader,
		transcriber: transcriber,
		logger:      logger,
	}
}

// Fetch downloads the best available audio stream for the video and submits
// it to the transcription backend. The whole text comes back as one untimed
// segment; the runtime stays 0 because no timing survives transcription.
func (f *Fallback) Fetch(ctx context.Context, videoID, language string) (*transcript.Result, error) {
	manifest, err := f.provider.FetchManifest(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to negotiate media formats: %w", err)
	}

	audioURL := manifest.BestAudioStreamURL()
	if audioURL == "" {
		return nil, fmt.Errorf("no audio stream available for video %s", videoID)
	}

	scratch, err := NewScratch()
	if err != nil {
		return nil, err
	}
	defer scratch.Release()

	f.logger.Info("downloading audio stream for transcription",
		zap.String("video_id", videoID),
		zap.String("scratch", scratch.Path()))

	if err := f.downloader.Download(ctx, audioURL, scratch); err != nil {
		return nil, err
	}

	text, err := f.transcriber.Transcribe(ctx, scratch.Path())
	if err != nil {
		return nil, fmt.Errorf("speech-to-text transcription failed: %w", err)
	}

	segments := []transcript.Segment{{Start: 0, Duration: 0, Text: text}}
	result := transcript.NewResult(videoID, transcript.SourceWhisperTranscription, language, false, segments)
	return &result, nil
}
