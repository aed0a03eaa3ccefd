package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// Provider resolves the platform's per-video manifest. Implementations are
// treated as black boxes by the acquisition pipeline.
type Provider interface {
	FetchManifest(ctx context.Context, videoID string) (*Manifest, error)
}

// YtDlpProvider shells out to the yt-dlp binary to dump a video's metadata
// JSON, which carries the caption manifest and the media format list.
type YtDlpProvider struct {
	binaryPath  string
	cookiesFile string
	logger      *zap.Logger
}

// NewYtDlpProvider creates a provider using the given yt-dlp binary path.
// cookiesFile may be empty; when set it is handed to yt-dlp so manifest and
// format resolution runs as a logged-in session.
func NewYtDlpProvider(binaryPath, cookiesFile string, logger *zap.Logger) *YtDlpProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &YtDlpProvider{
		binaryPath:  binaryPath,
		cookiesFile: cookiesFile,
		logger:      logger,
	}
}

// FetchManifest runs `yt-dlp -J --skip-download` for the video and decodes
// its JSON output into a Manifest.
func (p *YtDlpProvider) FetchManifest(ctx context.Context, videoID string) (*Manifest, error) {
	args := []string{"-J", "--skip-download", "--no-warnings"}
	if p.cookiesFile != "" {
		args = append(args, "--cookies", p.cookiesFile)
	}
	args = append(args, "https://www.youtube.com/watch?v="+videoID)

	p.logger.Debug("resolving platform manifest",
		zap.String("video_id", videoID),
		zap.String("binary", p.binaryPath))

	cmd := exec.CommandContext(ctx, p.binaryPath, args...)
	out, err := cmd.Output()
	if err != nil {
		detail := commandErrorDetail(err)
		if isUnavailableOutput(detail) {
			p.logger.Warn("platform reports video unavailable",
				zap.String("video_id", videoID),
				zap.String("detail", detail))
			return nil, fmt.Errorf("%w: %s", transcript.ErrVideoUnavailable, detail)
		}
		p.logger.Error("manifest resolution failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return nil, fmt.Errorf("manifest resolution failed: %w: %s", err, detail)
	}

	var manifest Manifest
	if err := json.Unmarshal(out, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest JSON: %w", err)
	}

	p.logger.Debug("platform manifest resolved",
		zap.String("video_id", videoID),
		zap.Int("subtitle_languages", len(manifest.Subtitles)),
		zap.Int("auto_caption_languages", len(manifest.AutomaticCaptions)),
		zap.Int("formats", len(manifest.Formats)))

	return &manifest, nil
}

// commandErrorDetail pulls stderr out of an exec failure for diagnostics.
func commandErrorDetail(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}

// isUnavailableOutput recognizes the platform's hard "this video cannot be
// fetched by anyone" failures, which are terminal for the whole pipeline.
func isUnavailableOutput(detail string) bool {
	lower := strings.ToLower(detail)
	for _, marker := range []string{"video unavailable", "private video", "this video has been removed"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
