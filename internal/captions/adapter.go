package captions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// Adapter runs the captions-API acquisition stage against whichever backend
// capability set it was bound to. Dispatch happens on the backend's static
// capability interface, not on runtime attribute probing.
type Adapter struct {
	backend any
	logger  *zap.Logger
}

// NewAdapter binds the adapter to a backend. The backend must implement
// DiscoveryBackend or DirectBackend.
func NewAdapter(backend any, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{backend: backend, logger: logger}
}

// Request carries the per-call negotiation parameters.
type Request struct {
	VideoID     string
	Languages   []string
	AllowAuto   bool
	TranslateTo string
}

// Fetch acquires a transcript through the bound backend and shapes it into
// the unified result contract.
func (a *Adapter) Fetch(ctx context.Context, req Request) (*transcript.Result, error) {
	switch backend := a.backend.(type) {
	case DiscoveryBackend:
		return a.fetchViaDiscovery(ctx, backend, req)
	case DirectBackend:
		return a.fetchDirect(ctx, backend, req)
	default:
		return nil, fmt.Errorf("captions backend %T implements no known capability set", a.backend)
	}
}

// fetchViaDiscovery lists the available transcripts, selects one by the
// shared priority order, optionally translates it, and fetches its items.
func (a *Adapter) fetchViaDiscovery(ctx context.Context, backend DiscoveryBackend, req Request) (*transcript.Result, error) {
	list, err := backend.ListTranscripts(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}

	handle, source, ok := selectHandle(list, req.Languages, req.AllowAuto)
	if !ok {
		return nil, fmt.Errorf("%w: no transcript found for any language", transcript.ErrNoCaptions)
	}

	translated := false
	if req.TranslateTo != "" && req.TranslateTo != handle.LanguageCode() {
		if translatedHandle, err := handle.Translate(req.TranslateTo); err != nil {
			// Translation failure is non-fatal: keep the untranslated transcript.
			a.logger.Warn("transcript translation failed, using original language",
				zap.String("video_id", req.VideoID),
				zap.String("from", handle.LanguageCode()),
				zap.String("to", req.TranslateTo),
				zap.Error(err))
		} else {
			handle = translatedHandle
			translated = true
		}
	}

	items, err := handle.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript items: %w", err)
	}

	a.logger.Info("captions backend transcript fetched",
		zap.String("video_id", req.VideoID),
		zap.String("language", handle.LanguageCode()),
		zap.String("source", string(source)),
		zap.Bool("translated", translated),
		zap.Int("items", len(items)))

	result := transcript.NewResult(req.VideoID, source, handle.LanguageCode(), translated, normalizeItems(items))
	return &result, nil
}

// fetchDirect tries each preferred language against a legacy direct-fetch
// backend, then one capability-agnostic fetch with no language constraint
// when auto captions are permitted. The legacy backend reports no provenance,
// so the source stays "unknown".
func (a *Adapter) fetchDirect(ctx context.Context, backend DirectBackend, req Request) (*transcript.Result, error) {
	for _, lang := range req.Languages {
		items, err := backend.FetchTranscript(ctx, req.VideoID, lang)
		if err == nil {
			result := transcript.NewResult(req.VideoID, transcript.SourceUnknown, lang, false, normalizeItems(items))
			return &result, nil
		}
		if transcript.IsTerminal(err) {
			return nil, err
		}
		a.logger.Debug("direct transcript fetch missed",
			zap.String("video_id", req.VideoID),
			zap.String("language", lang),
			zap.Error(err))
	}

	if req.AllowAuto {
		items, err := backend.FetchAnyTranscript(ctx, req.VideoID)
		if err == nil {
			result := transcript.NewResult(req.VideoID, transcript.SourceUnknown, "unknown", false, normalizeItems(items))
			return &result, nil
		}
		if transcript.IsTerminal(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: no transcript found for any language", transcript.ErrNoCaptions)
}

// selectHandle mirrors the platform track selection priority: preferred
// languages against human transcripts, preferred languages against generated
// ones when permitted, then the first listed human transcript, then the first
// listed generated one when permitted.
func selectHandle(list *TranscriptList, langs []string, allowAuto bool) (Handle, transcript.Source, bool) {
	for _, lang := range langs {
		for _, handle := range list.Manual {
			if handle.LanguageCode() == lang {
				return handle, transcript.SourceHumanCaptions, true
			}
		}
	}
	if allowAuto {
		for _, lang := range langs {
			for _, handle := range list.Generated {
				if handle.LanguageCode() == lang {
					return handle, transcript.SourceAutoCaptions, true
				}
			}
		}
	}
	if len(list.Manual) > 0 {
		return list.Manual[0], transcript.SourceHumanCaptions, true
	}
	if allowAuto && len(list.Generated) > 0 {
		return list.Generated[0], transcript.SourceAutoCaptions, true
	}
	return nil, "", false
}

// normalizeItems converts backend items into canonical segments.
func normalizeItems(items []Item) []transcript.Segment {
	segments := make([]transcript.Segment, len(items))
	for i, item := range items {
		segments[i] = transcript.Segment{
			Start:    item.Start,
			Duration: item.Duration,
			Text:     item.Text,
		}
	}
	return segments
}
