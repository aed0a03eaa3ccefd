package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/pipeline"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
	"github.com/Deidrajw/youtube-transcript-api/internal/video"
)

// transcriptRequest is the POST /api/transcript body. AllowAutoCaptions is a
// pointer so an absent field defaults to true.
type transcriptRequest struct {
	URL               string `json:"url"`
	VideoID           string `json:"video_id"`
	Lang              string `json:"lang"`
	TranslateTo       string `json:"translate_to"`
	AllowAutoCaptions *bool  `json:"allow_auto_captions"`
}

// errorResponse is the JSON failure shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

// transcriptHandler resolves the video reference and runs the acquisition
// pipeline, mapping the error taxonomy onto HTTP statuses.
func (s *Server) transcriptHandler(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reference := req.VideoID
	if reference == "" {
		reference = req.URL
	}
	videoID, err := video.Resolve(reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid video id/url")
		return
	}

	allowAuto := true
	if req.AllowAutoCaptions != nil {
		allowAuto = *req.AllowAutoCaptions
	}

	result, err := s.acquirer.Acquire(r.Context(), pipeline.Request{
		VideoID:     videoID,
		Language:    req.Lang,
		TranslateTo: req.TranslateTo,
		AllowAuto:   allowAuto,
	})
	if err != nil {
		s.writeAcquisitionError(w, videoID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeAcquisitionError maps pipeline failures onto the response contract:
// terminal unavailability and exhaustion are 404 (the latter carrying the
// diagnostic trail), anything else is an internal error with its description.
func (s *Server) writeAcquisitionError(w http.ResponseWriter, videoID string, err error) {
	var exhausted *pipeline.ExhaustedError
	switch {
	case errors.Is(err, transcript.ErrVideoUnavailable):
		writeError(w, http.StatusNotFound, "Video unavailable")
	case errors.As(err, &exhausted):
		writeError(w, http.StatusNotFound, exhausted.Error())
	default:
		s.logger.Error("unexpected acquisition failure",
			zap.String("video_id", videoID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// rootHandler is the liveness endpoint.
func (s *Server) rootHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": ServiceName,
	})
}

// versionHandler reports the service version.
func (s *Server) versionHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": ServiceName,
		"version": Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
