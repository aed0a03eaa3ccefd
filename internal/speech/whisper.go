package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Transcriber submits an audio file to a speech-to-text backend and returns
// the transcribed text as one plain blob.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperClient talks to an OpenAI-compatible audio transcription endpoint.
// The HTTP client carries no overall timeout; transcription of long audio is
// bounded by the backend, not by us.
type WhisperClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewWhisperClient creates a client for the given endpoint. model defaults to
// "whisper-1" when empty.
func NewWhisperClient(baseURL, apiKey, model string, logger *zap.Logger) *WhisperClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = "whisper-1"
	}
	return &WhisperClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
		logger:  logger,
	}
}

// transcriptionResponse is the JSON body returned by the transcription endpoint.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio file as multipart form data and returns the
// transcribed text.
func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := writer.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := w.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	w.logger.Info("submitting audio for transcription",
		zap.String("model", w.model),
		zap.String("endpoint", url))

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded transcriptionResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return decoded.Text, nil
}
