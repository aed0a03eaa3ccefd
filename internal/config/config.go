package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Configuration provides type-safe access to service settings
type Configuration struct {
	viper *viper.Viper
}

// setDefaults applies the defaults shared by every construction path
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("whisper.base_url", "https://api.openai.com")
	v.SetDefault("whisper.model", "whisper-1")
	v.SetDefault("ytdlp.path", "yt-dlp")
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TRANSCRIPT")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("server.addr", "LISTEN_ADDR")
	v.BindEnv("auth.api_key", "API_KEY")
	v.BindEnv("whisper.base_url", "WHISPER_BASE_URL")
	v.BindEnv("whisper.api_key", "OPENAI_API_KEY")
	v.BindEnv("whisper.model", "WHISPER_MODEL")
	v.BindEnv("ytdlp.path", "YTDLP_PATH")
	v.BindEnv("cookies.b64", "YT_COOKIES_B64")

	return &Configuration{viper: v}, nil
}

// GetListenAddr returns the HTTP listen address
func (c *Configuration) GetListenAddr() string {
	return c.viper.GetString("server.addr")
}

// GetAPIKey returns the shared request-authentication secret
func (c *Configuration) GetAPIKey() string {
	return c.viper.GetString("auth.api_key")
}

// GetWhisperBaseURL returns the speech-to-text endpoint base URL
func (c *Configuration) GetWhisperBaseURL() string {
	return c.viper.GetString("whisper.base_url")
}

// GetWhisperAPIKey returns the speech-to-text backend credential
func (c *Configuration) GetWhisperAPIKey() string {
	return c.viper.GetString("whisper.api_key")
}

// GetWhisperModel returns the transcription model name
func (c *Configuration) GetWhisperModel() string {
	return c.viper.GetString("whisper.model")
}

// GetYtDlpPath returns the configured yt-dlp binary path
func (c *Configuration) GetYtDlpPath() string {
	return c.viper.GetString("ytdlp.path")
}

// MaterializeCookies decodes the optional base64 session-credential bundle to
// a local file and returns its path, so manifest and format resolution can
// run as a logged-in session. Returns an empty path when no bundle is
// configured.
func (c *Configuration) MaterializeCookies() (string, error) {
	encoded := c.viper.GetString("cookies.b64")
	if encoded == "" {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode cookies bundle: %w", err)
	}

	path := filepath.Join(os.TempDir(), "transcript-cookies.txt")
	if err := os.WriteFile(path, decoded, 0600); err != nil {
		return "", fmt.Errorf("failed to write cookies file: %w", err)
	}
	return path, nil
}
