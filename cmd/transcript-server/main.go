package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/captions"
	"github.com/Deidrajw/youtube-transcript-api/internal/config"
	"github.com/Deidrajw/youtube-transcript-api/internal/logger"
	"github.com/Deidrajw/youtube-transcript-api/internal/pipeline"
	"github.com/Deidrajw/youtube-transcript-api/internal/platform"
	"github.com/Deidrajw/youtube-transcript-api/internal/server"
	"github.com/Deidrajw/youtube-transcript-api/internal/speech"
)

// main is the service entry point
func main() {
	var (
		helpFlag    = flag.Bool("help", false, "Show help message")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *helpFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	if err := runServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// runServer wires the acquisition pipeline and serves it over HTTP until a
// shutdown signal arrives
func runServer() error {
	// A local .env is optional; environment variables win either way
	_ = godotenv.Load()

	log, err := logger.NewLoggerFromEnv()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("YouTube Transcript Service starting up",
		zap.String("component", "main"),
		zap.String("version", server.Version))

	var cfg *config.Configuration
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		cfg, err = config.NewConfigurationFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from file %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.NewConfigurationFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config from environment: %w", err)
		}
	}

	cookiesFile, err := cfg.MaterializeCookies()
	if err != nil {
		return fmt.Errorf("failed to prepare session credentials: %w", err)
	}
	if cookiesFile != "" {
		log.Info("session credential bundle materialized", zap.String("path", cookiesFile))
		defer os.Remove(cookiesFile)
	}

	provider := platform.NewYtDlpProvider(cfg.GetYtDlpPath(), cookiesFile, log)
	platformStage := platform.NewFetcher(provider, log)
	captionsStage := captions.NewAdapter(captions.NewWatchPageBackend(log), log)
	whisper := speech.NewWhisperClient(cfg.GetWhisperBaseURL(), cfg.GetWhisperAPIKey(), cfg.GetWhisperModel(), log)
	audioStage := speech.NewFallback(provider, speech.NewDownloader(log), whisper, log)

	orchestrator := pipeline.NewOrchestrator(platformStage, captionsStage, audioStage, log)
	srv := server.New(cfg.GetAPIKey(), orchestrator, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal",
			zap.String("signal", sig.String()),
			zap.String("component", "main"))
		cancel()
	}()

	if err := srv.Run(ctx, cfg.GetListenAddr()); err != nil {
		return fmt.Errorf("server runtime error: %w", err)
	}

	log.Info("YouTube Transcript Service stopped",
		zap.String("component", "main"))
	return nil
}

// printHelp displays command line usage information
func printHelp() {
	fmt.Println("YouTube Transcript Service - Multi-source transcript acquisition API")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    transcript-server [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    -help      Show this help message")
	fmt.Println("    -version   Show version information")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("    Configuration is loaded from environment variables (or a file")
	fmt.Println("    pointed to by CONFIG_PATH). Key variables:")
	fmt.Println("        LISTEN_ADDR       HTTP listen address (default :8000)")
	fmt.Println("        API_KEY           shared request-authentication secret")
	fmt.Println("        WHISPER_BASE_URL  speech-to-text endpoint base URL")
	fmt.Println("        OPENAI_API_KEY    speech-to-text backend credential")
	fmt.Println("        WHISPER_MODEL     transcription model (default whisper-1)")
	fmt.Println("        YTDLP_PATH        yt-dlp binary path (default yt-dlp)")
	fmt.Println("        YT_COOKIES_B64    optional base64 session cookies bundle")
}

// printVersion displays version information
func printVersion() {
	fmt.Println(server.ServiceName)
	fmt.Println("Version: " + server.Version)
}
