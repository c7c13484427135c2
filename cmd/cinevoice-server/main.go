// ABOUTME: Entry point for the CineVoice narration web server
// ABOUTME: Parses CLI flags and serves the narration API

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CineVoice/cinevoice-go/internal/config"
	"github.com/CineVoice/cinevoice-go/internal/frames"
	"github.com/CineVoice/cinevoice-go/internal/gemini"
	"github.com/CineVoice/cinevoice-go/internal/httpserver"
	"github.com/CineVoice/cinevoice-go/internal/tts"
	"github.com/CineVoice/cinevoice-go/internal/version"
	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
	"github.com/gin-gonic/gin"
)

var (
	addr       = flag.String("addr", "", "Listen address (default: config, :8080)")
	engineName = flag.String("engine", "", "Speech engine: gemini or translate (default: config)")
	voiceName  = flag.String("voice", "", "Synthesis voice (default: "+cinevoice.DefaultVoice+")")
	frameRate  = flag.Float64("fps", 1, "Frame sampling rate in frames per second")
	maxFrames  = flag.Int("max-frames", 16, "Maximum frames sent to scene analysis")
	logFile    = flag.String("log-file", "cinevoice-server.log", "Log file path")
)

func main() {
	flag.Parse()

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	cfg := config.Load()

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = cfg.HTTPAddress
	}

	log.Printf("Starting %s server %s on %s", version.Product, version.Version, listenAddr)
	log.Printf("Logging to: %s", *logFile)
	log.Printf("Press Ctrl-C to stop")

	client := gemini.NewClient(cfg.GeminiKey, cfg.VisionModel, cfg.SpeechModel)

	var speech cinevoice.Speech = client
	engine := *engineName
	if engine == "" {
		engine = cfg.SpeechEngine
	}
	switch engine {
	case "", "gemini":
	case "translate":
		speech = tts.NewTranslate(cfg.TranslateLang)
	default:
		log.Fatalf("Unknown speech engine %q (want gemini or translate)", engine)
	}

	gin.SetMode(gin.ReleaseMode)

	srv, err := httpserver.New(httpserver.Config{
		Sampler:   frames.NewExtractor(),
		Analyzer:  client,
		Speech:    speech,
		Voice:     *voiceName,
		FrameRate: *frameRate,
		MaxFrames: *maxFrames,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	httpSrv := &http.Server{
		Addr:    listenAddr,
		Handler: srv.Handler(),
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}

	log.Printf("Server stopped")
}
