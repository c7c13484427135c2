// ABOUTME: Entry point for the CineVoice narrator CLI
// ABOUTME: Parses flags, runs the production pipeline, and drives the TUI

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/CineVoice/cinevoice-go/internal/config"
	"github.com/CineVoice/cinevoice-go/internal/frames"
	"github.com/CineVoice/cinevoice-go/internal/gemini"
	"github.com/CineVoice/cinevoice-go/internal/media"
	"github.com/CineVoice/cinevoice-go/internal/tts"
	"github.com/CineVoice/cinevoice-go/internal/ui"
	"github.com/CineVoice/cinevoice-go/internal/version"
	"github.com/CineVoice/cinevoice-go/pkg/audio/output"
	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
	"github.com/CineVoice/cinevoice-go/pkg/playback"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	videoPath  = flag.String("video", "", "Video file or URL to narrate")
	voiceName  = flag.String("voice", "", "Synthesis voice (default: "+cinevoice.DefaultVoice+")")
	styleHint  = flag.String("style", "", "Delivery style override (default: genre preset)")
	promptText = flag.String("prompt", "", "Scene analysis prompt override")
	outPath    = flag.String("out", "", "Write the narration audio to this WAV file")
	engineName = flag.String("engine", "", "Speech engine: gemini or translate (default: config)")
	frameRate  = flag.Float64("fps", 1, "Frame sampling rate in frames per second")
	maxFrames  = flag.Int("max-frames", 16, "Maximum frames sent to scene analysis")
	mute       = flag.Bool("mute", false, "Produce without playing the narration")
	logFile    = flag.String("log-file", "cinevoice.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	if *videoPath == "" {
		fmt.Fprintln(os.Stderr, "cinevoice: -video is required")
		flag.Usage()
		os.Exit(2)
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	cfg := config.Load()

	if !useTUI {
		log.Printf("Starting %s %s", version.Product, version.Version)
	}

	ctx := context.Background()

	// Fetch remote videos before sampling
	video := *videoPath
	if media.IsRemote(video) {
		fetcher, err := media.NewFetcher()
		if err != nil {
			log.Fatalf("Failed to create media fetcher: %v", err)
		}
		local, err := fetcher.Fetch(ctx, video)
		if err != nil {
			log.Fatalf("Failed to fetch %s: %v", video, err)
		}
		video = local
	}

	client := gemini.NewClient(cfg.GeminiKey, cfg.VisionModel, cfg.SpeechModel)
	speech, err := speechEngine(client, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// TUI setup
	var tuiProg *tea.Program
	var controls *ui.Controls

	if useTUI {
		controls = ui.NewControls()
		tuiProg = ui.Run(filepath.Base(video), controls)
		go tuiProg.Run()
	}

	// Helper to update TUI
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	device := output.NewOto()
	if *mute {
		device = output.NewNull()
	}

	studio, err := cinevoice.New(cinevoice.Config{
		Sampler:   frames.NewExtractor(),
		Analyzer:  client,
		Speech:    speech,
		Device:    device,
		Prompt:    *promptText,
		Voice:     *voiceName,
		StyleHint: *styleHint,
		FrameRate: *frameRate,
		MaxFrames: *maxFrames,
		OnStage: func(st cinevoice.Stage) {
			log.Printf("Stage: %s", st)
			busy := st != cinevoice.StageReady
			updateTUI(ui.StatusMsg{Stage: st.String(), Busy: &busy})
		},
		OnError: func(err error) {
			log.Printf("Production warning: %v", err)
			updateTUI(ui.StatusMsg{Err: err.Error()})
		},
	})
	if err != nil {
		log.Fatalf("Failed to create studio: %v", err)
	}

	// Produce in the background so the TUI stays responsive
	type produceResult struct {
		production *cinevoice.Production
		err        error
	}
	results := make(chan produceResult, 1)
	go func() {
		p, err := studio.Produce(ctx, video)
		results <- produceResult{p, err}
	}()

	finished := make(chan struct{}, 1)
	onFinish := func() {
		log.Printf("Playback finished")
		updateTUI(ui.StatusMsg{Playback: playback.StateEnded.String()})
		select {
		case finished <- struct{}{}:
		default:
		}
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var production *cinevoice.Production
	var session *playback.Session
	var commands chan ui.Command
	if controls != nil {
		commands = controls.Commands
	}

	running := true
	for running {
		select {
		case res := <-results:
			if res.err != nil {
				if !useTUI {
					log.Fatalf("Production failed: %v", res.err)
				}
				log.Printf("Production failed: %v", res.err)
				busy := false
				updateTUI(ui.StatusMsg{Err: res.err.Error(), Busy: &busy})
				continue
			}
			production = res.production
			announce(production, updateTUI)

			if *outPath != "" && production.HasAudio() {
				saveWAV(production, *outPath, updateTUI)
			}

			playable := production.HasAudio() && !*mute
			if playable {
				session, err = studio.Play(production, onFinish)
				if err != nil {
					log.Printf("Playback failed: %v", err)
					updateTUI(ui.StatusMsg{Err: err.Error()})
					playable = false
				} else {
					updateTUI(ui.StatusMsg{Playback: playback.StatePlaying.String()})
				}
			}
			if !useTUI && !playable {
				running = false
			}

		case <-finished:
			session = nil
			if !useTUI {
				running = false
			}

		case cmd := <-commands:
			switch cmd {
			case ui.CmdTogglePlay:
				session = togglePlay(studio, production, session, onFinish, updateTUI)
			case ui.CmdStop:
				studio.Stop(session)
				session = nil
				updateTUI(ui.StatusMsg{Playback: playback.StateIdle.String()})
			case ui.CmdExport:
				if production == nil || !production.HasAudio() {
					updateTUI(ui.StatusMsg{Err: "no narration audio to export"})
					continue
				}
				saveWAV(production, exportPath(video), updateTUI)
			case ui.CmdQuit:
				log.Printf("Received quit from TUI")
				running = false
			}

		case <-sigChan:
			log.Printf("Shutdown signal received")
			running = false
		}
	}

	if err := studio.Close(); err != nil {
		log.Printf("Error closing studio: %v", err)
	}
	if tuiProg != nil {
		tuiProg.Quit()
	}

	log.Printf("Narrator stopped")
}

// speechEngine picks the synthesis backend from the -engine flag or config
func speechEngine(client *gemini.Client, cfg config.Config) (cinevoice.Speech, error) {
	name := *engineName
	if name == "" {
		name = cfg.SpeechEngine
	}

	switch name {
	case "", "gemini":
		return client, nil
	case "translate":
		return tts.NewTranslate(cfg.TranslateLang), nil
	default:
		return nil, fmt.Errorf("unknown speech engine %q (want gemini or translate)", name)
	}
}

// announce logs the finished report and pushes it to the TUI
func announce(p *cinevoice.Production, updateTUI func(ui.StatusMsg)) {
	log.Printf("Narration ready: genre=%q audio=%v", p.Report.Genre, p.HasAudio())
	log.Printf("Narration script: %s", p.Report.Narration)

	hasAudio := p.HasAudio()
	msg := ui.StatusMsg{
		Genre:     p.Report.Genre,
		Narration: p.Report.Narration,
		HasAudio:  &hasAudio,
	}
	if hasAudio {
		d := p.Clip.Duration()
		msg.Duration = &d
	}
	updateTUI(msg)
}

// togglePlay starts, pauses, or resumes playback depending on the current state
func togglePlay(studio *cinevoice.Studio, production *cinevoice.Production, session *playback.Session, onFinish func(), updateTUI func(ui.StatusMsg)) *playback.Session {
	if production == nil || !production.HasAudio() {
		updateTUI(ui.StatusMsg{Err: "no narration audio to play"})
		return session
	}

	switch studio.PlaybackState() {
	case playback.StatePlaying:
		studio.Pause(session)
	case playback.StatePaused:
		studio.Resume(session)
	default:
		s, err := studio.Play(production, onFinish)
		if err != nil {
			log.Printf("Playback failed: %v", err)
			updateTUI(ui.StatusMsg{Err: err.Error()})
			return session
		}
		session = s
	}

	updateTUI(ui.StatusMsg{Playback: studio.PlaybackState().String()})
	return session
}

// saveWAV exports the production audio and reports the outcome
func saveWAV(p *cinevoice.Production, path string, updateTUI func(ui.StatusMsg)) {
	if err := p.SaveWAV(path); err != nil {
		log.Printf("Failed to write %s: %v", path, err)
		updateTUI(ui.StatusMsg{Err: err.Error()})
		return
	}
	log.Printf("Saved narration to %s", path)
	updateTUI(ui.StatusMsg{ExportPath: path})
}

// exportPath resolves the WAV destination for the export command
func exportPath(video string) string {
	if *outPath != "" {
		return *outPath
	}
	base := filepath.Base(video)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-narration.wav"
}
