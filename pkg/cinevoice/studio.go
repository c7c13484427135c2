// ABOUTME: High-level Studio API for producing and playing narrations
// ABOUTME: Runs sample -> analyze -> synthesize -> decode and owns playback
package cinevoice

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
	"github.com/CineVoice/cinevoice-go/pkg/audio/decode"
	"github.com/CineVoice/cinevoice-go/pkg/audio/output"
	"github.com/CineVoice/cinevoice-go/pkg/audio/payload"
	"github.com/CineVoice/cinevoice-go/pkg/playback"
)

// Config holds studio configuration
type Config struct {
	// Sampler extracts video frames for analysis (required)
	Sampler Sampler

	// Analyzer produces the narration report from frames (required)
	Analyzer Analyzer

	// Speech synthesizes narration audio (required)
	Speech Speech

	// Device is the audio output backend (default: oto)
	Device output.Device

	// Prompt overrides the default analysis prompt
	Prompt string

	// Voice is the synthesis voice name (default: "Aoede")
	Voice string

	// StyleHint fixes the speaking style. When empty, the style is
	// derived from the detected genre.
	StyleHint string

	// FrameRate is frames sampled per second of video (default: 1)
	FrameRate float64

	// MaxFrames caps the number of sampled frames (default: 16)
	MaxFrames int

	// OnStage is called as the pipeline advances
	OnStage func(Stage)

	// OnError is called for degraded outcomes that do not fail the
	// production, such as a synthesis failure
	OnError func(error)
}

// DefaultPrompt asks the analyzer for a narration script, a scene
// analysis, and a genre label.
const DefaultPrompt = "You are narrating a video. Study the frames in order and " +
	"write a short, vivid narration script that matches the pacing of what " +
	"happens on screen. Also provide a scene-by-scene analysis and name the " +
	"genre that best fits the footage."

// Studio produces narrations for videos and plays them back
type Studio struct {
	config Config
	ctrl   *playback.Controller
}

// New creates a studio with the given configuration
func New(config Config) (*Studio, error) {
	if config.Sampler == nil {
		return nil, fmt.Errorf("sampler is required")
	}
	if config.Analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if config.Speech == nil {
		return nil, fmt.Errorf("speech synthesizer is required")
	}

	// Set defaults
	if config.Device == nil {
		config.Device = output.NewOto()
	}
	if config.Prompt == "" {
		config.Prompt = DefaultPrompt
	}
	if config.Voice == "" {
		config.Voice = DefaultVoice
	}
	if config.FrameRate == 0 {
		config.FrameRate = 1
	}
	if config.MaxFrames == 0 {
		config.MaxFrames = 16
	}

	return &Studio{
		config: config,
		ctrl:   playback.NewController(config.Device),
	}, nil
}

// Produce runs the narration pipeline on a video. The returned
// production always carries the report; it carries audio only when
// synthesis succeeded. A synthesis failure is reported through OnError
// and degrades to a silent production instead of failing the run.
func (s *Studio) Produce(ctx context.Context, videoPath string) (*Production, error) {
	s.stage(StageSampling)
	frames, err := s.config.Sampler.Sample(ctx, videoPath, s.config.FrameRate, s.config.MaxFrames)
	if err != nil {
		return nil, fmt.Errorf("failed to sample frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames sampled from %s", videoPath)
	}

	s.stage(StageAnalyzing)
	report, err := s.config.Analyzer.AnalyzeScenes(ctx, frames, s.config.Prompt)
	if err != nil {
		return nil, fmt.Errorf("scene analysis failed: %w", err)
	}

	s.stage(StageSynthesizing)
	clip, err := s.renderSpeech(ctx, report)
	if err != nil {
		return nil, err
	}

	production := &Production{
		ID:     uuid.New().String(),
		Video:  videoPath,
		Report: report,
		Clip:   clip,
	}

	s.stage(StageReady)
	log.Printf("Production %s ready: genre=%q narration=%d chars audio=%v",
		production.ID, report.Genre, len(report.Narration), production.HasAudio())

	return production, nil
}

// renderSpeech voices the narration and decodes the returned payload.
// A synthesizer error or an empty payload yields an empty clip; a
// payload that cannot be decoded is a real error.
func (s *Studio) renderSpeech(ctx context.Context, report Report) (audio.Clip, error) {
	styleHint := s.config.StyleHint
	if styleHint == "" {
		styleHint = StyleForGenre(report.Genre)
	}

	result, err := s.config.Speech.Synthesize(ctx, report.Narration, s.config.Voice, styleHint)
	if err != nil {
		s.reportError(fmt.Errorf("speech synthesis failed: %w", err))
		return audio.Clip{}, nil
	}
	if result.Payload == "" {
		return audio.Clip{}, nil
	}

	data, err := payload.Decode(result.Payload)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("failed to decode speech payload: %w", err)
	}

	decoder, err := decoderFor(result.Encoding)
	if err != nil {
		return audio.Clip{}, err
	}
	defer decoder.Close()

	clip, err := decoder.Decode(data)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("failed to decode speech audio: %w", err)
	}
	return clip, nil
}

func decoderFor(encoding Encoding) (decode.Decoder, error) {
	switch encoding {
	case EncodingMP3:
		return decode.NewMP3(), nil
	case EncodingPCM, "":
		return decode.NewPCM(audio.SpeechFormat())
	default:
		return nil, fmt.Errorf("unsupported speech encoding: %s", encoding)
	}
}

// Play starts playback of the production's audio, replacing any active
// session. onFinish runs exactly once if playback reaches the natural
// end of the clip.
func (s *Studio) Play(p *Production, onFinish func()) (*playback.Session, error) {
	if p == nil || !p.HasAudio() {
		return nil, fmt.Errorf("production has no audio")
	}
	return s.ctrl.Play(p.Clip, onFinish)
}

// Pause suspends the session if it is playing
func (s *Studio) Pause(session *playback.Session) {
	s.ctrl.Pause(session)
}

// Resume continues a paused session
func (s *Studio) Resume(session *playback.Session) {
	s.ctrl.Resume(session)
}

// Stop halts the session. Safe to call at any time.
func (s *Studio) Stop(session *playback.Session) {
	s.ctrl.Stop(session)
}

// PlaybackState reports the playback controller's current state
func (s *Studio) PlaybackState() playback.State {
	return s.ctrl.State()
}

// Close stops playback and releases the output device
func (s *Studio) Close() error {
	return s.ctrl.Close()
}

func (s *Studio) stage(st Stage) {
	if s.config.OnStage != nil {
		s.config.OnStage(st)
	}
}

func (s *Studio) reportError(err error) {
	log.Printf("Warning: %v", err)
	if s.config.OnError != nil {
		s.config.OnError(err)
	}
}
