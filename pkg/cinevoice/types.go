// ABOUTME: Core types and collaborator contracts for the narration studio
// ABOUTME: Frames in, report and clip out; speech payloads are base64 audio
package cinevoice

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
	"github.com/CineVoice/cinevoice-go/pkg/audio/encode"
)

// Frame is one sampled video frame handed to the analyzer
type Frame struct {
	// Data holds the encoded image bytes
	Data []byte

	// MIME is the image type, e.g. "image/jpeg"
	MIME string

	// Index is the frame's position in sampling order
	Index int

	// Timestamp is the frame's offset into the video
	Timestamp time.Duration
}

// Report is the analyzer's result for a video
type Report struct {
	// Narration is the script sent to speech synthesis
	Narration string

	// Analysis is the longer scene-by-scene breakdown
	Analysis string

	// Genre is the detected genre label, drives the style preset
	Genre string
}

// Encoding names the audio encoding of a speech payload
type Encoding string

const (
	// EncodingPCM is raw 16-bit little-endian PCM at the speech format
	EncodingPCM Encoding = "pcm"

	// EncodingMP3 is a complete MP3 stream
	EncodingMP3 Encoding = "mp3"
)

// SpeechResult is a synthesizer's output. An empty Payload means the
// service produced no audio, which is a valid outcome rather than an
// error.
type SpeechResult struct {
	// Payload is the base64-encoded audio, or "" for no audio
	Payload string

	// Encoding tells the studio how to decode the payload. Empty means
	// EncodingPCM.
	Encoding Encoding
}

// Sampler extracts representative frames from a video file
type Sampler interface {
	Sample(ctx context.Context, videoPath string, fps float64, maxFrames int) ([]Frame, error)
}

// Analyzer turns sampled frames and a prompt into a narration report
type Analyzer interface {
	AnalyzeScenes(ctx context.Context, frames []Frame, prompt string) (Report, error)
}

// Speech synthesizes narration audio
type Speech interface {
	Synthesize(ctx context.Context, text, voice, styleHint string) (SpeechResult, error)
}

// Stage marks the pipeline's progress through a production
type Stage int

const (
	// StageSampling means frames are being extracted from the video
	StageSampling Stage = iota

	// StageAnalyzing means frames are with the scene analyzer
	StageAnalyzing

	// StageSynthesizing means the narration is being voiced
	StageSynthesizing

	// StageReady means the production is complete
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageSampling:
		return "sampling frames"
	case StageAnalyzing:
		return "analyzing scenes"
	case StageSynthesizing:
		return "synthesizing speech"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Production is one finished narration run. The report is always
// present; the clip may be empty when synthesis produced no audio.
type Production struct {
	// ID uniquely identifies the production
	ID string

	// Video is the path of the narrated video
	Video string

	// Report holds the analyzer's narration, analysis, and genre
	Report Report

	// Clip is the decoded narration audio
	Clip audio.Clip
}

// HasAudio reports whether the production carries narration audio
func (p *Production) HasAudio() bool {
	return !p.Clip.Empty()
}

// WriteWAV streams the production's audio as a WAV file
func (p *Production) WriteWAV(w io.Writer) error {
	if !p.HasAudio() {
		return fmt.Errorf("production has no audio")
	}
	return encode.WriteWAV(w, p.Clip)
}

// SaveWAV writes the production's audio to a WAV file at path
func (p *Production) SaveWAV(path string) error {
	if !p.HasAudio() {
		return fmt.Errorf("production has no audio")
	}
	return os.WriteFile(path, encode.WAV(p.Clip), 0644)
}
