// ABOUTME: Audio type definitions
// ABOUTME: Defines clip/format types and sample conversion helpers
package audio

import "time"

const (
	// Speech payloads from the synthesis service arrive as raw PCM
	// at this fixed format.
	SpeechSampleRate = 24000
	SpeechChannels   = 1

	// 16-bit PCM range constants
	MaxInt16 = 32767
	MinInt16 = -32768
)

// Format describes an audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
}

// SpeechFormat returns the fixed format of synthesized speech payloads
func SpeechFormat() Format {
	return Format{
		Codec:      "pcm",
		SampleRate: SpeechSampleRate,
		Channels:   SpeechChannels,
	}
}

// Clip is decoded audio: normalized float samples tagged with their format
type Clip struct {
	Samples    []float32 // interleaved, range [-1.0, 1.0)
	SampleRate int
	Channels   int
}

// Frames returns the number of per-channel sample frames
func (c Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the playback length of the clip
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Empty reports whether the clip carries no samples
func (c Clip) Empty() bool {
	return len(c.Samples) == 0
}

// SampleToInt16 quantizes a normalized float sample to a 16-bit integer.
// The value is scaled by 32767 and clamped to the int16 range.
func SampleToInt16(sample float32) int16 {
	scaled := float64(sample) * 32767.0
	if scaled > MaxInt16 {
		scaled = MaxInt16
	} else if scaled < MinInt16 {
		scaled = MinInt16
	}
	return int16(scaled)
}

// SampleFromInt16 normalizes a 16-bit integer sample to [-1.0, 1.0).
// Division by 32768 maps -32768 to exactly -1.0 and 32767 to ~0.99997.
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}
