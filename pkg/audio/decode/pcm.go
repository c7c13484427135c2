// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 16-bit little-endian PCM to normalized float samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
)

// PCMDecoder decodes raw 16-bit signed little-endian PCM
type PCMDecoder struct {
	sampleRate int
	channels   int
}

// NewPCM creates a new PCM decoder for the given format
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, format.SampleRate)
	}

	if format.Channels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", ErrUnsupportedFormat, format.Channels)
	}

	return &PCMDecoder{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}

// Decode converts PCM bytes to a normalized clip.
// Every consecutive byte pair is read as a little-endian signed 16-bit
// integer and divided by 32768 to land in [-1.0, 1.0). Trailing bytes
// that do not form a whole frame are discarded silently; upstream
// payloads may be truncated by transport.
func (d *PCMDecoder) Decode(data []byte) (audio.Clip, error) {
	numFrames := len(data) / (2 * d.channels)
	numSamples := numFrames * d.channels

	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	return audio.Clip{
		Samples:    samples,
		SampleRate: d.sampleRate,
		Channels:   d.channels,
	}, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
