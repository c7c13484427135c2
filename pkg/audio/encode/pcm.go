// ABOUTME: PCM quantizer
// ABOUTME: Encodes normalized float samples to 16-bit little-endian bytes
package encode

import (
	"encoding/binary"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
)

// PCM16Bytes quantizes normalized float samples to 16-bit signed
// little-endian PCM. Each sample is scaled by 32767 and clamped to the
// int16 range before writing, so out-of-range input cannot overflow.
func PCM16Bytes(samples []float32) []byte {
	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		sample16 := audio.SampleToInt16(sample)
		binary.LittleEndian.PutUint16(output[i*2:], uint16(sample16))
	}
	return output
}
