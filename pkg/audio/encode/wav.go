// ABOUTME: WAV container encoder
// ABOUTME: Wraps PCM data in the canonical 44-byte RIFF/WAVE header
package encode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
)

// HeaderSize is the fixed length of the RIFF/WAVE header
const HeaderSize = 44

// WAV encodes a clip as a complete WAV file: quantized 16-bit PCM data
// behind the 44-byte header. Output length is exactly 44 + 2*len(samples).
func WAV(clip audio.Clip) []byte {
	return WAVFromPCM16(PCM16Bytes(clip.Samples), clip.SampleRate, clip.Channels)
}

// WAVFromPCM16 wraps raw 16-bit little-endian PCM bytes in a WAV
// container. Deterministic and side-effect free.
func WAVFromPCM16(pcm []byte, sampleRate, channels int) []byte {
	out := make([]byte, HeaderSize+len(pcm))
	writeHeader(out, len(pcm), sampleRate, channels)
	copy(out[HeaderSize:], pcm)
	return out
}

// WriteWAV streams the WAV encoding of a clip to w, for HTTP downloads
// and file export.
func WriteWAV(w io.Writer, clip audio.Clip) error {
	pcm := PCM16Bytes(clip.Samples)

	header := make([]byte, HeaderSize)
	writeHeader(header, len(pcm), clip.SampleRate, clip.Channels)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	return nil
}

// writeHeader fills the canonical 44-byte RIFF/WAVE header into buf
func writeHeader(buf []byte, dataLen, sampleRate, channels int) {
	const bitsPerSample = 16
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	// RIFF chunk descriptor
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen)) // file size - 8
	copy(buf[8:12], "WAVE")

	// fmt sub-chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)                    // sub-chunk size (16 for PCM)
	binary.LittleEndian.PutUint16(buf[20:22], 1)                     // audio format (1 = PCM)
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))      // number of channels
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))    // sample rate
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))      // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))    // block align
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitsPerSample)) // bits per sample

	// data sub-chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))
}
