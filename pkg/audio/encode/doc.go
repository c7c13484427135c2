// ABOUTME: Audio encoder package for WAV export
// ABOUTME: Provides PCM quantization and WAV container encoding
// Package encode turns normalized float clips into downloadable WAV files.
//
// PCM16Bytes quantizes samples to 16-bit little-endian PCM; WAV and
// WAVFromPCM16 prepend the canonical 44-byte RIFF/WAVE header. All
// transforms are pure and deterministic.
//
// Example:
//
//	data := encode.WAV(clip)
//	os.WriteFile("narration.wav", data, 0644)
package encode
