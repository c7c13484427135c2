// ABOUTME: Audio decoder package for speech payloads
// ABOUTME: Provides Decoder interface and PCM/MP3 implementations
// Package decode provides audio decoders for the narration pipeline.
//
// Supports: raw PCM (16-bit little-endian, the speech service contract)
// and MP3 (the fallback engine's output).
//
// All decoders implement the Decoder interface and output normalized
// float32 clips for consistent downstream processing.
//
// Example:
//
//	decoder, err := decode.NewPCM(audio.SpeechFormat())
//	clip, err := decoder.Decode(payloadBytes)
package decode
