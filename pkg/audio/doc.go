// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Clip types and sample conversion functions
// Package audio provides fundamental audio types and utilities for the
// narration pipeline.
//
// This package defines core types used throughout the cinevoice library:
//   - Format: Describes an audio stream format (codec, sample rate, channels)
//   - Clip: Decoded audio as normalized float samples with format tags
//
// It also provides the quantization helpers shared by the decoder, the
// WAV encoder and the output layer:
//   - float32 ↔ int16 conversions (scale by 32767 with clamping on the
//     way down, divide by 32768 on the way up)
//
// Example:
//
//	clip := audio.Clip{
//	    Samples:    samples,
//	    SampleRate: audio.SpeechSampleRate,
//	    Channels:   audio.SpeechChannels,
//	}
//
//	// Quantize a normalized sample for 16-bit output
//	sample16 := audio.SampleToInt16(clip.Samples[0])
package audio
