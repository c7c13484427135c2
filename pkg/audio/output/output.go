// ABOUTME: Audio output interface definitions
// ABOUTME: Common interfaces for playback backends and sound sources
package output

import "io"

// Device represents the shared audio output backend. It is created
// lazily, opened once, and reused across playback sessions.
type Device interface {
	// Open initializes the device for the given format. Reopening with
	// the same format is a cheap no-op.
	Open(sampleRate, channels int) error

	// Format returns the sample rate and channel count the device is
	// currently open at (zero values before the first Open).
	Format() (sampleRate, channels int)

	// NewVoice creates a sound source that reads 16-bit little-endian
	// PCM from r. The voice starts paused.
	NewVoice(r io.Reader) (Voice, error)

	// Close releases the device
	Close() error
}

// Voice is a single sound source bound to a device
type Voice interface {
	// Play starts or resumes rendering
	Play()

	// Pause suspends rendering without discarding position
	Pause()

	// IsPlaying reports whether the voice is actively rendering.
	// It turns false on pause and when the source is exhausted.
	IsPlaying() bool

	// Close releases the voice
	Close() error
}
