// ABOUTME: Null audio output implementation
// ABOUTME: Renders nothing; voices finish on a wall-clock timer
package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Null is a silent output device for headless runs and tests. Voices
// consume their source at the nominal playback rate without touching
// any audio hardware.
type Null struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	open       bool
}

// NewNull creates a new null output device
func NewNull() Device {
	return &Null{}
}

// Open records the requested format
func (n *Null) Open(sampleRate, channels int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid output format: %dHz %dch", sampleRate, channels)
	}

	if n.open {
		return nil
	}

	n.sampleRate = sampleRate
	n.channels = channels
	n.open = true
	return nil
}

// Format returns the format the device is open at
func (n *Null) Format() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sampleRate, n.channels
}

// NewVoice creates a timer-driven silent voice sized from the source
func (n *Null) NewVoice(r io.Reader) (Voice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.open {
		return nil, fmt.Errorf("output not initialized")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice source: %w", err)
	}

	frames := len(data) / (2 * n.channels)
	duration := time.Duration(frames) * time.Second / time.Duration(n.sampleRate)

	return &nullVoice{remaining: duration}, nil
}

// Close releases the device
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.open = false
	return nil
}

// nullVoice tracks elapsed playback time against the source duration
type nullVoice struct {
	mu        sync.Mutex
	remaining time.Duration
	startedAt time.Time
	playing   bool
}

func (v *nullVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.playing || v.remaining <= 0 {
		return
	}
	v.startedAt = time.Now()
	v.playing = true
}

func (v *nullVoice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.playing {
		return
	}
	v.remaining -= time.Since(v.startedAt)
	if v.remaining < 0 {
		v.remaining = 0
	}
	v.playing = false
}

func (v *nullVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.playing {
		return false
	}
	if time.Since(v.startedAt) >= v.remaining {
		v.playing = false
		v.remaining = 0
		return false
	}
	return true
}

func (v *nullVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
	v.remaining = 0
	return nil
}
