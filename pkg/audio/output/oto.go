// ABOUTME: Oto-based audio output implementation
// ABOUTME: Manages the process-wide oto context and per-session players
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using the oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	sampleRate int
	channels   int
}

// NewOto creates a new Oto output device. The underlying context is not
// created until the first Open call.
func NewOto() Device {
	return &Oto{}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		return nil
	}

	// oto allows only one context per process; a format change keeps the
	// existing context and callers resample to it instead.
	if o.otoCtx != nil {
		log.Printf("Warning: format change requested (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Format returns the format the device is open at
func (o *Oto) Format() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sampleRate, o.channels
}

// NewVoice creates a player reading PCM from r
func (o *Oto) NewVoice(r io.Reader) (Voice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		return nil, fmt.Errorf("output not initialized")
	}

	return &otoVoice{player: o.otoCtx.NewPlayer(r)}, nil
}

// Close releases output resources. The oto context cannot be destroyed,
// so it is suspended instead.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// otoVoice wraps an oto player as a Voice
type otoVoice struct {
	player *oto.Player
}

func (v *otoVoice) Play() {
	v.player.Play()
}

func (v *otoVoice) Pause() {
	v.player.Pause()
}

func (v *otoVoice) IsPlaying() bool {
	return v.player.IsPlaying()
}

func (v *otoVoice) Close() error {
	return v.player.Close()
}
