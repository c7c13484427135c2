// ABOUTME: Playback controller enforcing the single-active-session rule
// ABOUTME: Owns the shared output device and watches voices for natural end
package playback

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
	"github.com/CineVoice/cinevoice-go/pkg/audio/encode"
	"github.com/CineVoice/cinevoice-go/pkg/audio/output"
	"github.com/CineVoice/cinevoice-go/pkg/audio/resample"
)

// watchInterval is how often a session watcher polls its voice for the
// natural end of playback.
const watchInterval = 15 * time.Millisecond

// Controller plays clips on a shared output device. At most one
// session is active at a time; starting a new one stops the previous
// one first, so two sound sources never overlap.
type Controller struct {
	device output.Device

	mu     sync.Mutex
	active *Session
}

// NewController creates a controller on the given device. The device is
// opened lazily on the first Play and stays open across sessions until
// the controller is closed.
func NewController(device output.Device) *Controller {
	return &Controller{device: device}
}

// Play starts a new session for the clip, stopping any active session
// first. onFinish, if non-nil, runs exactly once when the session plays
// to its natural end; it never runs after an explicit Stop or after the
// session is replaced by a later Play. A failed Play leaves the
// controller idle and safe to retry.
func (c *Controller) Play(clip audio.Clip, onFinish func()) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(c.active)

	if clip.SampleRate <= 0 || clip.Channels <= 0 {
		return nil, fmt.Errorf("invalid clip format: %dHz %dch", clip.SampleRate, clip.Channels)
	}

	if err := c.device.Open(clip.SampleRate, clip.Channels); err != nil {
		return nil, fmt.Errorf("failed to open output device: %w", err)
	}

	// The device keeps the format it was first opened with, so the clip
	// is conformed to it rather than the other way around.
	deviceRate, deviceChannels := c.device.Format()
	conformed := conform(clip, deviceRate, deviceChannels)

	voice, err := c.device.NewVoice(bytes.NewReader(encode.PCM16Bytes(conformed.Samples)))
	if err != nil {
		return nil, fmt.Errorf("failed to create voice: %w", err)
	}

	s := &Session{
		id:       uuid.New().String(),
		ctrl:     c,
		voice:    voice,
		onFinish: onFinish,
		state:    StatePlaying,
	}
	c.active = s
	voice.Play()
	go c.watch(s)

	log.Printf("Playback session %s started: %d frames at %dHz", s.id, conformed.Frames(), deviceRate)
	return s, nil
}

// Pause suspends the session without discarding its position. Valid
// only for the active session in PLAYING; anything else is a no-op.
func (c *Controller) Pause(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s == nil || s != c.active || s.state != StatePlaying {
		return
	}
	s.state = StatePaused
	s.voice.Pause()
}

// Resume continues a paused session from where it was suspended. Valid
// only for the active session in PAUSED; anything else is a no-op.
func (c *Controller) Resume(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s == nil || s != c.active || s.state != StatePaused {
		return
	}
	s.state = StatePlaying
	s.voice.Play()
}

// Stop halts the session and releases its voice. Calling it again, on
// a stale handle, or when nothing is playing is a no-op. It never
// fails.
func (c *Controller) Stop(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked(s)
}

func (c *Controller) stopLocked(s *Session) {
	if s == nil || s != c.active {
		return
	}

	s.state = StateStopped
	c.active = nil
	if err := s.voice.Close(); err != nil {
		log.Printf("Error closing voice: %v", err)
	}
}

// State reports the active session's state, or StateIdle when no
// session is active.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return StateIdle
	}
	return c.active.state
}

// Active returns the currently active session, or nil
func (c *Controller) Active() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Close stops any active session and releases the output device
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked(c.active)
	return c.device.Close()
}

// watch polls the session's voice until the clip is exhausted, then
// marks the session ENDED and fires its on-finish callback. Sessions
// that were stopped or replaced are left alone.
func (c *Controller) watch(s *Session) {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()

		if s != c.active {
			c.mu.Unlock()
			return
		}
		// A paused voice also reports not playing, so the state check
		// comes first.
		if s.state == StatePaused {
			c.mu.Unlock()
			continue
		}
		if s.voice.IsPlaying() {
			c.mu.Unlock()
			continue
		}

		s.state = StateEnded
		c.active = nil
		if err := s.voice.Close(); err != nil {
			log.Printf("Error closing voice: %v", err)
		}
		onFinish := s.onFinish
		c.mu.Unlock()

		if onFinish != nil {
			onFinish()
		}
		return
	}
}

// conform maps a clip onto the device's open format
func conform(clip audio.Clip, sampleRate, channels int) audio.Clip {
	clip = conformChannels(clip, channels)
	return resample.ToRate(clip, sampleRate)
}

// conformChannels converts the clip's interleaving to the target
// channel count. Stereo averages down to mono, mono duplicates up to
// stereo, and wider layouts carry their last channel into extra slots.
func conformChannels(clip audio.Clip, channels int) audio.Clip {
	if channels <= 0 || clip.Channels <= 0 || clip.Channels == channels {
		return clip
	}

	frames := clip.Frames()
	samples := make([]float32, frames*channels)

	switch {
	case clip.Channels == 2 && channels == 1:
		for f := 0; f < frames; f++ {
			samples[f] = (clip.Samples[f*2] + clip.Samples[f*2+1]) / 2
		}
	case clip.Channels == 1 && channels == 2:
		for f := 0; f < frames; f++ {
			samples[f*2] = clip.Samples[f]
			samples[f*2+1] = clip.Samples[f]
		}
	default:
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				src := ch
				if src >= clip.Channels {
					src = clip.Channels - 1
				}
				samples[f*channels+ch] = clip.Samples[f*clip.Channels+src]
			}
		}
	}

	return audio.Clip{Samples: samples, SampleRate: clip.SampleRate, Channels: channels}
}
