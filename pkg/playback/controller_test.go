// ABOUTME: Tests for the playback controller state machine
// ABOUTME: Uses the null output device so no audio hardware is required
package playback

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
	"github.com/CineVoice/cinevoice-go/pkg/audio/output"
)

func clipOfFrames(frames int) audio.Clip {
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(i%16) / 32.0
	}
	return audio.Clip{
		Samples:    samples,
		SampleRate: audio.SpeechSampleRate,
		Channels:   audio.SpeechChannels,
	}
}

// shortClip lasts about 5ms on the null device
func shortClip() audio.Clip {
	return clipOfFrames(120)
}

// longClip lasts about a second, long enough to stay playing while a
// test pokes at it
func longClip() audio.Clip {
	return clipOfFrames(audio.SpeechSampleRate)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestPlayToNaturalEnd(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	done := make(chan struct{})
	s, err := c.Play(shortClip(), func() { close(done) })
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if s.ID() == "" {
		t.Error("expected a session ID")
	}
	if s.State() != StatePlaying {
		t.Errorf("expected playing, got %v", s.State())
	}
	if c.State() != StatePlaying {
		t.Errorf("expected playing controller, got %v", c.State())
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session never finished")
	}

	if s.State() != StateEnded {
		t.Errorf("expected ended, got %v", s.State())
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle controller, got %v", c.State())
	}
	if c.Active() != nil {
		t.Error("expected no active session after natural end")
	}
}

func TestFinishCallbackFiresOnce(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	var calls atomic.Int32
	if _, err := c.Play(shortClip(), func() { calls.Add(1) }); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	waitFor(t, "finish callback", func() bool { return calls.Load() == 1 })

	time.Sleep(5 * watchInterval)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly one finish callback, got %d", n)
	}
}

func TestPlayReplacesActiveSession(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	var finishedA atomic.Bool
	a, err := c.Play(longClip(), func() { finishedA.Store(true) })
	if err != nil {
		t.Fatalf("play A failed: %v", err)
	}

	b, err := c.Play(longClip(), nil)
	if err != nil {
		t.Fatalf("play B failed: %v", err)
	}

	if a.State() != StateStopped {
		t.Errorf("expected A stopped, got %v", a.State())
	}
	if b.State() != StatePlaying {
		t.Errorf("expected B playing, got %v", b.State())
	}
	if c.Active() != b {
		t.Error("expected B to be the active session")
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct session IDs")
	}

	// Controls on the replaced handle no longer do anything.
	c.Pause(a)
	if a.State() != StateStopped {
		t.Errorf("pause on replaced session changed state to %v", a.State())
	}

	time.Sleep(5 * watchInterval)
	if finishedA.Load() {
		t.Error("replaced session fired its finish callback")
	}

	c.Stop(b)
}

func TestStopIsIdempotent(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	s, err := c.Play(longClip(), nil)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	c.Stop(s)
	if s.State() != StateStopped {
		t.Errorf("expected stopped, got %v", s.State())
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle controller, got %v", c.State())
	}

	c.Stop(s)
	if s.State() != StateStopped {
		t.Errorf("second stop changed state to %v", s.State())
	}
	if c.State() != StateIdle {
		t.Errorf("second stop changed controller state to %v", c.State())
	}

	c.Stop(nil)
}

func TestStopSuppressesFinishCallback(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	var finished atomic.Bool
	s, err := c.Play(clipOfFrames(7200), func() { finished.Store(true) }) // ~300ms
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	c.Stop(s)

	time.Sleep(400 * time.Millisecond)
	if finished.Load() {
		t.Error("stopped session fired its finish callback")
	}
	if s.State() != StateStopped {
		t.Errorf("expected stopped, got %v", s.State())
	}
}

func TestPauseHoldsPosition(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	done := make(chan struct{})
	s, err := c.Play(clipOfFrames(1200), func() { close(done) }) // ~50ms
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	c.Pause(s)
	if s.State() != StatePaused {
		t.Errorf("expected paused, got %v", s.State())
	}

	// Well past the clip's nominal duration; a paused session must not
	// end on its own.
	time.Sleep(150 * time.Millisecond)
	if s.State() != StatePaused {
		t.Errorf("paused session drifted to %v", s.State())
	}

	c.Resume(s)
	if s.State() != StatePlaying {
		t.Errorf("expected playing after resume, got %v", s.State())
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("resumed session never finished")
	}
	if s.State() != StateEnded {
		t.Errorf("expected ended, got %v", s.State())
	}
}

func TestPauseResumeWrongStateAreNoOps(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	s, err := c.Play(longClip(), nil)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	c.Resume(s)
	if s.State() != StatePlaying {
		t.Errorf("resume while playing changed state to %v", s.State())
	}

	c.Pause(s)
	c.Pause(s)
	if s.State() != StatePaused {
		t.Errorf("double pause changed state to %v", s.State())
	}

	c.Stop(s)
	c.Pause(s)
	c.Resume(s)
	if s.State() != StateStopped {
		t.Errorf("controls on stopped session changed state to %v", s.State())
	}

	c.Pause(nil)
	c.Resume(nil)
}

// failDevice fails Open on demand, otherwise delegates to the wrapped
// device.
type failDevice struct {
	output.Device
	failOpen bool
}

func (d *failDevice) Open(sampleRate, channels int) error {
	if d.failOpen {
		return errors.New("device busy")
	}
	return d.Device.Open(sampleRate, channels)
}

func TestDeviceFailureLeavesControllerRetryable(t *testing.T) {
	dev := &failDevice{Device: output.NewNull(), failOpen: true}
	c := NewController(dev)
	defer c.Close()

	if _, err := c.Play(shortClip(), nil); err == nil {
		t.Fatal("expected device error")
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle after failed play, got %v", c.State())
	}

	dev.failOpen = false
	s, err := c.Play(longClip(), nil)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s.State() != StatePlaying {
		t.Errorf("expected playing after retry, got %v", s.State())
	}
	c.Stop(s)
}

func TestPlayRejectsInvalidFormat(t *testing.T) {
	c := NewController(output.NewNull())
	defer c.Close()

	bad := audio.Clip{Samples: []float32{0.1, 0.2}, SampleRate: 0, Channels: 1}
	if _, err := c.Play(bad, nil); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle controller, got %v", c.State())
	}
}

func TestPlayConformsToDeviceFormat(t *testing.T) {
	dev := output.NewNull()
	c := NewController(dev)
	defer c.Close()

	first, err := c.Play(longClip(), nil)
	if err != nil {
		t.Fatalf("first play failed: %v", err)
	}
	c.Stop(first)

	// A clip at a different rate plays through the format the device
	// was opened with.
	other := audio.Clip{
		Samples:    make([]float32, 9600),
		SampleRate: 48000,
		Channels:   1,
	}
	s, err := c.Play(other, nil)
	if err != nil {
		t.Fatalf("second play failed: %v", err)
	}
	if s.State() != StatePlaying {
		t.Errorf("expected playing, got %v", s.State())
	}

	rate, channels := dev.Format()
	if rate != audio.SpeechSampleRate || channels != audio.SpeechChannels {
		t.Errorf("device format changed to %dHz %dch", rate, channels)
	}
	c.Stop(s)
}

func TestConformChannels(t *testing.T) {
	stereo := audio.Clip{
		Samples:    []float32{0.2, 0.4, -0.2, -0.4},
		SampleRate: 24000,
		Channels:   2,
	}

	mono := conformChannels(stereo, 1)
	if mono.Channels != 1 || len(mono.Samples) != 2 {
		t.Fatalf("expected 2 mono samples, got %d channels, %d samples", mono.Channels, len(mono.Samples))
	}
	if diff := mono.Samples[0] - 0.3; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("frame 0: expected average 0.3, got %f", mono.Samples[0])
	}

	back := conformChannels(mono, 2)
	if back.Channels != 2 || len(back.Samples) != 4 {
		t.Fatalf("expected 4 stereo samples, got %d channels, %d samples", back.Channels, len(back.Samples))
	}
	if back.Samples[0] != back.Samples[1] {
		t.Errorf("expected duplicated channels, got %f and %f", back.Samples[0], back.Samples[1])
	}

	same := conformChannels(stereo, 2)
	if len(same.Samples) != len(stereo.Samples) {
		t.Errorf("same channel count should pass through, got %d samples", len(same.Samples))
	}
}
