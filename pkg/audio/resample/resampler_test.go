// ABOUTME: Tests for the linear resampler
// ABOUTME: Covers identity, downsampling, upsampling, and stereo alignment
package resample

import (
	"testing"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
)

func TestResampleIdentity(t *testing.T) {
	r := New(24000, 24000, 1)
	input := []float32{0.1, 0.2, 0.3, 0.4}

	output := r.Resample(input)

	if len(output) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(output))
	}
	for i := range input {
		if output[i] != input[i] {
			t.Errorf("sample %d: expected %f, got %f", i, input[i], output[i])
		}
	}
}

func TestResampleHalve(t *testing.T) {
	r := New(48000, 24000, 1)
	input := []float32{0.0, 0.2, 0.4, 0.6}

	output := r.Resample(input)

	if len(output) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(output))
	}
	if output[0] != 0.0 {
		t.Errorf("sample 0: expected 0.0, got %f", output[0])
	}
	if output[1] != 0.4 {
		t.Errorf("sample 1: expected 0.4, got %f", output[1])
	}
}

func TestResampleDouble(t *testing.T) {
	r := New(12000, 24000, 1)
	input := []float32{0.0, 1.0}

	output := r.Resample(input)

	if len(output) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(output))
	}
	// Interpolated midpoints sit halfway between neighbors.
	expected := []float32{0.0, 0.5, 1.0, 1.0}
	for i, want := range expected {
		if diff := output[i] - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("sample %d: expected %f, got %f", i, want, output[i])
		}
	}
}

func TestResampleStereoKeepsFrames(t *testing.T) {
	r := New(48000, 24000, 2)
	input := []float32{
		0.1, -0.1,
		0.2, -0.2,
		0.3, -0.3,
		0.4, -0.4,
	}

	output := r.Resample(input)

	if len(output) != 4 {
		t.Fatalf("expected 4 samples (2 frames), got %d", len(output))
	}
	if output[0] != 0.1 || output[1] != -0.1 {
		t.Errorf("frame 0: expected (0.1, -0.1), got (%f, %f)", output[0], output[1])
	}
	if output[2] != 0.3 || output[3] != -0.3 {
		t.Errorf("frame 1: expected (0.3, -0.3), got (%f, %f)", output[2], output[3])
	}
}

func TestResampleEmpty(t *testing.T) {
	r := New(48000, 24000, 1)

	output := r.Resample(nil)

	if len(output) != 0 {
		t.Fatalf("expected no samples, got %d", len(output))
	}
}

func TestToRate(t *testing.T) {
	clip := audio.Clip{
		Samples:    []float32{0.0, 0.2, 0.4, 0.6},
		SampleRate: 48000,
		Channels:   1,
	}

	out := ToRate(clip, 24000)

	if out.SampleRate != 24000 {
		t.Errorf("expected rate 24000, got %d", out.SampleRate)
	}
	if out.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", out.Channels)
	}
	if len(out.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out.Samples))
	}
}

func TestToRateSameRate(t *testing.T) {
	clip := audio.Clip{
		Samples:    []float32{0.1, 0.2},
		SampleRate: 24000,
		Channels:   1,
	}

	out := ToRate(clip, 24000)

	if len(out.Samples) != 2 || out.Samples[0] != 0.1 {
		t.Errorf("expected clip unchanged, got %+v", out)
	}
}
