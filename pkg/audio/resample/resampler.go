// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Maps clips onto the opened device rate using linear interpolation
package resample

import "github.com/CineVoice/cinevoice-go/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved input samples to the output rate using
// linear interpolation. The last input frame is held for positions past
// the end.
func (r *Resampler) Resample(input []float32) []float32 {
	if r.inputRate == r.outputRate {
		return input
	}

	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return nil
	}

	outputFrames := int(float64(inputFrames) * float64(r.outputRate) / float64(r.inputRate))
	output := make([]float32, outputFrames*r.channels)

	for outIdx := 0; outIdx < outputFrames; outIdx++ {
		inputPos := float64(outIdx) * r.ratio
		inputIdx := int(inputPos)
		frac := float32(inputPos - float64(inputIdx))

		next := inputIdx + 1
		if next >= inputFrames {
			next = inputFrames - 1
		}

		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := input[next*r.channels+ch]
			output[outIdx*r.channels+ch] = sample1 + frac*(sample2-sample1)
		}
	}

	return output
}

// ToRate resamples a whole clip to targetRate. Clips already at the
// target rate pass through unchanged.
func ToRate(clip audio.Clip, targetRate int) audio.Clip {
	if clip.SampleRate == targetRate || clip.SampleRate <= 0 || targetRate <= 0 {
		return clip
	}

	r := New(clip.SampleRate, targetRate, clip.Channels)
	return audio.Clip{
		Samples:    r.Resample(clip.Samples),
		SampleRate: targetRate,
		Channels:   clip.Channels,
	}
}
