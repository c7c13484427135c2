// ABOUTME: Speech synthesis through the Gemini TTS models
// ABOUTME: Returns base64 raw PCM at 24000 Hz mono, or nothing
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
)

// Synthesize voices the narration with the configured speech model.
// The result's payload is base64 raw 16-bit PCM at the speech format,
// or empty when the model produced no audio.
func (c *Client) Synthesize(ctx context.Context, text, voice, styleHint string) (cinevoice.SpeechResult, error) {
	if strings.TrimSpace(text) == "" {
		return cinevoice.SpeechResult{}, nil
	}

	instruction := text
	if styleHint != "" {
		instruction = fmt.Sprintf("Read the following narration in a %s voice:\n\n%s", styleHint, text)
	}

	resp, err := c.generateContent(ctx, c.SpeechModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	})
	if err != nil {
		return cinevoice.SpeechResult{}, fmt.Errorf("speech request failed: %w", err)
	}

	return cinevoice.SpeechResult{
		Payload:  firstAudio(resp),
		Encoding: cinevoice.EncodingPCM,
	}, nil
}

// firstAudio returns the base64 audio payload from the reply, or ""
// when the candidate carries no audio part. An empty payload is the
// valid no-audio outcome, not an error.
func firstAudio(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && strings.HasPrefix(p.InlineData.MimeType, "audio/") && p.InlineData.Data != "" {
			return p.InlineData.Data
		}
	}
	return ""
}
