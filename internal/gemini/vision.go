// ABOUTME: Scene analysis over sampled video frames
// ABOUTME: Frames go inline as base64 JPEG parts, reply is a JSON report
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
)

// reportReply is the JSON object the analysis prompt asks for
type reportReply struct {
	NarrationText string `json:"narrationText"`
	AnalysisText  string `json:"analysisText"`
	DetectedGenre string `json:"detectedGenre"`
}

// AnalyzeScenes sends the frames and prompt to the vision model and
// parses the narration report out of its JSON reply.
func (c *Client) AnalyzeScenes(ctx context.Context, frames []cinevoice.Frame, prompt string) (cinevoice.Report, error) {
	if len(frames) == 0 {
		return cinevoice.Report{}, fmt.Errorf("no frames to analyze")
	}

	parts := make([]part, 0, len(frames)+1)
	parts = append(parts, part{Text: prompt +
		"\n\nReply with a single JSON object with the string fields " +
		"narrationText, analysisText, and detectedGenre."})
	for _, f := range frames {
		mime := f.MIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(f.Data),
		}})
	}

	resp, err := c.generateContent(ctx, c.VisionModel, generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return cinevoice.Report{}, fmt.Errorf("scene analysis request failed: %w", err)
	}

	text, err := firstText(resp)
	if err != nil {
		return cinevoice.Report{}, err
	}

	var reply reportReply
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &reply); err != nil {
		return cinevoice.Report{}, fmt.Errorf("unparseable analysis reply: %w", err)
	}
	if reply.NarrationText == "" {
		return cinevoice.Report{}, fmt.Errorf("analysis reply has no narration")
	}

	return cinevoice.Report{
		Narration: strings.TrimSpace(reply.NarrationText),
		Analysis:  strings.TrimSpace(reply.AnalysisText),
		Genre:     strings.TrimSpace(reply.DetectedGenre),
	}, nil
}

// stripCodeFence unwraps a ```json ... ``` fenced reply. Models emit
// the fence now and then even with a JSON response type set.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
