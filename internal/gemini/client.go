// ABOUTME: HTTP client for the Gemini generateContent API
// ABOUTME: One opaque JSON call per operation, no SDK dependency
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini API for scene analysis and speech synthesis.
// It implements the studio's Analyzer and Speech contracts.
type Client struct {
	HTTPClient  *http.Client
	APIKey      string
	VisionModel string
	SpeechModel string

	// BaseURL points at the API root, overridable for tests
	BaseURL string
}

// NewClient creates a Gemini client for the given key and models
func NewClient(apiKey, visionModel, speechModel string) *Client {
	return &Client{
		HTTPClient:  &http.Client{Timeout: 2 * time.Minute},
		APIKey:      apiKey,
		VisionModel: visionModel,
		SpeechModel: speechModel,
		BaseURL:     defaultBaseURL,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// generateContent posts one request to a model and decodes the reply
func (c *Client) generateContent(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("gemini api key missing")
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, model)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	return &gr, nil
}

// firstText returns the first text part of the first candidate
func firstText(resp *generateResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: empty candidates")
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("gemini: no text part in reply")
}
