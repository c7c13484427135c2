// ABOUTME: Fallback speech engine backed by translate.google.com
// ABOUTME: Fetches MP3 audio in text chunks, no API key required
package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CineVoice/cinevoice-go/pkg/audio/payload"
	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
)

const defaultEndpoint = "https://translate.google.com/translate_tts"

// chunkSize is the rune budget per request, the endpoint rejects
// longer texts
const chunkSize = 200

// Translate is the keyless fallback speech engine. Only the language
// is configurable; voice names and style hints have no effect. Audio
// comes back as MP3, so results carry the MP3 encoding.
type Translate struct {
	HTTPClient *http.Client
	Lang       string

	// Endpoint is the service URL, overridable for tests
	Endpoint string
}

// NewTranslate creates a translate engine for the given language code
func NewTranslate(lang string) *Translate {
	if lang == "" {
		lang = "en"
	}
	return &Translate{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Lang:       lang,
		Endpoint:   defaultEndpoint,
	}
}

// Synthesize fetches the narration as MP3, chunk by chunk, and returns
// the concatenated stream as a base64 payload.
func (t *Translate) Synthesize(ctx context.Context, text, voice, styleHint string) (cinevoice.SpeechResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return cinevoice.SpeechResult{}, nil
	}

	buf := bytes.NewBuffer(nil)
	for _, chunk := range chunks(text) {
		audio, err := t.fetchChunk(ctx, chunk)
		if err != nil {
			return cinevoice.SpeechResult{}, err
		}
		buf.Write(audio)
	}

	return cinevoice.SpeechResult{
		Payload:  payload.Encode(buf.Bytes()),
		Encoding: cinevoice.EncodingMP3,
	}, nil
}

func (t *Translate) fetchChunk(ctx context.Context, text string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("q", text)
	params.Set("tl", t.Lang)
	params.Set("total", "1")
	params.Set("idx", "0")
	params.Set("textlen", fmt.Sprintf("%d", len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translate tts status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(resp.Body)
}

// chunks splits text into request-sized rune windows
func chunks(text string) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
