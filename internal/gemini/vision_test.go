// ABOUTME: Tests for scene analysis against a stub Gemini endpoint
// ABOUTME: Asserts the wire shape with raw JSON key names
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
)

var (
	_ cinevoice.Analyzer = (*Client)(nil)
	_ cinevoice.Speech   = (*Client)(nil)
)

func testClient(server *httptest.Server) *Client {
	c := NewClient("test-key", "vision-model", "speech-model")
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()
	return c
}

func analyzerFrames() []cinevoice.Frame {
	return []cinevoice.Frame{
		{Data: []byte{0xFF, 0xD8, 0x01}, MIME: "image/jpeg", Index: 0},
		{Data: []byte{0xFF, 0xD8, 0x02}, MIME: "image/jpeg", Index: 1},
	}
}

// textReply wraps reply text in a minimal generateContent response body
func textReply(w http.ResponseWriter, reply string) {
	quoted, _ := json.Marshal(reply)
	fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%s}]},"finishReason":"STOP"}]}`, quoted)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("reading request body failed: %v", err)
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Errorf("unparseable request body: %v", err)
		return nil
	}
	return m
}

// requestParts digs contents[0].parts out of a decoded request body
func requestParts(t *testing.T, m map[string]any) []any {
	t.Helper()
	contents, ok := m["contents"].([]any)
	if !ok || len(contents) == 0 {
		t.Error("request has no contents")
		return nil
	}
	parts, ok := contents[0].(map[string]any)["parts"].([]any)
	if !ok {
		t.Error("request content has no parts")
		return nil
	}
	return parts
}

func TestAnalyzeScenes(t *testing.T) {
	report := `{"narrationText":" The storm rolls in. ","analysisText":"Wide shot of mountains.","detectedGenre":"documentary"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/vision-model:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header, got %q", r.Header.Get("x-goog-api-key"))
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		m := decodeBody(t, r)
		parts := requestParts(t, m)
		if len(parts) != 3 {
			t.Errorf("expected prompt part plus 2 frames, got %d parts", len(parts))
		} else {
			text, _ := parts[0].(map[string]any)["text"].(string)
			if !strings.Contains(text, "describe the scenery") {
				t.Errorf("prompt text missing from first part: %q", text)
			}
			inline, _ := parts[1].(map[string]any)["inlineData"].(map[string]any)
			if inline["mimeType"] != "image/jpeg" {
				t.Errorf("expected image/jpeg inline part, got %v", inline["mimeType"])
			}
			wantData := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0x01})
			if inline["data"] != wantData {
				t.Errorf("expected base64 frame data %q, got %v", wantData, inline["data"])
			}
		}
		config, _ := m["generationConfig"].(map[string]any)
		if config["responseMimeType"] != "application/json" {
			t.Errorf("expected JSON response type, got %v", config["responseMimeType"])
		}

		textReply(w, report)
	}))
	defer server.Close()

	c := testClient(server)
	got, err := c.AnalyzeScenes(context.Background(), analyzerFrames(), "describe the scenery")
	if err != nil {
		t.Fatalf("AnalyzeScenes failed: %v", err)
	}

	if got.Narration != "The storm rolls in." {
		t.Errorf("expected trimmed narration, got %q", got.Narration)
	}
	if got.Analysis != "Wide shot of mountains." {
		t.Errorf("unexpected analysis %q", got.Analysis)
	}
	if got.Genre != "documentary" {
		t.Errorf("unexpected genre %q", got.Genre)
	}
}

func TestAnalyzeScenesFencedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		textReply(w, "```json\n{\"narrationText\":\"Night falls.\",\"analysisText\":\"\",\"detectedGenre\":\"horror\"}\n```")
	}))
	defer server.Close()

	got, err := testClient(server).AnalyzeScenes(context.Background(), analyzerFrames(), "p")
	if err != nil {
		t.Fatalf("AnalyzeScenes failed: %v", err)
	}
	if got.Narration != "Night falls." || got.Genre != "horror" {
		t.Errorf("unexpected report %+v", got)
	}
}

func TestAnalyzeScenesMissingNarration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		textReply(w, `{"analysisText":"something"}`)
	}))
	defer server.Close()

	if _, err := testClient(server).AnalyzeScenes(context.Background(), analyzerFrames(), "p"); err == nil {
		t.Error("expected an error for a reply without narration")
	}
}

func TestAnalyzeScenesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server).AnalyzeScenes(context.Background(), analyzerFrames(), "p")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "status=500") {
		t.Errorf("expected the status in the error, got %v", err)
	}
}

func TestAnalyzeScenesNoFrames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	}))
	defer server.Close()

	if _, err := testClient(server).AnalyzeScenes(context.Background(), nil, "p"); err == nil {
		t.Error("expected an error for no frames")
	}
}

func TestAnalyzeScenesMissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	}))
	defer server.Close()

	c := testClient(server)
	c.APIKey = ""
	if _, err := c.AnalyzeScenes(context.Background(), analyzerFrames(), "p"); err == nil {
		t.Error("expected an error without an api key")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
