// ABOUTME: Voice and speaking-style presets keyed by detected genre
// ABOUTME: Used when the caller does not pin a style hint explicitly
package cinevoice

import "strings"

// DefaultVoice is the synthesis voice used when the config does not
// name one
const DefaultVoice = "Aoede"

// defaultStyle covers genres without a preset
const defaultStyle = "natural, engaging storyteller"

// stylePresets maps genre labels to speaking-style hints for the
// synthesizer
var stylePresets = map[string]string{
	"documentary":     "calm, measured and authoritative, like a nature documentary narrator",
	"horror":          "low tense whisper that slowly builds dread",
	"comedy":          "upbeat and playful with exaggerated comic timing",
	"action":          "fast, urgent delivery with high energy",
	"drama":           "warm and emotive with deliberate pauses",
	"romance":         "soft and intimate with gentle pacing",
	"sci-fi":          "cool and wondrous with a sense of scale",
	"science fiction": "cool and wondrous with a sense of scale",
	"thriller":        "clipped and suspenseful, quietly intense",
	"sports":          "excited play-by-play announcer delivery",
	"travel":          "bright and curious, inviting the viewer along",
}

// StyleForGenre returns the speaking-style hint for a detected genre.
// Matching is case-insensitive and tolerates qualifiers around the
// genre word, so "a gritty Horror short" still lands on the horror
// preset.
func StyleForGenre(genre string) string {
	g := strings.ToLower(strings.TrimSpace(genre))
	if g == "" {
		return defaultStyle
	}
	if style, ok := stylePresets[g]; ok {
		return style
	}
	for name, style := range stylePresets {
		if strings.Contains(g, name) {
			return style
		}
	}
	return defaultStyle
}
