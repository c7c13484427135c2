// ABOUTME: Application configuration loaded from .env and environment
// ABOUTME: Flags layered on top by the entrypoints override these values
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// GeminiKey authenticates against the generative AI service
	GeminiKey string

	// VisionModel is the model used for scene analysis
	VisionModel string

	// SpeechModel is the model used for speech synthesis
	SpeechModel string

	// SpeechEngine selects the synthesizer: "gemini" or "translate"
	SpeechEngine string

	// TranslateLang is the language code for the translate engine
	TranslateLang string

	// HTTPAddress is the listen address for the narration server
	HTTPAddress string
}

// Load reads environment variables and returns Config with sane
// defaults. A missing .env file is fine; real environment variables
// still apply.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		log.Println("Warning: GEMINI_API_KEY not set - scene analysis and speech synthesis will not work")
	}

	return Config{
		GeminiKey:     key,
		VisionModel:   getEnv("CINEVOICE_VISION_MODEL", "gemini-2.0-flash"),
		SpeechModel:   getEnv("CINEVOICE_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		SpeechEngine:  getEnv("CINEVOICE_SPEECH_ENGINE", "gemini"),
		TranslateLang: getEnv("CINEVOICE_TRANSLATE_LANG", "en"),
		HTTPAddress:   getEnv("CINEVOICE_HTTP_ADDRESS", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
