package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup from the environment (.env supported via
// godotenv in main).
type Config struct {
	Port     string
	LogLevel string

	// SpeechLanguage is the fixed target language for transcription; there
	// is no auto-detection.
	SpeechLanguage string

	STTProvider string // whisper | google | mock
	LLMProvider string // gemini | mock

	OpenAIAPIKey string
	WhisperModel string

	GCPProjectID string
	GCPLocation  string
	GeminiModel  string

	// CaptureCommand is the external recording command for the visit flow,
	// e.g. "arecord -q -f S16_LE -r 16000 -t raw -".
	CaptureCommand string

	// Per-stage maximum wait; 0 disables the limit.
	TranscribeTimeout time.Duration
	SummarizeTimeout  time.Duration

	// JWTSecret enables bearer auth when non-empty.
	JWTSecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		SpeechLanguage:    getenv("SPEECH_LANGUAGE", "sv"),
		STTProvider:       strings.ToLower(getenv("STT_PROVIDER", "whisper")),
		LLMProvider:       strings.ToLower(getenv("LLM_PROVIDER", "gemini")),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		WhisperModel:      getenv("WHISPER_MODEL", "whisper-1"),
		GCPProjectID:      os.Getenv("GCP_PROJECT_ID"),
		GCPLocation:       getenv("GCP_LOCATION", "europe-north1"),
		GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		CaptureCommand:    getenv("CAPTURE_COMMAND", "arecord -q -f S16_LE -r 16000 -t raw -"),
		TranscribeTimeout: getenvMS("TRANSCRIBE_TIMEOUT_MS", 60_000),
		SummarizeTimeout:  getenvMS("SUMMARIZE_TIMEOUT_MS", 60_000),
		JWTSecret:         os.Getenv("JWT_SECRET"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.STTProvider {
	case "whisper":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("STT_PROVIDER=whisper requires OPENAI_API_KEY")
		}
	case "google", "mock":
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	switch c.LLMProvider {
	case "gemini":
		if c.GCPProjectID == "" {
			return fmt.Errorf("LLM_PROVIDER=gemini requires GCP_PROJECT_ID")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvMS(key string, def int64) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return time.Duration(def) * time.Millisecond
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms < 0 {
		return time.Duration(def) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
