package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/shamsaravaiah/LYSYN/config"
	"github.com/shamsaravaiah/LYSYN/internal/api/handlers"
	"github.com/shamsaravaiah/LYSYN/internal/api/middleware"
	"github.com/shamsaravaiah/LYSYN/internal/api/routes"
	"github.com/shamsaravaiah/LYSYN/internal/capture"
	"github.com/shamsaravaiah/LYSYN/internal/logger"
	"github.com/shamsaravaiah/LYSYN/internal/providers/llm"
	"github.com/shamsaravaiah/LYSYN/internal/providers/stt"
	"github.com/shamsaravaiah/LYSYN/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	ctx := context.Background()

	// STT provider
	var sttProvider stt.Provider
	switch cfg.STTProvider {
	case "whisper":
		sttProvider = stt.NewWhisper(cfg.OpenAIAPIKey, cfg.WhisperModel)
	case "google":
		gp, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.Fatalf("google speech init error: %v", err)
		}
		sttProvider = gp
	default:
		sttProvider = &stt.Mock{Text: "Patienten mår bra idag."}
	}
	defer sttProvider.Close()

	// LLM provider
	var llmProvider llm.Provider
	switch cfg.LLMProvider {
	case "gemini":
		vp, err := llm.NewVertexGemini(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("vertex gemini init error: %v", err)
		}
		llmProvider = vp
	default:
		llmProvider = &llm.Mock{}
	}
	defer llmProvider.Close()

	transcriber := services.NewTranscriptionService(sttProvider, cfg.SpeechLanguage, cfg.TranscribeTimeout, l)
	summarizer := services.NewSummaryService(llmProvider, cfg.SummarizeTimeout, l)

	source, err := capture.NewExecSource(cfg.CaptureCommand)
	if err != nil {
		log.Fatalf("capture source error: %v", err)
	}
	pipeline := services.NewPipeline(source, transcriber, summarizer, l)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Transcribe: handlers.NewTranscribeHandler(transcriber),
		Summarize:  handlers.NewSummarizeHandler(summarizer),
		Visit:      handlers.NewVisitHandler(pipeline),
		Patients:   handlers.NewPatientHandler(),
		WS:         handlers.NewWSHandler(pipeline, l),
		JWTSecret:  cfg.JWTSecret,
	})

	l.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
