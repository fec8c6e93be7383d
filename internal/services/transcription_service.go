package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shamsaravaiah/LYSYN/internal/providers/stt"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

// TranscriptionService turns one finalized audio payload into text.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type transcriptionService struct {
	provider stt.Provider
	language string
	timeout  time.Duration
	log      *logrus.Logger
}

// NewTranscriptionService fixes the spoken language up front; there is no
// auto-detection. timeout 0 means wait indefinitely.
func NewTranscriptionService(provider stt.Provider, language string, timeout time.Duration, log *logrus.Logger) TranscriptionService {
	if language == "" {
		language = "sv"
	}
	if log == nil {
		log = logrus.New()
	}
	return &transcriptionService{provider: provider, language: language, timeout: timeout, log: log}
}

func (s *transcriptionService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	const op = "TranscriptionService.Transcribe"

	// precondition first; an empty payload never reaches the network
	if len(audio) == 0 {
		return "", utils.E(utils.CodeInvalidInput, op, "no audio received", nil)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.provider.Transcribe(ctx, audio, s.language)
	if err != nil {
		s.log.WithError(err).WithField("bytes", len(audio)).Error("transcription failed")
		return "", utils.E(utils.CodeServiceError, op, "could not transcribe the audio", err)
	}

	s.log.WithFields(logrus.Fields{
		"bytes":       len(audio),
		"chars":       len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("transcription done")

	// an empty transcript is a valid result: the service heard no speech
	return text, nil
}
