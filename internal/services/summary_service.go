package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shamsaravaiah/LYSYN/internal/models"
	"github.com/shamsaravaiah/LYSYN/internal/normalizer"
	"github.com/shamsaravaiah/LYSYN/internal/providers/llm"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

// notePrompt is the fixed instruction template for the language model. It
// pins the transcript as the only source of truth, forbids fabrication,
// requires the sentinel phrase for anything the visit did not cover, and
// demands bare JSON in the exact care-note shape.
const notePrompt = `
Du är ett verktyg som hjälper svensk vårdpersonal på äldreboenden att skriva korrekta vårdanteckningar.

Du får en transkription av ett samtal mellan personal och boende (eventuellt anhörig).
Din uppgift:

1. Använd transkriptionen (på svenska) som enda källa.
2. Skapa en strukturerad vårdanteckning på svenska.
3. Hitta inte på information. Använd bara det som faktiskt står i transkriptionen.
4. Om någon del inte nämns i samtalet ska du skriva "` + models.SentinelNotDiscussed + `".

Returnera SVARET som giltig JSON med detta format:

{
  "summary": "kort sammanfattning på svenska, 2–4 meningar",
  "sections": {
    "patient_profile": "kort beskrivning av patienten",
    "complaints": "vilka besvär och problem nämns",
    "observations": "observationer om hälsa, beteende, miljö",
    "actions": "vad personalen gjorde under besöket",
    "risks": "eventuella risker eller varningssignaler",
    "follow_up": "förslag på uppföljning eller åtgärder"
  }
}

Inget annat än JSON.
`

// SummaryService turns a visit transcript into a structured care note.
type SummaryService interface {
	Summarize(ctx context.Context, transcript string) (*models.CareNote, error)
}

type summaryService struct {
	provider llm.Provider
	timeout  time.Duration
	log      *logrus.Logger
}

func NewSummaryService(provider llm.Provider, timeout time.Duration, log *logrus.Logger) SummaryService {
	if log == nil {
		log = logrus.New()
	}
	return &summaryService{provider: provider, timeout: timeout, log: log}
}

func (s *summaryService) Summarize(ctx context.Context, transcript string) (*models.CareNote, error) {
	const op = "SummaryService.Summarize"

	if strings.TrimSpace(transcript) == "" {
		return nil, utils.E(utils.CodeInvalidInput, op, "no transcript received", nil)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := notePrompt + "\n\nTranskription:\n\"\"\"" + transcript + "\"\"\""

	start := time.Now()
	raw, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Error("summarization call failed")
		return nil, utils.E(utils.CodeServiceError, op, "could not create the summary", err)
	}

	note, err := normalizer.Normalize(raw)
	if err != nil {
		// keep the raw text in the log for auditing; never in the response
		var malformed *normalizer.MalformedResponseError
		if errors.As(err, &malformed) {
			s.log.WithField("raw", malformed.Raw).WithError(err).Warn("model response rejected")
		}
		return nil, utils.E(utils.CodeMalformedResponse, op, "the model response was not a valid care note", err)
	}

	s.log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("summary done")
	return note, nil
}
