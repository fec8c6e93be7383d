package stt

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Whisper transcribes via the OpenAI audio transcription endpoint.
type Whisper struct {
	client *openai.Client
	model  string
}

func NewWhisper(apiKey, model string) *Whisper {
	if model == "" {
		model = openai.Whisper1
	}
	return &Whisper{client: openai.NewClient(apiKey), model: model}
}

func (w *Whisper) Close() error { return nil }

// language example: "sv", "en"
func (w *Whisper) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: "visit.webm", // filename hint only; bytes come from Reader
		Reader:   bytes.NewReader(audio),
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
