package stt

import "context"

// Provider converts one finalized audio payload into text. The language is
// fixed by the caller, never auto-detected. An empty transcript is a valid
// result when the service hears no speech.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, err error)
	Close() error
}
