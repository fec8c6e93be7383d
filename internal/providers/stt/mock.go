package stt

import "context"

// Mock returns a canned transcript, for local development and tests.
type Mock struct {
	Text string
	Err  error

	Calls int
}

func (m *Mock) Close() error { return nil }

func (m *Mock) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
