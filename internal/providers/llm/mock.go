package llm

import "context"

// Mock returns a canned completion, for local development and tests.
type Mock struct {
	Text string
	Err  error

	Calls   int
	Prompts []string
}

func (m *Mock) Close() error { return nil }

func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
