package llm

import "context"

// Provider runs one prompt to completion. The pipeline exposes no partial
// results, so the whole response is returned at once.
type Provider interface {
	Complete(ctx context.Context, prompt string) (text string, err error)
	Close() error
}
