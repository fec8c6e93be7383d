package capture

import (
	"context"
	"sync"
)

// MockSource plays back canned chunks, for local development and tests.
type MockSource struct {
	Chunks  [][]byte
	OpenErr error

	mu         sync.Mutex
	OpenCalls  int
	CloseCalls int

	ch chan []byte
}

func (m *MockSource) Open(ctx context.Context) (<-chan []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenCalls++
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.ch = make(chan []byte, len(m.Chunks))
	for _, c := range m.Chunks {
		m.ch <- c
	}
	return m.ch, nil
}

func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	if m.ch != nil {
		close(m.ch)
		m.ch = nil
	}
	return nil
}
