package capture

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

type recordingSink struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (s *recordingSink) AudioFinalized(ctx context.Context, audio []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, audio)
}

func TestControllerConcatenatesChunksInOrder(t *testing.T) {
	source := &MockSource{Chunks: [][]byte{[]byte("one-"), []byte("two-"), []byte("three")}}
	sink := &recordingSink{}
	c := NewController(source, sink, nil)

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if c.State() != StateRecording {
		t.Fatalf("expected recording, got %s", c.State())
	}

	c.Stop(ctx)

	if len(sink.payloads) != 1 {
		t.Fatalf("expected one finalized payload, got %d", len(sink.payloads))
	}
	if !bytes.Equal(sink.payloads[0], []byte("one-two-three")) {
		t.Fatalf("unexpected payload: %q", sink.payloads[0])
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after stop, got %s", c.State())
	}
}

func TestControllerStopIsIdempotent(t *testing.T) {
	source := &MockSource{Chunks: [][]byte{[]byte("a")}}
	sink := &recordingSink{}
	c := NewController(source, sink, nil)

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	c.Stop(ctx)
	c.Stop(ctx) // no-op
	c.Stop(ctx) // no-op

	if len(sink.payloads) != 1 {
		t.Fatalf("payload emitted %d times, want 1", len(sink.payloads))
	}
	if source.CloseCalls != 1 {
		t.Fatalf("device released %d times, want 1", source.CloseCalls)
	}
}

func TestControllerStopWithoutStart(t *testing.T) {
	source := &MockSource{}
	sink := &recordingSink{}
	c := NewController(source, sink, nil)

	c.Stop(context.Background())

	if len(sink.payloads) != 0 {
		t.Fatal("no-op stop emitted a payload")
	}
	if source.CloseCalls != 0 {
		t.Fatal("no-op stop touched the device")
	}
}

func TestControllerRejectsDoubleStart(t *testing.T) {
	source := &MockSource{Chunks: [][]byte{[]byte("a")}}
	c := NewController(source, &recordingSink{}, nil)

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := c.Start(ctx); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	c.Stop(ctx)
}

func TestControllerClassifiesOpenFailures(t *testing.T) {
	cases := []struct {
		err  error
		code utils.Code
	}{
		{ErrPermissionDenied, utils.CodePermissionDenied},
		{ErrDeviceUnavailable, utils.CodeDeviceUnavailable},
		{errors.New("pcm_open: permission denied"), utils.CodePermissionDenied},
		{errors.New("no such device"), utils.CodeDeviceUnavailable},
	}

	for _, tc := range cases {
		source := &MockSource{OpenErr: tc.err}
		c := NewController(source, &recordingSink{}, nil)

		err := c.Start(context.Background())
		if !utils.IsCode(err, tc.code) {
			t.Fatalf("open error %v: expected %s, got %v", tc.err, tc.code, err)
		}
		if c.State() != StateIdle {
			t.Fatalf("expected idle after failed start, got %s", c.State())
		}
	}
}

func TestControllerAbortReleasesWithoutEmitting(t *testing.T) {
	source := &MockSource{Chunks: [][]byte{[]byte("a")}}
	sink := &recordingSink{}
	c := NewController(source, sink, nil)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.abort()

	if len(sink.payloads) != 0 {
		t.Fatal("abort emitted a payload")
	}
	if source.CloseCalls != 1 {
		t.Fatalf("device released %d times, want 1", source.CloseCalls)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after abort, got %s", c.State())
	}
}
