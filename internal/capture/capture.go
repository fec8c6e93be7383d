// Package capture owns the microphone recording lifecycle. A Controller
// drives one single-use Session at a time: chunks buffer while recording,
// stop finalizes them into one payload and hands it straight to the
// configured sink. The stop-to-transcription hand-off is intentional — a
// finished recording must never be left orphaned with no follow-up.
package capture

import "context"

// State of a recording session.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStopped   State = "stopped"
)

// Source abstracts the audio input device. Open requests access and returns
// a channel of encoded audio fragments in encounter order; the channel is
// closed when the device stops delivering. Close releases the device and
// must be safe to call more than once.
type Source interface {
	Open(ctx context.Context) (<-chan []byte, error)
	Close() error
}

// Sink receives the finalized payload of a stopped session.
type Sink interface {
	AudioFinalized(ctx context.Context, audio []byte)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, audio []byte)

func (f SinkFunc) AudioFinalized(ctx context.Context, audio []byte) { f(ctx, audio) }
