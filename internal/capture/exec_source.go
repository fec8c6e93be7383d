package capture

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
)

// ExecSource records by running an external capture command (arecord,
// ffmpeg, sox) and reading encoded audio from its stdout. The command holds
// the microphone for the lifetime of one recording.
type ExecSource struct {
	cmd []string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExecSource(command string) (*ExecSource, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse capture command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("capture command is empty")
	}
	return &ExecSource{cmd: args}, nil
}

func (s *ExecSource) Open(ctx context.Context) (<-chan []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil, ErrDeviceUnavailable
	}

	runCtx, cancel := context.WithCancel(ctx)
	command := exec.CommandContext(runCtx, s.cmd[0], s.cmd[1:]...)
	var stderr strings.Builder
	command.Stderr = &stderr

	stdout, err := command.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := command.Start(); err != nil {
		cancel()
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		}
		return nil, err
	}

	out := make(chan []byte)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(out)
		defer close(done)
		defer func() { _ = command.Wait() }()

		for {
			buf := make([]byte, 32*1024)
			n, err := stdout.Read(buf)
			if n > 0 {
				out <- buf[:n]
			}
			if err != nil {
				return
			}
		}
	}()

	return out, nil
}

// Close stops the capture command and waits for the reader to drain. Safe
// to call repeatedly.
func (s *ExecSource) Close() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
