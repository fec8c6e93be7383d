package capture

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

// Sentinel errors a Source implementation can return from Open to let the
// controller classify the failure for the caller.
var (
	ErrPermissionDenied  = errors.New("microphone permission denied")
	ErrDeviceUnavailable = errors.New("microphone device unavailable")
)

// Controller manages one recording session at a time.
type Controller struct {
	source Source
	sink   Sink
	log    *logrus.Logger

	mu      sync.Mutex
	session *session
}

// session is single-use: once its payload is handed to the sink it is
// detached from the controller and never reused.
type session struct {
	state   State
	chunks  [][]byte
	cancel  context.CancelFunc
	done    chan struct{} // closed when the chunk reader goroutine exits
	release sync.Once     // the device is released at most once per session
}

func NewController(source Source, sink Sink, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.New()
	}
	return &Controller{source: source, sink: sink, log: log}
}

// State reports the active session state, StateIdle when none exists.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return StateIdle
	}
	return c.session.state
}

// Start opens the audio source and begins buffering fragments. Device and
// permission failures are classified and returned; the controller stays
// idle in that case.
func (c *Controller) Start(ctx context.Context) error {
	const op = "capture.Controller.Start"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil && c.session.state == StateRecording {
		return utils.E(utils.CodeConflict, op, "a recording is already in progress", nil)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	chunks, err := c.source.Open(runCtx)
	if err != nil {
		cancel()
		return classifyOpenErr(op, err)
	}

	sess := &session{
		state:  StateRecording,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.session = sess

	// Fragments already produced by the device are kept even if Stop lands
	// between delivery and append; the channel closing is the cutoff.
	go func() {
		defer close(sess.done)
		for chunk := range chunks {
			if len(chunk) == 0 {
				continue
			}
			c.mu.Lock()
			sess.chunks = append(sess.chunks, chunk)
			c.mu.Unlock()
		}
	}()

	c.log.Debug("capture started")
	return nil
}

// Stop finalizes the active recording: the device is released exactly once,
// buffered fragments are concatenated into a single payload, and the payload
// is emitted to the sink. Calling Stop when nothing is recording is a no-op.
func (c *Controller) Stop(ctx context.Context) {
	sess := c.detach()
	if sess == nil {
		return
	}

	c.releaseDevice(sess)
	<-sess.done

	c.mu.Lock()
	var size int
	for _, chunk := range sess.chunks {
		size += len(chunk)
	}
	final := make([]byte, 0, size)
	for _, chunk := range sess.chunks {
		final = append(final, chunk...)
	}
	sess.chunks = nil
	c.mu.Unlock()

	c.log.WithField("bytes", len(final)).Debug("capture stopped")

	if c.sink != nil {
		c.sink.AudioFinalized(ctx, final)
	}
}

// abort releases the device and discards the session without emitting
// anything.
func (c *Controller) abort() {
	sess := c.detach()
	if sess == nil {
		return
	}
	c.releaseDevice(sess)
	<-sess.done
}

// detach takes the active recording session out of the controller, marking
// it stopped. The next recording needs a fresh Start.
func (c *Controller) detach() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess := c.session
	if sess == nil || sess.state != StateRecording {
		return nil
	}
	sess.state = StateStopped
	c.session = nil
	return sess
}

// releaseDevice runs outside the state lock: the source keeps delivering
// buffered chunks until its channel closes, and closing it may block on the
// reader goroutine.
func (c *Controller) releaseDevice(sess *session) {
	sess.cancel()
	sess.release.Do(func() {
		if err := c.source.Close(); err != nil {
			c.log.WithError(err).Warn("audio source close failed")
		}
	})
}

func classifyOpenErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return utils.E(utils.CodePermissionDenied, op, "microphone access was denied", err)
	case errors.Is(err, ErrDeviceUnavailable):
		return utils.E(utils.CodeDeviceUnavailable, op, "no usable microphone device", err)
	case strings.Contains(strings.ToLower(err.Error()), "permission"):
		return utils.E(utils.CodePermissionDenied, op, "microphone access was denied", err)
	default:
		return utils.E(utils.CodeDeviceUnavailable, op, "could not open the microphone", err)
	}
}
