package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shamsaravaiah/LYSYN/internal/capture"
	"github.com/shamsaravaiah/LYSYN/internal/models"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

// Phase of the visit pipeline.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseRecording       Phase = "recording"
	PhaseTranscribing    Phase = "transcribing"
	PhaseTranscriptReady Phase = "transcript_ready"
	PhaseSummarizing     Phase = "summarizing"
	PhaseNoteReady       Phase = "note_ready"
	PhaseError           Phase = "error"
)

// PipelineState is the orchestrator's externally visible state. One snapshot
// per transition is broadcast to subscribers.
type PipelineState struct {
	VisitID    string           `json:"visit_id"`
	Phase      Phase            `json:"phase"`
	Transcript string           `json:"transcript"`
	Note       *models.CareNote `json:"note"`
	LastError  string           `json:"last_error,omitempty"`
}

func (s PipelineState) IsRecording() bool    { return s.Phase == PhaseRecording }
func (s PipelineState) IsTranscribing() bool { return s.Phase == PhaseTranscribing }
func (s PipelineState) IsSummarizing() bool  { return s.Phase == PhaseSummarizing }

// busy reports whether a stage is in flight; at most one ever is.
func (s PipelineState) busy() bool {
	return s.IsRecording() || s.IsTranscribing() || s.IsSummarizing()
}

// Pipeline sequences capture, transcription and summarization for one visit
// at a time. Control flow is strictly linear and user-gated: stopping the
// recording hands the audio to transcription automatically, but a summary
// is only produced on explicit request.
type Pipeline struct {
	capture     *capture.Controller
	transcriber TranscriptionService
	summarizer  SummaryService
	log         *logrus.Logger

	mu       sync.Mutex
	state    PipelineState
	stageErr error // outcome of the transcription triggered by Stop

	subMu   sync.Mutex
	subs    map[int]chan PipelineState
	nextSub int
}

// NewPipeline wires the pipeline as the capture sink, so a finished
// recording always flows into transcription.
func NewPipeline(source capture.Source, transcriber TranscriptionService, summarizer SummaryService, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
	}
	p := &Pipeline{
		transcriber: transcriber,
		summarizer:  summarizer,
		log:         log,
		state:       PipelineState{Phase: PhaseIdle},
		subs:        make(map[int]chan PipelineState),
	}
	p.capture = capture.NewController(source, capture.SinkFunc(p.audioFinalized), log)
	return p
}

// State returns a snapshot of the current pipeline state.
func (p *Pipeline) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins a new visit recording. Prior transcript and note are
// discarded: each recording is an independent unit of work. Starting while
// any stage is in flight is rejected, never queued.
func (p *Pipeline) Start(ctx context.Context) (PipelineState, error) {
	const op = "Pipeline.Start"

	// The recording phase is claimed in the same critical section as the
	// busy check, so no other stage can slip in while the device opens.
	p.mu.Lock()
	if p.state.busy() {
		st := p.state
		p.mu.Unlock()
		return st, utils.E(utils.CodeConflict, op, "the pipeline is busy", nil)
	}
	p.state = PipelineState{VisitID: uuid.NewString(), Phase: PhaseRecording}
	st := p.state
	p.mu.Unlock()
	p.broadcast(st)

	if err := p.capture.Start(ctx); err != nil {
		// device never opened; stay restartable in Idle
		st := p.transition(func(s *PipelineState) {
			s.Phase = PhaseIdle
			s.LastError = utils.SafeMessage(err)
		})
		return st, err
	}

	p.log.WithField("visit_id", st.VisitID).Info("recording started")
	return st, nil
}

// Stop ends the active recording and blocks until the automatic
// transcription hand-off finishes. Stopping when nothing is recording is a
// no-op. The returned error is the transcription outcome.
func (p *Pipeline) Stop(ctx context.Context) (PipelineState, error) {
	p.mu.Lock()
	if p.state.Phase != PhaseRecording {
		st := p.state
		p.mu.Unlock()
		return st, nil
	}
	p.stageErr = nil
	p.mu.Unlock()

	// releases the device, then feeds audioFinalized synchronously
	p.capture.Stop(ctx)

	p.mu.Lock()
	st, err := p.state, p.stageErr
	p.stageErr = nil
	p.mu.Unlock()
	return st, err
}

// audioFinalized is the capture sink: it runs the transcription stage for
// the payload of the just-stopped recording.
func (p *Pipeline) audioFinalized(ctx context.Context, audio []byte) {
	p.transition(func(s *PipelineState) {
		s.Phase = PhaseTranscribing
		s.LastError = ""
	})

	text, err := p.transcriber.Transcribe(ctx, audio)

	p.mu.Lock()
	if err != nil {
		p.stageErr = err
		p.mu.Unlock()
		p.transition(func(s *PipelineState) {
			s.Phase = PhaseError
			s.Transcript = ""
			s.LastError = utils.SafeMessage(err)
		})
		return
	}
	p.mu.Unlock()

	p.transition(func(s *PipelineState) {
		s.Phase = PhaseTranscriptReady
		s.Transcript = text
	})
}

// Summarize runs the summarization stage on the current transcript. It is
// user-gated: never triggered automatically. An empty transcript is
// rejected locally and leaves the phase untouched. After a failed attempt
// the user may re-request with the same transcript.
func (p *Pipeline) Summarize(ctx context.Context) (PipelineState, error) {
	const op = "Pipeline.Summarize"

	// Claim the summarizing phase atomically with the busy check; a Start
	// arriving between check and claim must see the pipeline as busy.
	p.mu.Lock()
	if p.state.busy() {
		st := p.state
		p.mu.Unlock()
		return st, utils.E(utils.CodeConflict, op, "the pipeline is busy", nil)
	}
	if p.state.Transcript == "" {
		p.state.LastError = "no transcript to summarize"
		st := p.state
		p.mu.Unlock()
		p.broadcast(st)
		return st, utils.E(utils.CodeInvalidInput, op, "no transcript to summarize", nil)
	}
	transcript := p.state.Transcript
	p.state.Phase = PhaseSummarizing
	p.state.Note = nil
	p.state.LastError = ""
	claimed := p.state
	p.mu.Unlock()
	p.broadcast(claimed)

	note, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		st := p.transition(func(s *PipelineState) {
			s.Phase = PhaseError
			s.Note = nil
			s.LastError = utils.SafeMessage(err)
		})
		return st, err
	}

	st := p.transition(func(s *PipelineState) {
		s.Phase = PhaseNoteReady
		s.Note = note
	})
	p.log.WithField("visit_id", st.VisitID).Info("care note ready")
	return st, nil
}

// transition applies fn under the lock and broadcasts the new snapshot.
func (p *Pipeline) transition(fn func(*PipelineState)) PipelineState {
	p.mu.Lock()
	fn(&p.state)
	st := p.state
	p.mu.Unlock()
	p.broadcast(st)
	return st
}

// Subscribe registers a listener for state snapshots. Slow subscribers miss
// intermediate snapshots instead of blocking a transition.
func (p *Pipeline) Subscribe() (<-chan PipelineState, func()) {
	p.subMu.Lock()
	id := p.nextSub
	p.nextSub++
	ch := make(chan PipelineState, 8)
	p.subs[id] = ch
	p.subMu.Unlock()

	cancel := func() {
		p.subMu.Lock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
		p.subMu.Unlock()
	}
	return ch, cancel
}

func (p *Pipeline) broadcast(st PipelineState) {
	p.subMu.Lock()
	for _, ch := range p.subs {
		select {
		case ch <- st:
		default:
		}
	}
	p.subMu.Unlock()
}
