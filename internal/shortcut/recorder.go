package shortcut

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a recording session.
const DefaultTimeout = 2 * time.Second

// Phase is the recorder's position in the capture cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRecording
	PhaseRejected
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseRejected:
		return "rejected"
	case PhaseCommitted:
		return "committed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Reason explains a rejected capture.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonIncomplete
	ReasonReserved
	ReasonAmbiguous
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonIncomplete:
		return "incomplete"
	case ReasonReserved:
		return "reserved"
	case ReasonAmbiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

var (
	ErrReserved     = errors.New("shortcut is reserved")
	ErrNotRecording = errors.New("recorder is not recording")
	ErrTimedOut     = errors.New("recording session timed out")
)

// RejectionError is returned by Capture for a recoverable rejection. It
// unwraps to ErrIncomplete, ErrReserved or ErrAmbiguous.
type RejectionError struct {
	Reason  Reason
	Binding Binding
}

func (e *RejectionError) Error() string {
	if e.Binding.IsZero() {
		return e.Unwrap().Error()
	}
	return fmt.Sprintf("%s: %s", e.Binding, e.Unwrap())
}

func (e *RejectionError) Unwrap() error {
	switch e.Reason {
	case ReasonReserved:
		return ErrReserved
	case ReasonAmbiguous:
		return ErrAmbiguous
	default:
		return ErrIncomplete
	}
}

// State is a snapshot of the recorder. Current is the last committed
// binding and is never cleared by a failed or cancelled session.
type State struct {
	Phase   Phase
	Current Binding
	Pending Binding
	Reason  Reason
	Session string
}

// RecordingIndicator is shown while a capture is in progress.
const RecordingIndicator = "..."

// Display is the text the settings window shows for this state.
func (s State) Display() string {
	switch s.Phase {
	case PhaseRecording:
		if s.Reason != ReasonNone {
			return rejectionText(s.Reason, s.Pending)
		}
		return RecordingIndicator
	case PhaseRejected:
		return rejectionText(s.Reason, s.Pending)
	default:
		if s.Current.IsZero() {
			return "未設定 / Not set"
		}
		return s.Current.Label()
	}
}

func rejectionText(r Reason, pending Binding) string {
	switch r {
	case ReasonReserved:
		return pending.Label() + " は使用できません / is reserved"
	case ReasonAmbiguous:
		return "キーは1つだけ / Use a single key"
	default:
		return "修飾キー以外を含めてください / Add a non-modifier key"
	}
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler schedules the session timeout.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler runs callbacks on time.AfterFunc goroutines.
func RealScheduler() Scheduler { return realScheduler{} }

type Option func(*Recorder)

func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(r *Recorder) {
		if s != nil {
			r.scheduler = s
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithObserver registers fn to receive every state transition. fn runs
// without the recorder lock held and may call back into the recorder.
func WithObserver(fn func(State)) Option {
	return func(r *Recorder) { r.observer = fn }
}

// Recorder is the shortcut capture state machine:
//
//	Idle|Committed --Start--> Recording
//	Recording --Capture(valid)--> Committed
//	Recording --Capture(invalid)--> Rejected --> Recording
//	Recording --Cancel|timeout--> Idle (Current unchanged)
//
// At most one timeout is outstanding; Start replaces it.
type Recorder struct {
	mu        sync.Mutex
	reserved  ReservedSet
	timeout   time.Duration
	scheduler Scheduler
	now       func() time.Time
	observer  func(State)

	state    State
	deadline time.Time
	timer    Timer
	closed   bool
}

// NewRecorder returns an Idle recorder whose fallback binding is current.
func NewRecorder(current Binding, reserved ReservedSet, opts ...Option) *Recorder {
	r := &Recorder{
		reserved:  reserved,
		timeout:   DefaultTimeout,
		scheduler: realScheduler{},
		now:       time.Now,
		state:     State{Phase: PhaseIdle, Current: current},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current returns the last committed binding.
func (r *Recorder) Current() Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Current
}

func (r *Recorder) Timeout() time.Duration { return r.timeout }

// Start opens a new recording session, replacing any session in progress.
func (r *Recorder) Start() State {
	r.mu.Lock()
	if r.closed {
		st := r.state
		r.mu.Unlock()
		return st
	}
	r.stopTimerLocked()
	session := uuid.NewString()
	r.state = State{Phase: PhaseRecording, Current: r.state.Current, Session: session}
	r.deadline = r.now().Add(r.timeout)
	r.timer = r.scheduler.AfterFunc(r.timeout, func() { r.expire(session) })
	st := r.state
	r.mu.Unlock()

	r.emit(st)
	return st
}

// Capture offers a key combination to the current session. A valid,
// unreserved combination commits; otherwise a *RejectionError is returned
// and the session keeps recording.
func (r *Recorder) Capture(tokens ...string) (State, error) {
	r.mu.Lock()
	if r.state.Phase != PhaseRecording {
		st := r.state
		r.mu.Unlock()
		return st, ErrNotRecording
	}
	if !r.now().Before(r.deadline) {
		st := r.resetLocked()
		r.mu.Unlock()
		r.emit(st)
		return st, ErrTimedOut
	}

	b, err := FromTokens(tokens)
	reason := ReasonNone
	switch {
	case errors.Is(err, ErrAmbiguous):
		reason = ReasonAmbiguous
	case err != nil:
		reason = ReasonIncomplete
	case r.reserved.Contains(b):
		reason = ReasonReserved
	}

	if reason != ReasonNone {
		session := r.state.Session
		rejected := State{Phase: PhaseRejected, Current: r.state.Current, Pending: b, Reason: reason, Session: session}
		r.state = rejected
		r.state.Phase = PhaseRecording
		resumed := r.state
		r.mu.Unlock()

		r.emit(rejected)
		r.emit(resumed)
		return resumed, &RejectionError{Reason: reason, Binding: b}
	}

	r.stopTimerLocked()
	r.state = State{Phase: PhaseCommitted, Current: b, Session: r.state.Session}
	st := r.state
	r.mu.Unlock()

	r.emit(st)
	return st, nil
}

// Cancel abandons the session and restores the previous binding. It is a
// no-op outside Recording.
func (r *Recorder) Cancel() State {
	r.mu.Lock()
	if r.state.Phase != PhaseRecording {
		st := r.state
		r.mu.Unlock()
		return st
	}
	st := r.resetLocked()
	r.mu.Unlock()

	r.emit(st)
	return st
}

// Close stops any pending timeout, resets to Idle and detaches the
// observer. The recorder ignores Start after Close.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
	r.state = State{Phase: PhaseIdle, Current: r.state.Current}
	r.observer = nil
	r.closed = true
}

func (r *Recorder) expire(session string) {
	r.mu.Lock()
	if r.state.Phase != PhaseRecording || r.state.Session != session {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	st := r.resetLocked()
	r.mu.Unlock()

	r.emit(st)
}

func (r *Recorder) resetLocked() State {
	r.stopTimerLocked()
	r.state = State{Phase: PhaseIdle, Current: r.state.Current}
	return r.state
}

func (r *Recorder) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Recorder) emit(st State) {
	r.mu.Lock()
	fn := r.observer
	r.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
