// Package timer implements the focus countdown state machine. It owns
// remaining-time counting and start/stop transitions; persistence happens
// through the Recorder collaborator on the transition edges.
package timer

import (
	"context"
	"errors"
	"fmt"
)

// Recorder persists the lifecycle of a focus session. Implemented by the
// HTTP API client; faked in tests.
type Recorder interface {
	// CreateTimerSession records a started session and returns its id.
	CreateTimerSession(ctx context.Context, draft SessionDraft) (string, error)
	// CompleteTimerSession marks a session finished. Idempotent server-side.
	CompleteTimerSession(ctx context.Context, id string) error
}

type SessionDraft struct {
	DurationMinutes int
	Notes           string
}

type State int

const (
	StateIdle State = iota
	StateRunning
)

// Outcome records how the most recent run ended. The machine itself rests
// in Idle between runs.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFinished
	OutcomeStopped
)

const (
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 300
	DefaultDurationMinutes = 25
)

var (
	ErrNotIdle            = errors.New("timer: countdown already running")
	ErrDurationOutOfRange = fmt.Errorf("timer: duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes)
)

type Countdown struct {
	rec        Recorder
	state      State
	minutes    int
	remaining  int // seconds
	sessionID  string
	generation int
	outcome    Outcome
	notes      string
}

func New(rec Recorder) *Countdown {
	return &Countdown{rec: rec, minutes: DefaultDurationMinutes}
}

// Configure sets the requested length. Only allowed while idle.
func (t *Countdown) Configure(minutes int) error {
	if t.state != StateIdle {
		return ErrNotIdle
	}
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return ErrDurationOutOfRange
	}
	t.minutes = minutes
	return nil
}

// SetNotes attaches a note to the next started session.
func (t *Countdown) SetNotes(notes string) {
	t.notes = notes
}

// Start creates the backing session and begins the countdown. If the
// recorder fails, the machine stays idle: no local countdown may run
// without a persisted session.
func (t *Countdown) Start(ctx context.Context) error {
	if t.state != StateIdle {
		return ErrNotIdle
	}
	id, err := t.rec.CreateTimerSession(ctx, SessionDraft{DurationMinutes: t.minutes, Notes: t.notes})
	if err != nil {
		return err
	}
	t.sessionID = id
	t.remaining = t.minutes * 60
	t.state = StateRunning
	t.generation++
	t.outcome = OutcomeNone
	return nil
}

// Tick advances the countdown by one second. Outside Running it does
// nothing, so stale ticks from a previous run are harmless. When the
// countdown reaches zero the session is marked completed and the machine
// returns to Idle; a failed completion update is reported but does not
// keep the countdown alive.
func (t *Countdown) Tick(ctx context.Context) (bool, error) {
	if t.state != StateRunning {
		return false, nil
	}
	t.remaining--
	if t.remaining > 0 {
		return false, nil
	}
	t.remaining = 0
	t.outcome = OutcomeFinished
	t.state = StateIdle
	return true, t.rec.CompleteTimerSession(ctx, t.sessionID)
}

// Stop ends the countdown early with the same completion side effect as a
// natural finish. A stop while idle is a no-op.
func (t *Countdown) Stop(ctx context.Context) error {
	if t.state != StateRunning {
		return nil
	}
	t.outcome = OutcomeStopped
	t.state = StateIdle
	return t.rec.CompleteTimerSession(ctx, t.sessionID)
}

func (t *Countdown) State() State      { return t.state }
func (t *Countdown) Outcome() Outcome  { return t.outcome }
func (t *Countdown) Minutes() int      { return t.minutes }
func (t *Countdown) Remaining() int    { return t.remaining }
func (t *Countdown) SessionID() string { return t.sessionID }

// Generation increments on every Start. Tick callbacks tagged with an
// older generation belong to a replaced countdown and must be dropped.
func (t *Countdown) Generation() int { return t.generation }

// FormatRemaining renders the remaining time as HH:MM:SS when at least an
// hour remains, MM:SS otherwise.
func (t *Countdown) FormatRemaining() string {
	return FormatSeconds(t.remaining)
}

func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
