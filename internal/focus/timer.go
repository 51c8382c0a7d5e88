// Package focus implements the work-session countdown that earns tiles.
//
// Remaining time is always derived from an absolute start timestamp, never
// from counting ticks, so missed or throttled ticks cannot make the timer
// drift. The running state is checkpointed on start so a session survives
// a restart of the process.
package focus

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrRunning is returned by Start when a session is already running.
	ErrRunning = errors.New("focus: session already running")

	// ErrNotRunning is returned by Pause when no session is running.
	ErrNotRunning = errors.New("focus: no session running")
)

// State is the timer state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted // Transient: credit is applied and the timer returns to Idle
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Creditor receives the tile reward when a session completes.
type Creditor interface {
	Credit(n int)
}

// Checkpoint is the persisted record of a running session.
type Checkpoint struct {
	Start    time.Time
	Duration time.Duration
	Running  bool
}

// CheckpointStore persists the running-session checkpoint.
type CheckpointStore interface {
	SaveCheckpoint(cp Checkpoint) error
	LoadCheckpoint() (Checkpoint, bool, error)
	ClearCheckpoint() error
}

// Config holds the session parameters.
type Config struct {
	Duration time.Duration // Length of one work session
	Reward   int           // Tiles credited per completed session
}

// DefaultConfig returns a ten minute session worth five tiles.
func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Minute,
		Reward:   5,
	}
}

// Completion describes a session that just finished.
type Completion struct {
	Start    time.Time
	At       time.Time
	Reward   int
	Sessions int  // Sessions completed including this one
	Away     bool // Finished while the process was not running
}

// Status is returned by every transition.
type Status struct {
	State     State
	Remaining time.Duration
	Completed *Completion // Set only on the call that completed a session
}

// Recovery describes what Recover found in the checkpoint store.
type Recovery int

const (
	RecoveryNone          Recovery = iota
	RecoveryResumed                // Session re-entered Running with its original start
	RecoveryCompletedAway          // Session expired while away and was credited
)

// Timer is the work-session state machine.
type Timer struct {
	cfg      Config
	clock    Clock
	store    CheckpointStore
	creditor Creditor
	logger   *log.Logger

	state      State
	start      time.Time
	length     time.Duration // Length of the running session
	remaining  time.Duration // Valid while idle
	sessions   int
	generation uint64
}

// New creates an idle timer. store and creditor may be nil.
func New(cfg Config, clock Clock, store CheckpointStore, creditor Creditor) *Timer {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultConfig().Duration
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{
		cfg:       cfg,
		clock:     clock,
		store:     store,
		creditor:  creditor,
		logger:    log.New(io.Discard),
		state:     StateIdle,
		remaining: cfg.Duration,
	}
}

// SetLogger sets the logger used for checkpoint failures.
func (t *Timer) SetLogger(l *log.Logger) {
	if l != nil {
		t.logger = l
	}
}

// SetSessions restores the completed-session counter.
func (t *Timer) SetSessions(n int) {
	t.sessions = max(0, n)
}

// Sessions returns the number of completed sessions.
func (t *Timer) Sessions() int { return t.sessions }

// State returns the current state.
func (t *Timer) State() State { return t.state }

// Running reports whether a session is in progress.
func (t *Timer) Running() bool { return t.state == StateRunning }

// Duration returns the configured session length.
func (t *Timer) Duration() time.Duration { return t.cfg.Duration }

// Length returns the length of the running session. A session recovered
// from a checkpoint keeps the length it was started with.
func (t *Timer) Length() time.Duration { return t.length }

// StartedAt returns the anchor of the running session.
func (t *Timer) StartedAt() time.Time { return t.start }

// Generation changes on every start, pause and completion. A scheduled
// tick carrying an older generation is stale and must be dropped.
func (t *Timer) Generation() uint64 { return t.generation }

// Remaining returns the time left in the current or paused session.
func (t *Timer) Remaining() time.Duration {
	if t.state != StateRunning {
		return t.remaining
	}
	return t.derive(t.clock.Now())
}

// derive computes remaining time from the anchor. Elapsed time is counted
// in whole seconds.
func (t *Timer) derive(now time.Time) time.Duration {
	elapsed := max(0, now.Sub(t.start).Truncate(time.Second))
	return max(0, t.length-elapsed)
}

// Start begins a full session anchored at now.
func (t *Timer) Start() (Status, error) {
	if t.state == StateRunning {
		return t.status(), ErrRunning
	}
	t.start = t.clock.Now()
	t.length = t.cfg.Duration
	t.state = StateRunning
	t.generation++
	t.saveCheckpoint()
	return t.status(), nil
}

// Pause stops the running session without credit. The remaining time
// is kept for display only; the next Start begins a fresh session.
func (t *Timer) Pause() (Status, error) {
	if t.state != StateRunning {
		return t.status(), ErrNotRunning
	}
	t.remaining = t.derive(t.clock.Now())
	t.state = StateIdle
	t.generation++
	t.clearCheckpoint()
	return t.status(), nil
}

// Reset drops any session without credit and clears the checkpoint.
func (t *Timer) Reset() {
	t.state = StateIdle
	t.remaining = t.cfg.Duration
	t.generation++
	t.clearCheckpoint()
}

// Tick re-derives the remaining time and completes the session once it
// reaches zero. Ticks while idle are no-ops.
func (t *Timer) Tick() Status {
	if t.state != StateRunning {
		return t.status()
	}
	now := t.clock.Now()
	if t.derive(now) <= 0 {
		return t.complete(now, false)
	}
	return t.status()
}

// Recover inspects the checkpoint store after a restart. An expired
// session completes immediately; an unexpired one resumes with its
// original anchor.
func (t *Timer) Recover() (Recovery, Status) {
	if t.state == StateRunning || t.store == nil {
		return RecoveryNone, t.status()
	}

	cp, ok, err := t.store.LoadCheckpoint()
	if err != nil {
		t.logger.Warn("discarding unreadable session checkpoint", "error", err)
		t.clearCheckpoint()
		return RecoveryNone, t.status()
	}
	if !ok || !cp.Running {
		return RecoveryNone, t.status()
	}

	t.length = t.cfg.Duration
	if cp.Duration > 0 {
		t.length = cp.Duration
	}
	t.start = cp.Start
	t.state = StateRunning
	t.generation++

	now := t.clock.Now()
	if t.derive(now) <= 0 {
		return RecoveryCompletedAway, t.complete(now, true)
	}
	return RecoveryResumed, t.status()
}

// complete credits the reward and returns the timer to Idle.
func (t *Timer) complete(now time.Time, away bool) Status {
	c := &Completion{
		Start:  t.start,
		At:     now,
		Reward: t.cfg.Reward,
		Away:   away,
	}

	t.state = StateIdle
	t.generation++
	t.sessions++
	t.remaining = t.cfg.Duration
	c.Sessions = t.sessions

	if t.creditor != nil {
		t.creditor.Credit(t.cfg.Reward)
	}
	t.clearCheckpoint()

	st := t.status()
	st.Completed = c
	return st
}

func (t *Timer) status() Status {
	return Status{State: t.state, Remaining: t.Remaining()}
}

func (t *Timer) saveCheckpoint() {
	if t.store == nil {
		return
	}
	cp := Checkpoint{Start: t.start, Duration: t.length, Running: true}
	if err := t.store.SaveCheckpoint(cp); err != nil {
		t.logger.Warn("could not save session checkpoint", "error", err)
	}
}

func (t *Timer) clearCheckpoint() {
	if t.store == nil {
		return
	}
	if err := t.store.ClearCheckpoint(); err != nil {
		t.logger.Warn("could not clear session checkpoint", "error", err)
	}
}

// FormatRemaining renders a duration as MM:SS.
func FormatRemaining(d time.Duration) string {
	secs := int(max(0, d).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
