package focus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type memCheckpoints struct {
	cp      *Checkpoint
	saves   int
	clears  int
	loadErr error
}

func (m *memCheckpoints) SaveCheckpoint(cp Checkpoint) error {
	m.cp = &cp
	m.saves++
	return nil
}

func (m *memCheckpoints) LoadCheckpoint() (Checkpoint, bool, error) {
	if m.loadErr != nil {
		return Checkpoint{}, false, m.loadErr
	}
	if m.cp == nil {
		return Checkpoint{}, false, nil
	}
	return *m.cp, true, nil
}

func (m *memCheckpoints) ClearCheckpoint() error {
	m.cp = nil
	m.clears++
	return nil
}

type countingCreditor struct{ total, calls int }

func (c *countingCreditor) Credit(n int) {
	c.total += n
	c.calls++
}

func newTestTimer() (*Timer, *fakeClock, *memCheckpoints, *countingCreditor) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	store := &memCheckpoints{}
	cred := &countingCreditor{}
	return New(DefaultConfig(), clock, store, cred), clock, store, cred
}

func TestTimerStartPersistsCheckpoint(t *testing.T) {
	tm, clock, store, _ := newTestTimer()

	st, err := tm.Start()
	require.NoError(t, err)
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, 10*time.Minute, st.Remaining)

	require.NotNil(t, store.cp)
	assert.True(t, store.cp.Running)
	assert.Equal(t, clock.now, store.cp.Start)
	assert.Equal(t, 10*time.Minute, store.cp.Duration)

	_, err = tm.Start()
	assert.ErrorIs(t, err, ErrRunning)
}

func TestTimerDerivesRemainingFromAnchor(t *testing.T) {
	tm, clock, _, cred := newTestTimer()
	_, err := tm.Start()
	require.NoError(t, err)

	// No ticks delivered at all while the clock moves
	clock.Advance(4*time.Minute + 30*time.Second + 400*time.Millisecond)
	assert.Equal(t, 5*time.Minute+30*time.Second, tm.Remaining())

	st := tm.Tick()
	assert.Equal(t, StateRunning, st.State)
	assert.Nil(t, st.Completed)
	assert.Zero(t, cred.calls)
}

func TestTimerCompletesExactlyOnce(t *testing.T) {
	tm, clock, store, cred := newTestTimer()
	_, err := tm.Start()
	require.NoError(t, err)
	gen := tm.Generation()

	clock.Advance(25 * time.Minute)
	st := tm.Tick()
	require.NotNil(t, st.Completed)
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 10*time.Minute, st.Remaining)
	assert.Equal(t, 1, st.Completed.Sessions)
	assert.False(t, st.Completed.Away)
	assert.NotEqual(t, gen, tm.Generation())

	// Further ticks after completion do nothing
	st = tm.Tick()
	assert.Nil(t, st.Completed)

	assert.Equal(t, 1, cred.calls)
	assert.Equal(t, 5, cred.total)
	assert.Equal(t, 1, tm.Sessions())
	assert.Nil(t, store.cp)
}

func TestTimerPauseKeepsRemaining(t *testing.T) {
	tm, clock, store, cred := newTestTimer()
	_, err := tm.Start()
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	st, err := tm.Pause()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 7*time.Minute, st.Remaining)
	assert.Nil(t, store.cp)
	assert.Zero(t, cred.calls)

	// Time passing while paused does not count
	clock.Advance(time.Hour)
	assert.Equal(t, 7*time.Minute, tm.Remaining())

	_, err = tm.Pause()
	assert.ErrorIs(t, err, ErrNotRunning)

	// Starting again begins a full session anchored at now
	st, err = tm.Start()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, st.Remaining)
	assert.Equal(t, clock.now, tm.StartedAt())
	require.NotNil(t, store.cp)
	assert.Equal(t, clock.now, store.cp.Start)
	assert.Equal(t, 10*time.Minute, store.cp.Duration)

	clock.Advance(7 * time.Minute)
	st = tm.Tick()
	assert.Nil(t, st.Completed)
	assert.Equal(t, 3*time.Minute, st.Remaining)
}

func TestTimerPauseAfterDeadlineDoesNotCredit(t *testing.T) {
	tm, clock, store, cred := newTestTimer()
	tm.SetSessions(2)
	_, err := tm.Start()
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	st, err := tm.Pause()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st.State)
	assert.Nil(t, st.Completed)
	assert.Zero(t, st.Remaining)
	assert.Zero(t, cred.calls)
	assert.Equal(t, 2, tm.Sessions())
	assert.Nil(t, store.cp)

	st, err = tm.Start()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, st.Remaining)
}

func TestTimerRecoverResumesWithOriginalAnchor(t *testing.T) {
	tm, clock, store, _ := newTestTimer()
	_, err := tm.Start()
	require.NoError(t, err)
	anchor := tm.StartedAt()

	// Simulate a reload: a new timer reads the same checkpoint store
	clock.Advance(4 * time.Minute)
	cred := &countingCreditor{}
	reloaded := New(DefaultConfig(), clock, store, cred)

	rec, st := reloaded.Recover()
	assert.Equal(t, RecoveryResumed, rec)
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, anchor, reloaded.StartedAt())
	assert.Equal(t, 6*time.Minute, st.Remaining)
	assert.Zero(t, cred.calls)
}

func TestTimerRecoverCompletedWhileAway(t *testing.T) {
	for _, away := range []time.Duration{10 * time.Minute, 11 * time.Minute, 72 * time.Hour} {
		t.Run(away.String(), func(t *testing.T) {
			tm, clock, store, _ := newTestTimer()
			_, err := tm.Start()
			require.NoError(t, err)

			clock.Advance(away)
			cred := &countingCreditor{}
			reloaded := New(DefaultConfig(), clock, store, cred)
			reloaded.SetSessions(3)

			rec, st := reloaded.Recover()
			assert.Equal(t, RecoveryCompletedAway, rec)
			assert.Equal(t, StateIdle, st.State)
			require.NotNil(t, st.Completed)
			assert.True(t, st.Completed.Away)
			assert.Equal(t, 1, cred.calls)
			assert.Equal(t, 5, cred.total)
			assert.Equal(t, 4, reloaded.Sessions())
			assert.Nil(t, store.cp)

			// A second recovery finds nothing
			rec, _ = reloaded.Recover()
			assert.Equal(t, RecoveryNone, rec)
			assert.Equal(t, 1, cred.calls)
		})
	}
}

func TestTimerRecoverUsesPersistedDuration(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := &memCheckpoints{cp: &Checkpoint{
		Start:    clock.now.Add(-time.Minute),
		Duration: 2 * time.Minute,
		Running:  true,
	}}
	tm := New(DefaultConfig(), clock, store, nil)

	rec, st := tm.Recover()
	assert.Equal(t, RecoveryResumed, rec)
	assert.Equal(t, time.Minute, st.Remaining)
	assert.Equal(t, 2*time.Minute, tm.Length())
	assert.Equal(t, 10*time.Minute, tm.Duration())

	// The recovered session finishes on its own length
	clock.Advance(time.Minute)
	st = tm.Tick()
	require.NotNil(t, st.Completed)
	assert.Equal(t, 10*time.Minute, st.Remaining)

	// Later sessions use the configured length again
	st, err := tm.Start()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, st.Remaining)
	assert.Equal(t, 10*time.Minute, store.cp.Duration)
}

func TestTimerRecoverDiscardsUnreadableCheckpoint(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := &memCheckpoints{loadErr: errors.New("corrupt")}
	tm := New(DefaultConfig(), clock, store, nil)

	rec, st := tm.Recover()
	assert.Equal(t, RecoveryNone, rec)
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 1, store.clears)
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{10 * time.Minute, "10:00"},
		{9*time.Minute + 5*time.Second, "09:05"},
		{0, "00:00"},
		{-time.Second, "00:00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatRemaining(tc.in))
	}
}
