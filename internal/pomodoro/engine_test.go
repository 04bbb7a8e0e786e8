package pomodoro

import (
	"math/rand"
	"testing"
	"time"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *testutil.FakeScheduler) {
	sched := testutil.NewFakeScheduler()
	return New(sched), sched
}

func TestEngine_InitialState(t *testing.T) {
	e, _ := newTestEngine()

	assert.Equal(t, State{
		Session:   SessionWork,
		Status:    StatusIdle,
		TimeLeft:  1500,
		TotalTime: 1500,
	}, e.State())
}

func TestEngine_FullCycle(t *testing.T) {
	// Setup
	e, sched := newTestEngine()

	// Execute
	e.Start()
	sched.Advance(1500 * time.Second)

	// Assert
	s := e.State()
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, SessionBreak, s.Session)
	assert.Equal(t, 300, s.TimeLeft)
	assert.Equal(t, 300, s.TotalTime)
	assert.Equal(t, 1, s.CompletedSessions)

	sched.Advance(time.Second)
	assert.Equal(t, StatusIdle, e.State().Status)
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_PausePreservesTime(t *testing.T) {
	e, sched := newTestEngine()

	e.Start()
	sched.Advance(3 * time.Second)
	e.Pause()
	sched.Advance(5 * time.Second)
	assert.Equal(t, 1497, e.State().TimeLeft)

	e.Start()
	sched.Advance(time.Second)

	assert.Equal(t, 1496, e.State().TimeLeft)
	assert.Equal(t, StatusRunning, e.State().Status)
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	e, sched := newTestEngine()

	e.Start()
	e.Start()
	e.Start()
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(2 * time.Second)
	assert.Equal(t, 1498, e.State().TimeLeft)
}

func TestEngine_PauseWhenNotRunningIsNoop(t *testing.T) {
	e, _ := newTestEngine()

	e.Pause()

	assert.Equal(t, InitialState(), e.State())
}

func TestEngine_Skip(t *testing.T) {
	tests := []struct {
		name          string
		from          Session
		wantSession   Session
		wantTimeLeft  int
		wantCompleted int
	}{
		{"leaving work counts", SessionWork, SessionBreak, 300, 1},
		{"leaving break does not count", SessionBreak, SessionWork, 1500, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, sched := newTestEngine()
			if tt.from == SessionBreak {
				e.Skip() // work -> break, completed = 1
			}
			e.Start()
			sched.Advance(10 * time.Second)

			e.Skip()

			s := e.State()
			assert.Equal(t, tt.wantSession, s.Session)
			assert.Equal(t, tt.wantTimeLeft, s.TimeLeft)
			assert.Equal(t, tt.wantTimeLeft, s.TotalTime)
			assert.Equal(t, tt.wantCompleted, s.CompletedSessions)
			assert.Equal(t, StatusIdle, s.Status)
			assert.Equal(t, 0, sched.Pending())
		})
	}
}

func TestEngine_SkipAndExpiryAgree(t *testing.T) {
	skipped, _ := newTestEngine()
	skipped.Skip()

	expired, sched := newTestEngine()
	expired.Start()
	sched.Advance(1500 * time.Second)

	a, b := skipped.State(), expired.State()
	assert.Equal(t, a.Session, b.Session)
	assert.Equal(t, a.TotalTime, b.TotalTime)
	assert.Equal(t, a.TimeLeft, b.TimeLeft)
	assert.Equal(t, a.CompletedSessions, b.CompletedSessions)
	assert.Equal(t, StatusIdle, a.Status)
	assert.Equal(t, StatusCompleted, b.Status)
}

func TestEngine_BreakExpiryDoesNotCount(t *testing.T) {
	e, sched := newTestEngine()
	e.Skip()
	e.Start()

	sched.Advance(300 * time.Second)

	s := e.State()
	assert.Equal(t, SessionWork, s.Session)
	assert.Equal(t, 1500, s.TimeLeft)
	assert.Equal(t, 1, s.CompletedSessions)
	assert.Equal(t, StatusCompleted, s.Status)
}

func TestEngine_Stop(t *testing.T) {
	e, sched := newTestEngine()
	e.Skip()
	e.Start()
	sched.Advance(42 * time.Second)

	e.Stop()

	assert.Equal(t, State{
		Session:           SessionWork,
		Status:            StatusIdle,
		TimeLeft:          1500,
		TotalTime:         1500,
		CompletedSessions: 1,
	}, e.State())
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_ResetFromAnyState(t *testing.T) {
	actions := []func(*Engine, *testutil.FakeScheduler){
		func(e *Engine, _ *testutil.FakeScheduler) { e.Start() },
		func(e *Engine, _ *testutil.FakeScheduler) { e.Pause() },
		func(e *Engine, _ *testutil.FakeScheduler) { e.Skip() },
		func(e *Engine, _ *testutil.FakeScheduler) { e.Stop() },
		func(_ *Engine, s *testutil.FakeScheduler) { s.Advance(7 * time.Second) },
		func(_ *Engine, s *testutil.FakeScheduler) { s.Advance(1500 * time.Second) },
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		e, sched := newTestEngine()
		for j := 0; j < 8; j++ {
			actions[rng.Intn(len(actions))](e, sched)
		}

		e.Reset()

		require.Equal(t, InitialState(), e.State(), "iteration %d", i)
		require.Equal(t, 0, sched.Pending(), "iteration %d", i)
	}
}

func TestEngine_TimeOnlyMovesWhileRunning(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e, sched := newTestEngine()

	for i := 0; i < 200; i++ {
		if rng.Intn(2) == 0 {
			e.Start()
		} else {
			e.Pause()
		}
		before := e.State()
		sched.Advance(time.Duration(rng.Intn(3)+1) * time.Second)
		after := e.State()

		if before.Status == StatusPaused {
			assert.Equal(t, before.TimeLeft, after.TimeLeft)
		}
		if before.Session == after.Session {
			assert.LessOrEqual(t, after.TimeLeft, before.TimeLeft)
		}
	}
}

func TestEngine_NoGhostTickAfterCancel(t *testing.T) {
	// A tick that fires after its generation was invalidated must not mutate state.
	sched := &capturingScheduler{}
	e := New(sched)

	e.Start()
	require.Len(t, sched.fns, 1)
	e.Pause()

	sched.fns[0]()

	assert.Equal(t, 1500, e.State().TimeLeft)
	assert.Equal(t, StatusPaused, e.State().Status)
}

func TestEngine_StartFromCompletedCancelsAutoAdvance(t *testing.T) {
	e, sched := newTestEngine()
	e.Start()
	sched.Advance(1500 * time.Second)
	require.Equal(t, StatusCompleted, e.State().Status)

	e.Start()
	sched.Advance(time.Second)

	s := e.State()
	assert.Equal(t, StatusRunning, s.Status)
	assert.Equal(t, 299, s.TimeLeft)
}

func TestEngine_Subscribe(t *testing.T) {
	e, sched := newTestEngine()
	events := e.Subscribe(4000)

	e.Start()
	sched.Advance(1500 * time.Second)
	e.Close()

	var types []EventType
	var finished Session
	for ev := range events {
		types = append(types, ev.Type)
		if ev.Type == EventSessionComplete {
			finished = ev.Finished
		}
	}
	require.NotEmpty(t, types)
	assert.Equal(t, EventStateChange, types[0])
	assert.Equal(t, EventSessionComplete, types[len(types)-1])
	assert.Equal(t, SessionWork, finished)
}

func TestEngine_CloseCancelsPending(t *testing.T) {
	e, sched := newTestEngine()
	e.Start()

	e.Close()
	sched.Advance(5 * time.Second)
	e.Start()

	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, 1500, e.State().TimeLeft)
}

func TestState_ClockAndProgress(t *testing.T) {
	s := State{TimeLeft: 1499, TotalTime: 1500}
	assert.Equal(t, "24:59", s.Clock())
	assert.InDelta(t, 1.0/1500, s.Progress(), 1e-9)
	assert.Equal(t, 0.0, State{}.Progress())
}

// capturingScheduler records callbacks without ever running them.
type capturingScheduler struct {
	fns []func()
}

func (c *capturingScheduler) Schedule(_ time.Duration, fn func()) domain.CancelFunc {
	c.fns = append(c.fns, fn)
	return func() {}
}
