// Package pomodoro implements the work/break countdown engine.
package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskline/internal/domain"
)

// Session durations in seconds.
const (
	WorkDuration  = 1500
	BreakDuration = 300
)

// Scheduling intervals.
const (
	TickInterval     = time.Second
	AutoAdvanceDelay = time.Second
)

// Session is the phase of the pomodoro cycle.
type Session string

const (
	SessionWork  Session = "work"
	SessionBreak Session = "break"
)

// Duration returns the nominal session length in seconds.
func (s Session) Duration() int {
	if s == SessionBreak {
		return BreakDuration
	}
	return WorkDuration
}

// Opposite returns the session that follows s.
func (s Session) Opposite() Session {
	if s == SessionWork {
		return SessionBreak
	}
	return SessionWork
}

// Display returns a label for the session.
func (s Session) Display() string {
	if s == SessionBreak {
		return "Break Time"
	}
	return "Focus Time"
}

// Status is the engine status.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// State is a snapshot of the engine.
// Fields are ordered to minimize memory padding.
type State struct {
	Session           Session
	Status            Status
	TimeLeft          int // seconds
	TotalTime         int // seconds
	CompletedSessions int
}

// InitialState returns the state of a fresh engine.
func InitialState() State {
	return State{
		Session:   SessionWork,
		Status:    StatusIdle,
		TimeLeft:  WorkDuration,
		TotalTime: WorkDuration,
	}
}

// Progress returns the elapsed fraction of the current session in [0, 1].
func (s State) Progress() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.TotalTime-s.TimeLeft) / float64(s.TotalTime)
}

// Clock formats the remaining time as MM:SS.
func (s State) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.TimeLeft/60, s.TimeLeft%60)
}

// EventType identifies an engine event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventSessionComplete EventType = "session_complete"
)

// Event is published to subscribers after every transition.
type Event struct {
	Type     EventType
	Finished Session // Session that just ended (EventSessionComplete only)
	State    State
}

// Engine is the countdown state machine.
// Ticks are a chain of one-shot scheduled callbacks, so at most one
// callback is pending at any time. Each callback carries the generation it
// was scheduled under and is ignored once the generation moves on.
type Engine struct {
	scheduler domain.Scheduler
	cancel    domain.CancelFunc
	events    []chan Event
	state     State
	mu        sync.Mutex
	gen       uint64
	closed    bool
}

// New creates an idle engine at the start of a work session.
func New(scheduler domain.Scheduler) *Engine {
	return &Engine{
		scheduler: scheduler,
		state:     InitialState(),
	}
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers a new observer channel.
// Events are dropped for subscribers whose buffer is full.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.events = append(e.events, ch)
	return ch
}

// Start begins or resumes the countdown. It is a no-op while running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.state.Status == StatusRunning {
		return
	}
	e.cancelLocked()
	e.state.Status = StatusRunning
	e.scheduleLocked(TickInterval, e.tickLocked)
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

// Pause halts the countdown, preserving the time left. It is a no-op unless running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.state.Status != StatusRunning {
		return
	}
	e.cancelLocked()
	e.state.Status = StatusPaused
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

// Stop returns to an idle work session. Completed sessions are kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelLocked()
	e.state.Session = SessionWork
	e.state.TimeLeft = WorkDuration
	e.state.TotalTime = WorkDuration
	e.state.Status = StatusIdle
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

// Skip ends the current session without waiting for it to expire.
// Leaving a work session counts it as completed. The next session does not start.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelLocked()
	e.flipSessionLocked()
	e.state.Status = StatusIdle
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

// Reset restores the initial state, including the completed session count.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelLocked()
	e.state = InitialState()
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

// Close cancels any pending callback and closes subscriber channels.
// The engine ignores all actions afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.cancelLocked()
	e.closed = true
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (e *Engine) tickLocked() {
	if e.state.TimeLeft <= 1 {
		finished := e.state.Session
		e.flipSessionLocked()
		e.state.Status = StatusCompleted
		e.scheduleLocked(AutoAdvanceDelay, e.autoAdvanceLocked)
		e.emitLocked(Event{Type: EventSessionComplete, Finished: finished, State: e.state})
		return
	}
	e.state.TimeLeft--
	e.scheduleLocked(TickInterval, e.tickLocked)
	e.emitLocked(Event{Type: EventTick, State: e.state})
}

func (e *Engine) autoAdvanceLocked() {
	if e.state.Status != StatusCompleted {
		return
	}
	e.state.Status = StatusIdle
	e.emitLocked(Event{Type: EventStateChange, State: e.state})
}

func (e *Engine) flipSessionLocked() {
	if e.state.Session == SessionWork {
		e.state.CompletedSessions++
	}
	e.state.Session = e.state.Session.Opposite()
	e.state.TotalTime = e.state.Session.Duration()
	e.state.TimeLeft = e.state.TotalTime
}

// scheduleLocked replaces the pending callback with fn after delay.
func (e *Engine) scheduleLocked(delay time.Duration, fn func()) {
	e.cancelLocked()
	gen := e.gen
	e.cancel = e.scheduler.Schedule(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.closed || e.gen != gen {
			return
		}
		e.cancel = nil
		fn()
	})
}

// cancelLocked cancels the pending callback and invalidates any callback
// that has already been dispatched.
func (e *Engine) cancelLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}
