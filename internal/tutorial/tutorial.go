// Package tutorial runs the guided walkthrough shown to first-time users.
package tutorial

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskline/internal/domain"
)

// Timings.
const (
	AutoStartDelay  = time.Second
	NavigationGrace = 500 * time.Millisecond
)

// Navigator switches between views. It is called with the tutorial lock held
// and must not call back into the Tutorial.
type Navigator interface {
	Route() string
	Navigate(route string)
}

// Tutorial is the step state machine.
// Scheduled callbacks run on scheduler goroutines; all state is mutex guarded.
// Fields are ordered to minimize memory padding.
type Tutorial struct {
	prefs       domain.PreferenceStore
	session     domain.SessionFlags
	scheduler   domain.Scheduler
	nav         Navigator
	cancelStart domain.CancelFunc
	cancelGrace domain.CancelFunc
	onChange    func()
	pinned      *Point
	steps       []Step
	last        Point
	viewport    Size
	tooltip     Size
	mu          sync.Mutex
	graceGen    uint64
	index       int
	active      bool
	navigating  bool
}

// New creates an inactive tutorial.
func New(steps []Step, prefs domain.PreferenceStore, session domain.SessionFlags, scheduler domain.Scheduler, nav Navigator) *Tutorial {
	return &Tutorial{
		steps:     steps,
		prefs:     prefs,
		session:   session,
		scheduler: scheduler,
		nav:       nav,
	}
}

// SetOnChange registers fn to be called after state changes that happen
// outside a direct method call (auto-start, end of navigation grace).
func (t *Tutorial) SetOnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// MaybeAutoStart schedules activation after AutoStartDelay when the tutorial
// has never been completed and was not already active in this session.
// It returns true if activation was scheduled.
func (t *Tutorial) MaybeAutoStart() (bool, error) {
	prefs, err := t.prefs.Load()
	if err != nil {
		return false, fmt.Errorf("load preferences: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if prefs.TutorialCompleted || t.session.TutorialActive() || t.active || t.cancelStart != nil {
		return false, nil
	}
	t.cancelStart = t.scheduler.Schedule(AutoStartDelay, func() {
		t.mu.Lock()
		if t.cancelStart == nil {
			t.mu.Unlock()
			return
		}
		t.cancelStart = nil
		t.active = true
		t.index = 0
		t.session.SetTutorialActive(true)
		t.enterStepLocked()
		notify := t.onChange
		t.mu.Unlock()

		if notify != nil {
			notify()
		}
	})
	return true, nil
}

// Start activates the tutorial at the first step.
func (t *Tutorial) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopAutoStartLocked()
	t.active = true
	t.index = 0
	t.session.SetTutorialActive(true)
	t.enterStepLocked()
}

// Next advances one step. On the last step it completes the tutorial.
func (t *Tutorial) Next() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return nil
	}
	if t.index < len(t.steps)-1 {
		t.index++
		t.enterStepLocked()
		return nil
	}
	return t.finishLocked()
}

// Previous goes back one step. It is a no-op on the first step.
func (t *Tutorial) Previous() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || t.index == 0 {
		return
	}
	t.index--
	t.enterStepLocked()
}

// Skip ends the tutorial and marks it completed.
func (t *Tutorial) Skip() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopAutoStartLocked()
	return t.finishLocked()
}

// GoTo jumps to step i. An out of range index returns ErrTutorialStepRange
// and leaves the state unchanged.
func (t *Tutorial) GoTo(i int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.steps) {
		return fmt.Errorf("%w: %d (have %d steps)", domain.ErrTutorialStepRange, i, len(t.steps))
	}
	t.index = i
	if t.active {
		t.enterStepLocked()
	}
	return nil
}

// Apply performs a key action.
func (t *Tutorial) Apply(a Action) error {
	switch a {
	case ActionExit:
		return t.Skip()
	case ActionNext:
		return t.Next()
	case ActionPrevious:
		t.Previous()
	}
	return nil
}

// Reset clears the completed flag so the tutorial auto-starts again.
func (t *Tutorial) Reset() error {
	prefs, err := t.prefs.Load()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	prefs.TutorialCompleted = false
	if err := t.prefs.Save(prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.SetTutorialActive(false)
	return nil
}

// CurrentStep returns the current step while active.
func (t *Tutorial) CurrentStep() (Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || len(t.steps) == 0 {
		return Step{}, false
	}
	return t.steps[t.index], true
}

// Active reports whether the tutorial is running.
func (t *Tutorial) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Index returns the current step index.
func (t *Tutorial) Index() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index
}

// Total returns the number of steps.
func (t *Tutorial) Total() int {
	return len(t.steps)
}

// TooltipVisible reports whether the tooltip should be drawn: the tutorial is
// active and no navigation is settling.
func (t *Tutorial) TooltipVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active && !t.navigating
}

// Layout returns where the tooltip for the current step goes. Once the user
// has dragged the tooltip, the dragged position is kept for the rest of the
// step instead of following the anchor.
func (t *Tutorial) Layout(anchors *AnchorRegistry, tooltip Size, viewport Size) Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tooltip = tooltip
	t.viewport = viewport
	if t.pinned != nil {
		return *t.pinned
	}
	var target *Rect
	pos := PositionCenter
	if t.active && len(t.steps) > 0 {
		step := t.steps[t.index]
		pos = step.Position
		if step.Anchor != "" && anchors != nil {
			if r, ok := anchors.Lookup(step.Anchor); ok {
				target = &r
			}
		}
	}
	t.last = Place(target, tooltip, viewport, pos, DefaultGap)
	return t.last
}

// Drag moves the tooltip by (dx, dy), keeping it inside the last known viewport.
func (t *Tutorial) Drag(dx, dy int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	base := t.last
	if t.pinned != nil {
		base = *t.pinned
	}
	p := Clamp(Point{X: base.X + dx, Y: base.Y + dy}, t.tooltip, t.viewport, 0)
	t.pinned = &p
}

// Dragged reports whether auto placement is suspended for the current step.
func (t *Tutorial) Dragged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pinned != nil
}

// Close cancels pending callbacks.
func (t *Tutorial) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopAutoStartLocked()
	t.stopGraceLocked()
}

// enterStepLocked resets per-step state and navigates when the step asks for it.
func (t *Tutorial) enterStepLocked() {
	t.pinned = nil
	t.stopGraceLocked()
	t.navigating = false
	if len(t.steps) == 0 {
		return
	}

	step := t.steps[t.index]
	if step.RequiredRoute == "" || !step.AutoNavigate || t.nav == nil || t.nav.Route() == step.RequiredRoute {
		return
	}
	t.navigating = true
	t.nav.Navigate(step.RequiredRoute)

	gen := t.graceGen
	t.cancelGrace = t.scheduler.Schedule(NavigationGrace, func() {
		t.mu.Lock()
		if t.graceGen != gen || !t.navigating {
			t.mu.Unlock()
			return
		}
		t.navigating = false
		t.cancelGrace = nil
		notify := t.onChange
		t.mu.Unlock()

		if notify != nil {
			notify()
		}
	})
}

func (t *Tutorial) finishLocked() error {
	t.stopGraceLocked()
	t.active = false
	t.navigating = false
	t.pinned = nil
	t.session.SetTutorialActive(false)

	prefs, err := t.prefs.Load()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	prefs.TutorialCompleted = true
	if err := t.prefs.Save(prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (t *Tutorial) stopAutoStartLocked() {
	if t.cancelStart != nil {
		t.cancelStart()
		t.cancelStart = nil
	}
}

func (t *Tutorial) stopGraceLocked() {
	t.graceGen++
	if t.cancelGrace != nil {
		t.cancelGrace()
		t.cancelGrace = nil
	}
}
