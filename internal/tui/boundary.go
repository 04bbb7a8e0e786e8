package tui

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/runoshun/taskline/internal/domain"
)

// FailureKind selects the message shown by the error boundary.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureNetwork
	FailureAuth
	FailureServer
)

// String returns the string representation of the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureAuth:
		return "auth"
	case FailureServer:
		return "server"
	default:
		return "generic"
	}
}

// classifyFailure maps an error to the boundary message it gets.
func classifyFailure(err error) FailureKind {
	if domain.IsUnauthorized(err) || errors.Is(err, domain.ErrNotAuthenticated) {
		return FailureAuth
	}
	switch domain.Classify(err) {
	case domain.KindNetwork:
		return FailureNetwork
	case domain.KindServer:
		return FailureServer
	case domain.KindClient, domain.KindUnknown:
		return FailureGeneric
	}
	return FailureGeneric
}

// failure is what the error boundary shows in place of the current view.
type failure struct {
	err  error
	kind FailureKind
}

func newFailure(err error) *failure {
	return &failure{err: err, kind: classifyFailure(err)}
}

// Title returns the heading for the failure screen.
func (f *failure) Title() string {
	switch f.kind {
	case FailureNetwork:
		return "Connection problem"
	case FailureAuth:
		return "Not signed in"
	case FailureServer:
		return "Server error"
	default:
		return "Something went wrong"
	}
}

// Message returns the explanation for the failure screen.
func (f *failure) Message() string {
	switch f.kind {
	case FailureNetwork:
		return "Unable to connect to the server. Please check your connection and reload."
	case FailureAuth:
		return "Your session has expired. Run 'taskline auth login' and reload."
	case FailureServer:
		return domain.UserMessage(f.err)
	default:
		return "An unexpected error occurred. Try again, or reload to start fresh."
	}
}

// panicError wraps a recovered panic value.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

// recoverFailure converts a recovered panic into a boundary failure and logs
// the stack. It returns nil when r is nil.
func (m *Model) recoverFailure(r any, where string) *failure {
	if r == nil {
		return nil
	}
	err := panicError(r)
	if m.container != nil && m.container.Log != nil {
		m.container.Log.Error(0, "tui", fmt.Sprintf("%s: %v\n%s", where, err, debug.Stack()))
	}
	return newFailure(err)
}
