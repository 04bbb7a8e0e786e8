package cli

import (
	"errors"

	"github.com/runoshun/taskline/internal/domain"
)

// FormatError returns the message main prints for err.
// API errors are shown by their user-facing text; the raw message is kept
// for client errors whose code has no canned text (e.g. validation).
func FormatError(err error) string {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return "Error: " + err.Error()
	}
	msg := "Error: " + apiErr.UserMessage()
	if domain.IsUnauthorized(err) {
		msg += " (run 'taskline auth login')"
	}
	return msg
}
