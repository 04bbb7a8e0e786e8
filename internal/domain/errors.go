package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEntryNotFound     = errors.New("journal entry not found")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrInvalidColumn     = errors.New("invalid kanban column")
	ErrInvalidDate       = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidSetting    = errors.New("invalid setting")
	ErrImportNotObject   = errors.New("import file must contain a JSON object")
	ErrInvalidImport     = errors.New("invalid import data format")
	ErrImportCancelled   = errors.New("import cancelled")
	ErrNotAuthenticated  = errors.New("not logged in (run 'taskline auth login' first)")
	ErrEmptyCredentials  = errors.New("username and PIN are required")
	ErrNoTaskSelected    = errors.New("no task selected")
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnknownView       = errors.New("unknown view")
	ErrTutorialStepRange = errors.New("tutorial step out of range")
)

// ErrorKind classifies an error for retry and presentation decisions.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota // Not an API error (or an unclassified code)
	KindClient                   // 4xx: bad input, not found, validation
	KindServer                   // 5xx
	KindNetwork                  // Status 0: the request never reached a server
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError is an error returned by the Task Line API (or the transport reaching it).
// Code is the HTTP status, or 0 when the request never reached a server.
type APIError struct {
	Details map[string]any
	Message string
	Code    int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Code)
}

// Kind returns the classification of the error.
func (e *APIError) Kind() ErrorKind {
	switch {
	case e.Code == 0:
		return KindNetwork
	case e.Code >= 400 && e.Code < 500:
		return KindClient
	case e.Code >= 500 && e.Code < 600:
		return KindServer
	default:
		return KindUnknown
	}
}

// IsStatus returns true if the error carries the given status code.
func (e *APIError) IsStatus(code int) bool {
	return e.Code == code
}

var userMessages = map[int]string{
	0:   "Unable to connect to the server. Please check your internet connection.",
	400: "The request was invalid. Please check your input and try again.",
	401: "You need to log in to access this resource.",
	403: "You don't have permission to access this resource.",
	404: "The requested resource could not be found.",
	409: "This action conflicts with existing data.",
	500: "An error occurred on the server. Please try again later.",
	502: "The server is temporarily unavailable. Please try again later.",
	503: "The service is temporarily unavailable. Please try again later.",
}

// UserMessage returns a user-friendly message for the error.
func (e *APIError) UserMessage() string {
	if msg, ok := userMessages[e.Code]; ok {
		return msg
	}
	return e.Message
}

// Classify returns the kind of err. Errors that are not (or do not wrap) an
// *APIError are KindUnknown.
func Classify(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindUnknown
}

// IsUnauthorized returns true if err is an API 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsStatus(401)
}

// UserMessage returns a user-facing message for any error.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
