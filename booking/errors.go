package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned by Availability when the API rejects the
	// date range (HTTP 400).
	ErrInvalidRange = errors.New("invalid date range: start date must be before end date")

	// ErrSlotUnavailable is returned by ScheduleMeeting when the requested
	// time is taken (HTTP 400).
	ErrSlotUnavailable = errors.New("the requested meeting time is not available")

	// ErrNetwork wraps transport failures.
	ErrNetwork = errors.New("network error")

	// ErrNoSlotSelected is returned by State.Submit before a slot is chosen.
	ErrNoSlotSelected = errors.New("no time slot selected")
)

// ValidationDetail is one entry of a 422 response body.
type ValidationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError is returned for HTTP 422 responses.
type ValidationError struct {
	Detail []ValidationDetail `json:"detail"`
}

func (e *ValidationError) Error() string {
	msg := "Invalid request"
	if len(e.Detail) > 0 && e.Detail[0].Msg != "" {
		msg = e.Detail[0].Msg
	}
	return "validation error: " + msg
}

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Op         string // "fetch availability" or "schedule meeting"
	StatusCode int
	Status     string // status text without the code, e.g. "Bad Gateway"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Status)
}
