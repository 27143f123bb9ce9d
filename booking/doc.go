// Package booking talks to the meeting calendar API and holds the state of a
// single booking flow.
//
// [Client] wraps the two endpoints: GET /api/availability returns free
// windows between two dates, POST /api/meetings books a slot and returns a
// confirmation id. [SplitAvailability] cuts the free windows of one day into
// fixed-length slots, and [State] sequences the calendar, form and
// confirmation steps.
//
// Errors are classified so callers can branch with [errors.Is] and
// [errors.As]:
//
//	id, err := client.ScheduleMeeting(ctx, req)
//	switch {
//	case errors.Is(err, booking.ErrSlotUnavailable):
//	    // pick another slot
//	case errors.Is(err, booking.ErrNetwork):
//	    // transport failure
//	}
package booking
