package booking

import (
	"context"
	"errors"
	"time"
)

// Step is a stage of the booking flow.
type Step string

const (
	StepCalendar  Step = "calendar"
	StepForm      Step = "form"
	StepConfirmed Step = "confirmed"
)

// FormData is what the visitor enters before booking.
type FormData struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Company string `yaml:"company"`
	Notes   string `yaml:"notes"`
}

// AvailabilitySource fetches free windows. *Client implements it.
type AvailabilitySource interface {
	Availability(ctx context.Context, start, end time.Time) ([]Slot, error)
}

// MeetingScheduler books meetings. *Client implements it.
type MeetingScheduler interface {
	ScheduleMeeting(ctx context.Context, m MeetingRequest) (string, error)
}

// State is the state of one booking flow. It is not safe for concurrent use.
type State struct {
	Step         Step
	CurrentMonth time.Time // first day of the displayed month

	SelectedDate string // YYYY-MM-DD, empty when none
	SelectedSlot *TimeSlot

	Availability   []Slot
	AvailableSlots []TimeSlot // slots of SelectedDate

	// Error is the message of the last failed load or submit.
	Error string
	Form  FormData

	LoadingSlots   bool
	Submitting     bool
	ConfirmationID string

	// Location is used for dates and slot display. Nil means time.Local.
	Location   *time.Location
	SlotLength time.Duration
}

// NewState starts a flow on the calendar step showing the month of now.
func NewState(now time.Time) *State {
	return &State{
		Step:         StepCalendar,
		CurrentMonth: monthStart(now, 0),
		Location:     now.Location(),
		SlotLength:   DefaultSlotLength,
	}
}

func monthStart(t time.Time, delta int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
}

func (s *State) PrevMonth() { s.CurrentMonth = monthStart(s.CurrentMonth, -1) }
func (s *State) NextMonth() { s.CurrentMonth = monthStart(s.CurrentMonth, 1) }

// SelectDate picks a day and recomputes its slots from the loaded
// availability. Any selected slot is cleared.
func (s *State) SelectDate(date string) {
	s.SelectedDate = date
	s.SelectedSlot = nil
	s.refreshSlots()
}

// SelectSlot picks a slot and moves to the form step.
func (s *State) SelectSlot(slot TimeSlot) {
	s.SelectedSlot = &slot
	s.Step = StepForm
}

// SelectedTime returns the display label of the selected slot, or "".
func (s *State) SelectedTime() string {
	if s.SelectedSlot == nil {
		return ""
	}
	return s.SelectedSlot.Display
}

// ResetTimeSelection clears the selected slot and returns to the calendar.
func (s *State) ResetTimeSelection() {
	s.SelectedSlot = nil
	if s.Step == StepForm {
		s.Step = StepCalendar
	}
}

func (s *State) ClearError() { s.Error = "" }

// DatesWithAvailability lists the days of the loaded availability.
func (s *State) DatesWithAvailability() []string {
	return DatesWithAvailability(s.Availability, s.Location)
}

// LoadAvailability replaces the loaded availability with the windows between
// start and end. On failure the previous availability is kept and Error is
// set.
func (s *State) LoadAvailability(ctx context.Context, src AvailabilitySource, start, end time.Time) error {
	s.LoadingSlots = true
	defer func() { s.LoadingSlots = false }()

	avail, err := src.Availability(ctx, start, end)
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.Error = ""
	s.Availability = avail
	s.refreshSlots()
	return nil
}

// Submit books the selected slot with the form's name and email as the
// attendee. On success the flow moves to the confirmed step.
func (s *State) Submit(ctx context.Context, sched MeetingScheduler) error {
	if s.SelectedSlot == nil {
		s.Error = ErrNoSlotSelected.Error()
		return ErrNoSlotSelected
	}
	if s.Submitting {
		return errors.New("submit already in progress")
	}
	s.Submitting = true
	defer func() { s.Submitting = false }()

	id, err := sched.ScheduleMeeting(ctx, MeetingRequest{
		Start:     s.SelectedSlot.Start,
		End:       s.SelectedSlot.End,
		Attendees: []Attendee{{Email: s.Form.Email, Name: s.Form.Name}},
	})
	if err != nil {
		s.Error = err.Error()
		return err
	}
	s.Error = ""
	s.ConfirmationID = id
	s.Step = StepConfirmed
	return nil
}

func (s *State) refreshSlots() {
	if s.SelectedDate == "" {
		s.AvailableSlots = nil
		return
	}
	s.AvailableSlots = SplitAvailability(s.Availability, s.SelectedDate, s.SlotLength, s.Location)
}
