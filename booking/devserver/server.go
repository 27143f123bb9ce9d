// Package devserver is an in-memory calendar API for local development. It
// serves the same two endpoints as the production API: weekday working hours
// minus booked meetings are available, and overlapping bookings are
// rejected.
package devserver

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/phanxgames/hexfield/booking"
)

// maxRangeDays bounds a single availability query.
const maxRangeDays = 93

// Hours is a working window within a day, as offsets from midnight.
type Hours struct {
	From, To time.Duration
}

// DefaultHours are the bookable windows of every weekday.
var DefaultHours = []Hours{
	{From: 9 * time.Hour, To: 12 * time.Hour},
	{From: 13 * time.Hour, To: 17 * time.Hour},
}

type meeting struct {
	id string
	booking.Slot
	attendees []booking.Attendee
}

// Server holds the calendar. It is safe for concurrent use.
type Server struct {
	Logger *log.Logger

	loc   *time.Location
	hours []Hours

	mu       sync.Mutex
	meetings []meeting
}

// New creates a server whose working hours are interpreted in loc (nil means
// UTC).
func New(loc *time.Location, hours []Hours) *Server {
	if loc == nil {
		loc = time.UTC
	}
	if hours == nil {
		hours = DefaultHours
	}
	return &Server{
		Logger: log.Default().WithPrefix("devserver"),
		loc:    loc,
		hours:  slices.Clone(hours),
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Route("/api", func(r chi.Router) {
		r.Get("/availability", s.handleAvailability)
		r.Post("/meetings", s.handleMeetings)
	})
	return r
}

// Meetings returns the number of booked meetings.
func (s *Server) Meetings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meetings)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t0 := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(t0).Round(time.Microsecond))
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	var details []booking.ValidationDetail
	parse := func(name string) time.Time {
		v := r.URL.Query().Get(name)
		if v == "" {
			details = append(details, detail([]any{"query", name}, "Field required", "missing"))
			return time.Time{}
		}
		d, err := time.ParseInLocation(booking.DateLayout, v, s.loc)
		if err != nil {
			details = append(details, detail([]any{"query", name}, "Input should be a valid date", "date_parsing"))
		}
		return d
	}
	start, end := parse("start"), parse("end")
	if len(details) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, booking.ValidationError{Detail: details})
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "start date must be before end date")
		return
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		writeJSON(w, http.StatusUnprocessableEntity, booking.ValidationError{Detail: []booking.ValidationDetail{
			detail([]any{"query", "end"}, "Date range is too long", "value_error"),
		}})
		return
	}

	s.mu.Lock()
	free := s.availability(start, end)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, free)
}

func (s *Server) handleMeetings(w http.ResponseWriter, r *http.Request) {
	var req booking.MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, booking.ValidationError{Detail: []booking.ValidationDetail{
			detail([]any{"body"}, "Invalid JSON body", "json_invalid"),
		}})
		return
	}
	if details := validateMeeting(req); len(details) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, booking.ValidationError{Detail: details})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	want := booking.Slot{Start: req.Start, End: req.End}
	if !s.isFree(want) {
		s.Logger.Info("rejected booking", "start", req.Start, "end", req.End)
		writeError(w, http.StatusBadRequest, "requested time is not available")
		return
	}
	m := meeting{id: uuid.NewString(), Slot: want, attendees: req.Attendees}
	s.meetings = append(s.meetings, m)
	s.Logger.Info("booked meeting", "id", m.id, "start", req.Start, "attendees", len(req.Attendees))
	writeJSON(w, http.StatusOK, m.id)
}

func validateMeeting(req booking.MeetingRequest) []booking.ValidationDetail {
	var details []booking.ValidationDetail
	if req.Start.IsZero() {
		details = append(details, detail([]any{"body", "start"}, "Field required", "missing"))
	}
	if req.End.IsZero() {
		details = append(details, detail([]any{"body", "end"}, "Field required", "missing"))
	}
	if len(req.Attendees) == 0 {
		details = append(details, detail([]any{"body", "attendees"}, "List should have at least 1 item", "too_short"))
	}
	for i, a := range req.Attendees {
		if _, err := mail.ParseAddress(a.Email); err != nil {
			details = append(details, detail([]any{"body", "attendees", i, "email"},
				"value is not a valid email address", "value_error"))
		}
	}
	return details
}

// availability returns the free windows of every day in [start, end].
// Callers hold s.mu.
func (s *Server) availability(start, end time.Time) []booking.Slot {
	free := []booking.Slot{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, h := range s.hours {
			w := booking.Slot{Start: day.Add(h.From), End: day.Add(h.To)}
			free = append(free, s.subtractMeetings(w)...)
		}
	}
	return free
}

// subtractMeetings splits w around booked meetings.
func (s *Server) subtractMeetings(w booking.Slot) []booking.Slot {
	parts := []booking.Slot{w}
	for _, m := range s.meetings {
		var next []booking.Slot
		for _, p := range parts {
			if !overlaps(p, m.Slot) {
				next = append(next, p)
				continue
			}
			if p.Start.Before(m.Start) {
				next = append(next, booking.Slot{Start: p.Start, End: m.Start})
			}
			if m.End.Before(p.End) {
				next = append(next, booking.Slot{Start: m.End, End: p.End})
			}
		}
		parts = next
	}
	return parts
}

// isFree reports whether want lies inside a working window and overlaps no
// meeting. Callers hold s.mu.
func (s *Server) isFree(want booking.Slot) bool {
	if !want.Start.Before(want.End) {
		return false
	}
	local := want.Start.In(s.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	for _, w := range s.availability(day, day) {
		if !want.Start.Before(w.Start) && !w.End.Before(want.End) {
			return true
		}
	}
	return false
}

func overlaps(a, b booking.Slot) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func detail(loc []any, msg, typ string) booking.ValidationDetail {
	return booking.ValidationDetail{Loc: loc, Msg: msg, Type: typ}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
