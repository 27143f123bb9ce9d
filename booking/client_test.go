package booking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	c := NewClient(server.URL, server.Client())
	c.Logger = log.New(io.Discard)
	return c
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", nil)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.http == nil || c.http.Timeout != httpTimeout {
		t.Error("NewClient() should set an http client with a timeout")
	}
	if got := NewClient("http://localhost:8080/", nil).BaseURL(); got != "http://localhost:8080" {
		t.Errorf("trailing slash not trimmed: %q", got)
	}
}

func TestClientAvailability(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/availability" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("start"); got != "2025-03-01" {
			t.Errorf("start = %q", got)
		}
		if got := r.URL.Query().Get("end"); got != "2025-03-31" {
			t.Errorf("end = %q", got)
		}
		_, _ = io.WriteString(w, `[{"start":"2025-03-03T09:00:00+01:00","end":"2025-03-03T11:00:00+01:00"}]`)
	})

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	slots, err := c.Availability(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Availability() error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("len = %d, want 1", len(slots))
	}
	want := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	if !slots[0].Start.Equal(want) {
		t.Errorf("start = %v, want %v", slots[0].Start, want)
	}
	if d := slots[0].End.Sub(slots[0].Start); d != 2*time.Hour {
		t.Errorf("window = %v, want 2h", d)
	}
}

func TestClientScheduleMeeting(t *testing.T) {
	var got MeetingRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/meetings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `"conf-123"`)
	})

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	id, err := c.ScheduleMeeting(context.Background(), MeetingRequest{
		Start:     start,
		End:       start.Add(30 * time.Minute),
		Attendees: []Attendee{{Email: "ada@example.com", Name: "Ada"}},
	})
	if err != nil {
		t.Fatalf("ScheduleMeeting() error: %v", err)
	}
	if id != "conf-123" {
		t.Errorf("id = %q, want conf-123", id)
	}
	if !got.Start.Equal(start) || len(got.Attendees) != 1 || got.Attendees[0].Email != "ada@example.com" {
		t.Errorf("server received %+v", got)
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
		meeting bool
	}{
		{
			name:   "availability 400",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrInvalidRange) {
					t.Errorf("err = %v, want ErrInvalidRange", err)
				}
			},
		},
		{
			name:    "meeting 400",
			status:  http.StatusBadRequest,
			meeting: true,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrSlotUnavailable) {
					t.Errorf("err = %v, want ErrSlotUnavailable", err)
				}
			},
		},
		{
			name:   "422 with detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["query","start"],"msg":"field required","type":"missing"}]}`,
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("err = %T, want *ValidationError", err)
				}
				if err.Error() != "validation error: field required" {
					t.Errorf("message = %q", err.Error())
				}
			},
		},
		{
			name:    "422 without detail",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":[]}`,
			meeting: true,
			check: func(t *testing.T, err error) {
				if err == nil || err.Error() != "validation error: Invalid request" {
					t.Errorf("err = %v", err)
				}
			},
		},
		{
			name:   "422 unreadable body",
			status: http.StatusUnprocessableEntity,
			body:   `<html>`,
			check: func(t *testing.T, err error) {
				if err == nil || err.Error() != "validation error: Invalid request" {
					t.Errorf("err = %v", err)
				}
			},
		},
		{
			name:   "other status",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				var serr *StatusError
				if !errors.As(err, &serr) {
					t.Fatalf("err = %T, want *StatusError", err)
				}
				if serr.StatusCode != http.StatusBadGateway {
					t.Errorf("code = %d", serr.StatusCode)
				}
				if err.Error() != "failed to fetch availability: Bad Gateway" {
					t.Errorf("message = %q", err.Error())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			var err error
			now := time.Now()
			if tt.meeting {
				_, err = c.ScheduleMeeting(context.Background(), MeetingRequest{Start: now, End: now})
			} else {
				_, err = c.Availability(context.Background(), now, now)
			}
			tt.check(t, err)
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url, nil)
	c.Logger = log.New(io.Discard)
	_, err := c.Availability(context.Background(), time.Now(), time.Now())
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
}

func TestClientBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})
	_, err := c.Availability(context.Background(), time.Now(), time.Now())
	if err == nil || errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want decode error", err)
	}
}
