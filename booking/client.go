package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the production calendar API.
const DefaultBaseURL = "https://calendar.meetchase.ai"

// DateLayout is the date format used in availability queries.
const DateLayout = "2006-01-02"

const httpTimeout = 10 * time.Second

// Slot is a free window or booked interval with explicit offsets.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Attendee is a meeting participant. Name is optional.
type Attendee struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// MeetingRequest is the body of POST /api/meetings.
type MeetingRequest struct {
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Attendees []Attendee `json:"attendees"`
}

// Client calls the calendar API. It is safe for concurrent use. Requests are
// not retried.
type Client struct {
	baseURL string
	http    *http.Client
	Logger  *log.Logger
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty. A nil
// httpClient gets a client with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		Logger:  log.Default().WithPrefix("booking"),
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Availability returns the free windows between the dates of start and end,
// inclusive. Only the calendar date of each bound is sent.
func (c *Client) Availability(ctx context.Context, start, end time.Time) ([]Slot, error) {
	q := url.Values{}
	q.Set("start", start.Format(DateLayout))
	q.Set("end", end.Format(DateLayout))
	u := c.baseURL + "/api/availability?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("fetching availability", "start", q.Get("start"), "end", q.Get("end"))

	var slots []Slot
	if err := c.do(req, "fetch availability", ErrInvalidRange, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ScheduleMeeting books m and returns the confirmation id.
func (c *Client) ScheduleMeeting(ctx context.Context, m MeetingRequest) (string, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode meeting: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/meetings", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.Logger.Debug("scheduling meeting", "start", m.Start, "end", m.End, "attendees", len(m.Attendees))

	var id string
	if err := c.do(req, "schedule meeting", ErrSlotUnavailable, &id); err != nil {
		return "", err
	}
	return id, nil
}

// do sends req and decodes a 2xx JSON body into v. badRequest is returned
// for HTTP 400.
func (c *Client) do(req *http.Request, op string, badRequest error, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, op, badRequest); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func checkStatus(resp *http.Response, op string, badRequest error) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		return badRequest
	case code == http.StatusUnprocessableEntity:
		verr := &ValidationError{}
		// An unreadable body still yields a generic validation error.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(verr)
		return verr
	default:
		return &StatusError{
			Op:         op,
			StatusCode: code,
			Status:     strings.TrimPrefix(resp.Status, strconv.Itoa(code)+" "),
		}
	}
}
