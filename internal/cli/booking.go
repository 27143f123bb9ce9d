package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfield/booking"
)

const draftAppName = "meetchase"

// apiFlags are shared by the commands that talk to the calendar API.
type apiFlags struct {
	baseURL string
	tz      string
}

func (f *apiFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "base-url", booking.DefaultBaseURL, "calendar API base URL")
	cmd.Flags().StringVar(&f.tz, "tz", "Local", "IANA time zone for dates and slot times")
}

func (f *apiFlags) location() (*time.Location, error) {
	loc, err := time.LoadLocation(f.tz)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}
	return loc, nil
}

func newAvailabilityCmd() *cobra.Command {
	var (
		api        apiFlags
		start, end string
		day        string
		slotLen    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "List free windows, or the bookable slots of one day",
		Example: `  meetchase availability --start 2025-03-03 --end 2025-03-07
  meetchase availability --date 2025-03-04 --tz Europe/Berlin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			loc, err := api.location()
			if err != nil {
				return err
			}
			if day != "" {
				start, end = day, day
			}
			from, to, err := parseRange(start, end, loc)
			if err != nil {
				return err
			}

			c := booking.NewClient(api.baseURL, nil)
			c.Logger = logger.WithPrefix("booking")

			prog := newProgress(logger)
			avail, err := c.Availability(ctx, from, to)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d windows", len(avail)))

			out := cmd.OutOrStdout()
			if day != "" {
				printSlots(out, booking.SplitAvailability(avail, day, slotLen, loc))
				return nil
			}
			printWindows(out, avail, loc)
			return nil
		},
	}

	api.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD (default start + 6 days)")
	cmd.Flags().StringVar(&day, "date", "", "list bookable slots of this date instead of windows")
	cmd.Flags().DurationVar(&slotLen, "slot", booking.DefaultSlotLength, "slot length for --date")
	return cmd
}

// parseRange parses start and end dates in loc. An empty start is today and
// an empty end is a week from start.
func parseRange(start, end string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if start != "" {
		t, err := time.ParseInLocation(booking.DateLayout, start, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
		from = t
	}
	to := from.AddDate(0, 0, 6)
	if end != "" {
		t, err := time.ParseInLocation(booking.DateLayout, end, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
		to = t
	}
	return from, to, nil
}

func printWindows(w io.Writer, avail []booking.Slot, loc *time.Location) {
	if len(avail) == 0 {
		fmt.Fprintln(w, "no availability")
		return
	}
	for _, s := range avail {
		start, end := s.Start.In(loc), s.End.In(loc)
		fmt.Fprintf(w, "%s  %s - %s\n", start.Format("Mon 2006-01-02"), start.Format("3:04 PM"), end.Format("3:04 PM"))
	}
}

func printSlots(w io.Writer, slots []booking.TimeSlot) {
	if len(slots) == 0 {
		fmt.Fprintln(w, "no slots")
		return
	}
	for _, s := range slots {
		fmt.Fprintf(w, "%-8s  %s\n", s.Display, s.Start.Format(time.RFC3339))
	}
}

func newBookCmd() *cobra.Command {
	var (
		api      apiFlags
		at       string
		duration time.Duration
		form     booking.FormData
		noDraft  bool
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a meeting",
		Long: `Book a meeting at --at. Name and email missing from the flags are
taken from the saved draft; the draft is updated on failure and cleared on
success.`,
		Example: `  meetchase book --at 2025-03-04T10:00:00+01:00 --email ada@example.com --name Ada`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			start, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}

			drafts := booking.NewDraftStore(nil)
			if !noDraft {
				if drafts, err = booking.OpenDraftStore(draftAppName); err != nil {
					logger.Warn("draft storage unavailable", "err", err)
					drafts = booking.NewDraftStore(nil)
				}
			}
			form = mergeDraft(form, drafts, logger)
			if form.Email == "" {
				return errors.New("an attendee email is required (--email)")
			}

			c := booking.NewClient(api.baseURL, nil)
			c.Logger = logger.WithPrefix("booking")

			state := booking.NewState(start)
			state.Form = form
			state.SelectSlot(booking.TimeSlot{Start: start, End: start.Add(duration)})

			if err := state.Submit(ctx, c); err != nil {
				if serr := drafts.Save(form); serr != nil {
					logger.Warn("could not save draft", "err", serr)
				}
				return err
			}
			if err := drafts.Clear(); err != nil {
				logger.Warn("could not clear draft", "err", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booked: %s\n", state.ConfirmationID)
			return nil
		},
	}

	api.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "meeting start, RFC 3339")
	cmd.Flags().DurationVar(&duration, "duration", booking.DefaultSlotLength, "meeting length")
	cmd.Flags().StringVar(&form.Email, "email", "", "attendee email")
	cmd.Flags().StringVar(&form.Name, "name", "", "attendee name")
	cmd.Flags().StringVar(&form.Company, "company", "", "attendee company")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "notes for the meeting")
	cmd.Flags().BoolVar(&noDraft, "no-draft", false, "do not read or write the saved draft")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

// draftLoader is the part of booking.DraftStore mergeDraft needs.
type draftLoader interface {
	Load() (booking.FormData, error)
}

// mergeDraft fills empty fields of f from the saved draft.
func mergeDraft(f booking.FormData, drafts draftLoader, logger *log.Logger) booking.FormData {
	d, err := drafts.Load()
	if err != nil {
		logger.Warn("could not load draft", "err", err)
		return f
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&f.Name, d.Name)
	fill(&f.Email, d.Email)
	fill(&f.Company, d.Company)
	fill(&f.Notes, d.Notes)
	return f
}
