package booking

import (
	"slices"
	"time"
)

// DefaultSlotLength is the bookable slot length.
const DefaultSlotLength = 30 * time.Minute

// TimeSlot is one bookable slot of a day.
type TimeSlot struct {
	Display string // e.g. "9:00 AM", in the display location
	Start   time.Time
	End     time.Time
}

// SplitAvailability cuts every window of avail that starts on date
// (YYYY-MM-DD, in loc) into consecutive slots of slotLen. A trailing piece
// shorter than slotLen is dropped. The result is sorted by start time.
//
// slotLen <= 0 uses DefaultSlotLength; a nil loc uses time.Local.
func SplitAvailability(avail []Slot, date string, slotLen time.Duration, loc *time.Location) []TimeSlot {
	if slotLen <= 0 {
		slotLen = DefaultSlotLength
	}
	if loc == nil {
		loc = time.Local
	}

	var slots []TimeSlot
	for _, w := range avail {
		if w.Start.In(loc).Format(DateLayout) != date {
			continue
		}
		for cur := w.Start; cur.Before(w.End); cur = cur.Add(slotLen) {
			end := cur.Add(slotLen)
			if end.After(w.End) {
				break
			}
			slots = append(slots, TimeSlot{
				Display: cur.In(loc).Format("3:04 PM"),
				Start:   cur,
				End:     end,
			})
		}
	}
	slices.SortStableFunc(slots, func(a, b TimeSlot) int { return a.Start.Compare(b.Start) })
	return slots
}

// DatesWithAvailability returns the sorted, distinct dates (YYYY-MM-DD, in
// loc) on which a window of avail starts.
func DatesWithAvailability(avail []Slot, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	dates := make([]string, 0, len(avail))
	for _, w := range avail {
		dates = append(dates, w.Start.In(loc).Format(DateLayout))
	}
	slices.Sort(dates)
	return slices.Compact(dates)
}
