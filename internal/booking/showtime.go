package booking

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ClockLayout formats the time-of-day labels of the showtime picker.
const ClockLayout = "15:04"

// DefaultDateStrip is the number of days offered by the date picker.
const DefaultDateStrip = 7

// SameDay reports whether a and b fall on the same day of the same month.
// The year is not compared, so two dates one year apart collide.
func SameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month()
}

// UpcomingDates returns n consecutive calendar days starting at from,
// each truncated to midnight in from's location.
func UpcomingDates(from time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

type slot struct {
	start time.Time
	st    model.ShowTime
}

// slotsOn returns the showtimes starting on date, ascending by start.
// Entries with unparseable start times are skipped.
func slotsOn(showTimes []model.ShowTime, date time.Time, loc *time.Location) []slot {
	if loc == nil {
		loc = time.UTC
	}
	date = date.In(loc)
	out := make([]slot, 0, len(showTimes))
	for _, st := range showTimes {
		start, err := st.Start(loc)
		if err != nil {
			continue
		}
		if SameDay(start, date) {
			out = append(out, slot{start: start, st: st})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

// TimesOn lists the distinct "HH:MM" labels of showtimes starting on date,
// in ascending order.
func TimesOn(showTimes []model.ShowTime, date time.Time, loc *time.Location) []string {
	slots := slotsOn(showTimes, date, loc)
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		label := s.start.Format(ClockLayout)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// FindShowTime returns the first showtime on date whose start label equals
// clock.
func FindShowTime(showTimes []model.ShowTime, date time.Time, clock string, loc *time.Location) (model.ShowTime, bool) {
	for _, s := range slotsOn(showTimes, date, loc) {
		if s.start.Format(ClockLayout) == clock {
			return s.st, true
		}
	}
	return model.ShowTime{}, false
}
