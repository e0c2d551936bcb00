package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
)

// TimeFormat selects the clock rendering used by MinutesToTime.
type TimeFormat string

const (
	Format24 TimeFormat = "24"
	Format12 TimeFormat = "12"
)

var hhmmPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// TimeToMinutes parses a 24-hour "HH:MM" clock string into minutes since
// midnight. Week keys and duration overrides store times in this form, so
// the parse is strict: anything that does not match HH:MM is rejected.
func TimeToMinutes(clock string) (int, error) {
	m := hhmmPattern.FindStringSubmatch(clock)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, nil
}

// MinutesToTime renders minutes-since-midnight as a clock string.
// Format24 produces zero-padded "HH:MM"; Format12 produces "H:MM AM/PM"
// with 0 mapped to 12 and hours past noon wrapped.
func MinutesToTime(minutes int, format TimeFormat) string {
	h := minutes / 60
	m := minutes % 60

	if format == Format12 {
		suffix := "AM"
		if h >= 12 {
			suffix = "PM"
		}
		h12 := h % 12
		if h12 == 0 {
			h12 = 12
		}
		return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// WeekStart returns midnight of the first day of the week containing t,
// where startDay is the configured first weekday (Monday or Sunday).
func WeekStart(t time.Time, startDay time.Weekday) time.Time {
	delta := (int(t.Weekday()) - int(startDay) + 7) % 7
	d := t.AddDate(0, 0, -delta)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// ISOYearWeek returns the ISO-8601 (year, week number) pair for t. Week
// numbers are persisted join keys across override and assignment records,
// so this delegates to the standard library's ISO week implementation
// rather than approximating.
func ISOYearWeek(t time.Time) (int, int) {
	return t.ISOWeek()
}

// WeekNumber identifies one ISO calendar week.
type WeekNumber struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekOf returns the WeekNumber of the week containing date.
func WeekOf(date time.Time) WeekNumber {
	y, w := ISOYearWeek(date)
	return WeekNumber{Year: y, Week: w}
}

func (n WeekNumber) String() string {
	return fmt.Sprintf("%d-W%02d", n.Year, n.Week)
}

// ── Weekday names ──

// WeekdayNames is the canonical lowercase day order used for timetable
// day sets, Monday first.
var WeekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday maps a lowercase (or mixed-case) weekday name to its
// time.Weekday value.
func ParseWeekday(name string) (time.Weekday, error) {
	w, ok := weekdayByName[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
	return w, nil
}

// WeekdayIndex returns the position of a day name within WeekdayNames
// (monday=0 through sunday=6), or -1 for an unknown name.
func WeekdayIndex(name string) int {
	for i, n := range WeekdayNames {
		if n == strings.ToLower(name) {
			return i
		}
	}
	return -1
}
