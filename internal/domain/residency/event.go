package residency

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind tells whether an event is a crossing into or out of the country.
type Kind int

const (
	// Enter is a crossing into the country.
	Enter Kind = iota + 1
	// Exit is a crossing out of the country.
	Exit
)

// String returns the record token of the kind ("in" or "out").
func (k Kind) String() string {
	switch k {
	case Enter:
		return "in"
	case Exit:
		return "out"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a record token to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return Enter, nil
	case "out":
		return Exit, nil
	default:
		return 0, fmt.Errorf("unknown crossing kind %q", s)
	}
}

// Event is a dated border crossing. Dates carry no time of day.
type Event struct {
	// Kind is the crossing direction.
	Kind Kind
	// Date is the crossing day at UTC midnight.
	Date time.Time
}

// NewEvent creates an event, dropping the time of day from date.
func NewEvent(kind Kind, date time.Time) Event {
	return Event{
		Kind: kind,
		Date: Day(date),
	}
}

// Day truncates t to its calendar day at UTC midnight, keeping t's year, month and day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// Sort returns a copy of events ordered by date.
// Events on the same day keep their original relative order.
func Sort(events []Event) []Event {
	sorted := slices.Clone(events)

	slices.SortStableFunc(sorted, func(a, b Event) int {
		return a.Date.Compare(b.Date)
	})

	return sorted
}
