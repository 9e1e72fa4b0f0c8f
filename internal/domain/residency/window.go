package residency

import (
	"fmt"
	"time"
)

// Window is the rolling 12-month period ending on the evaluation date.
type Window struct {
	// Start is the evaluation date one calendar year earlier. Events on Start are outside the window.
	Start time.Time
	// End is the evaluation date.
	End time.Time
}

// NewWindow returns the window ending on today.
// On February 29 the start falls on February 28 of the previous year.
func NewWindow(today time.Time) Window {
	end := Day(today)
	y, m, d := end.Date()

	start := Date(y-1, m, d)
	if start.Month() != m {
		// The day does not exist in the previous year; clamp to the month end.
		start = Date(y-1, m+1, 0)
	}

	return Window{
		Start: start,
		End:   end,
	}
}

// Contains reports whether date lies inside the window, Start excluded.
func (w Window) Contains(date time.Time) bool {
	date = Day(date)

	return date.After(w.Start) && !date.After(w.End)
}

// String renders the window as (start, end].
func (w Window) String() string {
	return fmt.Sprintf("(%s, %s]", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}

// Resolve clips a validated, date-sorted sequence to the window ending on today.
//
// Events after the window start are kept. If the person was inside the
// country when the window opened, an Enter dated at the window start is
// prepended. A leading Exit is dropped and an open presence is closed by an
// Exit dated today. The result alternates Enter/Exit starting with Enter.
// The input is not modified.
func Resolve(events []Event, today time.Time) ([]Event, error) {
	window := NewWindow(today)

	var (
		anchor     *Event
		onBoundary bool
		inside     = make([]Event, 0, len(events)+2)
	)

	for i := range events {
		switch date := events[i].Date; {
		case date.Before(window.Start):
			anchor = &events[i]
		case date.Equal(window.Start):
			onBoundary = true
		case !date.After(window.End):
			inside = append(inside, events[i])
		}
	}

	// A crossing on the boundary day closes whatever the anchor opened.
	if anchor != nil && anchor.Kind == Enter && !onBoundary {
		inside = append([]Event{NewEvent(Enter, window.Start)}, inside...)
	}

	if len(inside) > 0 && inside[0].Kind == Exit {
		inside = inside[1:]
	}

	if len(inside) > 0 && inside[len(inside)-1].Kind == Enter {
		inside = append(inside, NewEvent(Exit, window.End))
	}

	if err := checkPaired(inside); err != nil {
		return nil, err
	}

	return inside, nil
}

// checkPaired verifies the resolved sequence is a list of Enter/Exit pairs.
func checkPaired(events []Event) error {
	if len(events)%2 != 0 {
		return fmt.Errorf("%w: odd number of events (%d)", ErrInvariantViolation, len(events))
	}

	for i, event := range events {
		want := Enter
		if i%2 == 1 {
			want = Exit
		}

		if event.Kind != want {
			return fmt.Errorf("%w: event %d is %s, want %s", ErrInvariantViolation, i, event.Kind, want)
		}
	}

	return nil
}
