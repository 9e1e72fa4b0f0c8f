package residency

import "time"

// Stay is a continuous presence inside the country.
type Stay struct {
	// Enter is the day the stay began.
	Enter time.Time
	// Exit is the day the stay ended, or the evaluation date for an open stay.
	Exit time.Time
	// Open is true when the log has no exit for this stay yet.
	Open bool
}

// Days returns the length of the stay in calendar days.
func (s Stay) Days() int {
	return DaysBetween(s.Enter, s.Exit)
}

// Stays pairs the whole log, not just the window, into stays. A leading Exit
// is skipped and a trailing Enter becomes an open stay ending on today.
func Stays(events []Event, today time.Time) ([]Stay, error) {
	sorted := Sort(events)
	if !Validate(sorted) {
		return nil, ErrInvalidSequence
	}

	if len(sorted) > 0 && sorted[0].Kind == Exit {
		sorted = sorted[1:]
	}

	stays := make([]Stay, 0, (len(sorted)+1)/2)

	for i := 0; i < len(sorted); i += 2 {
		stay := Stay{
			Enter: sorted[i].Date,
			Exit:  Day(today),
			Open:  true,
		}

		if i+1 < len(sorted) {
			stay.Exit = sorted[i+1].Date
			stay.Open = false
		}

		if stay.Exit.Before(stay.Enter) {
			stay.Exit = stay.Enter
		}

		stays = append(stays, stay)
	}

	return stays, nil
}
