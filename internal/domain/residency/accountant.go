package residency

import "fmt"

// Accumulate sums the days between each Enter and its matching Exit in a
// resolved window. The i-th Enter is paired with the i-th Exit.
func Accumulate(windowed []Event) (int, error) {
	var enters, exits []Event

	for _, event := range windowed {
		switch event.Kind {
		case Enter:
			enters = append(enters, event)
		case Exit:
			exits = append(exits, event)
		}
	}

	if len(enters) != len(exits) {
		return 0, fmt.Errorf("%w: %d entries, %d exits", ErrInvariantViolation, len(enters), len(exits))
	}

	total := 0
	for i := range enters {
		total += DaysBetween(enters[i].Date, exits[i].Date)
	}

	return total, nil
}
