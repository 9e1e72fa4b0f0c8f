package residency

// Validate reports whether a date-sorted sequence alternates between
// Enter and Exit. Empty and single-event sequences are valid.
func Validate(events []Event) bool {
	for i, event := range events {
		if event.Kind != Enter && event.Kind != Exit {
			return false
		}

		if i > 0 && event.Kind == events[i-1].Kind {
			return false
		}
	}

	return true
}
