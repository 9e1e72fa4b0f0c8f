package residency

import (
	"fmt"
	"time"
)

// Threshold is the number of days in the window a resident must exceed.
const Threshold = 183

// Result is the outcome of evaluating a crossing log on a given date.
type Result struct {
	// Today is the evaluation date.
	Today time.Time
	// Window is the rolling window that was accounted.
	Window Window
	// Days is the number of days spent inside the country during Window.
	Days int
	// IsResident is true when Days exceeds Threshold.
	IsResident bool
	// ExpiresAt is the projected end of residency; zero unless IsResident.
	ExpiresAt time.Time
}

// CountDays sorts and validates the log, then returns the days spent inside
// the country during the window ending on today.
func CountDays(events []Event, today time.Time) (int, error) {
	sorted := Sort(events)
	if !Validate(sorted) {
		return 0, ErrInvalidSequence
	}

	windowed, err := Resolve(sorted, today)
	if err != nil {
		return 0, err
	}

	return Accumulate(windowed)
}

// IsResident reports whether the log shows more than Threshold days inside
// the country during the window ending on today.
func IsResident(events []Event, today time.Time) (bool, error) {
	days, err := CountDays(events, today)
	if err != nil {
		return false, err
	}

	return days > Threshold, nil
}

// ExpirationDate projects the date at which the day count returns to
// Threshold: today plus (Threshold - daysPresent) days.
func ExpirationDate(daysPresent int, today time.Time) time.Time {
	return Day(today).AddDate(0, 0, Threshold-daysPresent)
}

// Evaluate computes the day count once and derives the verdict and the
// expiration projection from it.
func Evaluate(events []Event, today time.Time) (*Result, error) {
	days, err := CountDays(events, today)
	if err != nil {
		return nil, fmt.Errorf("count days: %w", err)
	}

	result := &Result{
		Today:      Day(today),
		Window:     NewWindow(today),
		Days:       days,
		IsResident: days > Threshold,
	}

	if result.IsResident {
		result.ExpiresAt = ExpirationDate(days, today)
	}

	return result, nil
}
