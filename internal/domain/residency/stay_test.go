package residency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestStays pairs the full log and closes an open stay on the evaluation date.
func TestStays(t *testing.T) {
	t.Parallel()

	events := []Event{
		NewEvent(Enter, Date(2022, time.March, 1)),
		NewEvent(Exit, Date(2021, time.June, 13)),
		NewEvent(Exit, Date(2020, time.December, 17)),
		NewEvent(Enter, Date(2021, time.March, 5)),
	}

	stays, err := Stays(events, today)
	require.NoError(t, err)
	require.Equal(t, []Stay{
		{Enter: Date(2021, time.March, 5), Exit: Date(2021, time.June, 13)},
		{Enter: Date(2022, time.March, 1), Exit: today, Open: true},
	}, stays)
	require.Equal(t, 100, stays[0].Days())
	require.Equal(t, 14, stays[1].Days())

	future, err := Stays([]Event{NewEvent(Enter, Date(2022, time.April, 1))}, today)
	require.NoError(t, err)
	require.Zero(t, future[0].Days())

	_, err = Stays([]Event{NewEvent(Exit, today), NewEvent(Exit, today)}, today)
	require.ErrorIs(t, err, ErrInvalidSequence)
}
