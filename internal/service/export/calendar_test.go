package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/residency/internal/config"
	"github.com/oshokin/residency/internal/domain/residency"
)

// TestBuildCalendar renders closed and open stays and parses the result back.
func TestBuildCalendar(t *testing.T) {
	t.Parallel()

	today := residency.Date(2022, time.March, 15)
	stays := []residency.Stay{
		{Enter: residency.Date(2021, time.March, 5), Exit: residency.Date(2021, time.June, 13)},
		{Enter: residency.Date(2022, time.March, 1), Exit: today, Open: true},
	}

	body := BuildCalendar(stays, "Russia", time.Date(2022, time.March, 15, 10, 0, 0, 0, time.UTC))

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	require.Equal(t, StayUID(stays[0]), events[0].GetProperty(ical.ComponentPropertyUniqueId).Value)
	require.Equal(t, "In Russia (100 days)", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	require.Equal(t, "20210305", events[0].GetProperty(ical.ComponentPropertyDtStart).Value)
	require.Equal(t, "20210613", events[0].GetProperty(ical.ComponentPropertyDtEnd).Value)

	require.Equal(t, "In Russia (ongoing)", events[1].GetProperty(ical.ComponentPropertySummary).Value)
	require.Equal(t, "20220315", events[1].GetProperty(ical.ComponentPropertyDtEnd).Value)
}

// TestStayUIDIsStable gives the same stay the same UID and different stays different ones.
func TestStayUIDIsStable(t *testing.T) {
	t.Parallel()

	a := residency.Stay{Enter: residency.Date(2021, time.March, 5)}
	b := residency.Stay{Enter: residency.Date(2021, time.August, 10)}

	require.Equal(t, StayUID(a), StayUID(a))
	require.NotEqual(t, StayUID(a), StayUID(b))
}

// TestRun_WritesFile exports the log to an .ics file.
func TestRun_WritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "crossings.txt")
	outPath := filepath.Join(dir, "stays.ics")

	require.NoError(t, os.WriteFile(logPath, []byte("10.01.22 in\n14.03.22 out\n"), config.DefaultFilePermissions))

	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(dir, "missing.yaml"),
		LogFile:    logPath,
		Today:      "2022-03-15",
		OutFile:    outPath,
	})
	require.NoError(t, err)

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(body), "In Russia (63 days)")
}
