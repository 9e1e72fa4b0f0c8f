package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/oshokin/residency/internal/domain/residency"
)

// productID identifies the generator in PRODID.
const productID = "-//oshokin//residency//EN"

// stayNamespace seeds the stable UIDs of exported stays.
//
//nolint:gochecknoglobals // Constant UUID namespace.
var stayNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/oshokin/residency/stays"))

// StayUID returns a UID that stays the same across exports of the same stay.
func StayUID(stay residency.Stay) string {
	return uuid.NewSHA1(stayNamespace, []byte(stay.Enter.Format(time.DateOnly))).String() + "@residency"
}

// BuildCalendar renders the stays as a VCALENDAR. stamp becomes DTSTAMP of every event.
func BuildCalendar(stays []residency.Stay, country string, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Stays in " + country)

	for _, stay := range stays {
		event := cal.AddEvent(StayUID(stay))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(stay.Enter)

		// DTEND of an all-day event is exclusive, which matches how days are counted.
		end := stay.Exit
		if !end.After(stay.Enter) {
			end = stay.Enter.AddDate(0, 0, 1)
		}

		event.SetAllDayEndAt(end)

		if stay.Open {
			event.SetSummary(fmt.Sprintf("In %s (ongoing)", country))
			event.SetDescription(fmt.Sprintf("Entered %s, %d days so far.", stay.Enter.Format(time.DateOnly), stay.Days()))

			continue
		}

		event.SetSummary(fmt.Sprintf("In %s (%d days)", country, stay.Days()))
		event.SetDescription(fmt.Sprintf("Entered %s, exited %s.",
			stay.Enter.Format(time.DateOnly), stay.Exit.Format(time.DateOnly)))
	}

	return cal.Serialize()
}
