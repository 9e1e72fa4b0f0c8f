// Package export writes the stays from the crossing log as an iCalendar file,
// one all-day event per stay, so they can be reviewed in any calendar app.
package export
