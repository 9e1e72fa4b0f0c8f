package crossings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oshokin/residency/internal/domain/residency"
)

// ErrMalformedRecord is returned for lines that are not "<date> <in|out>".
var ErrMalformedRecord = errors.New("malformed crossing record")

// ParseRecord parses a single "<date> <in|out>" record.
// A leading "- " bullet is tolerated.
func ParseRecord(line, layout string) (residency.Event, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, "- "))

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return residency.Event{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	date, err := time.Parse(layout, fields[0])
	if err != nil {
		return residency.Event{}, fmt.Errorf("%w: parse date: %w", ErrMalformedRecord, err)
	}

	kind, err := residency.ParseKind(fields[1])
	if err != nil {
		return residency.Event{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return residency.NewEvent(kind, date), nil
}

// FormatRecord renders an event as a log line without the trailing newline.
func FormatRecord(event residency.Event, layout string) string {
	return event.Date.Format(layout) + " " + event.Kind.String()
}

// ParseLog reads every record from r. Blank lines and lines starting with
// "#" are skipped. Errors carry the 1-based line number.
func ParseLog(r io.Reader, layout string) ([]residency.Event, error) {
	var (
		events  []residency.Event
		scanner = bufio.NewScanner(r)
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		event, err := ParseRecord(line, layout)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan crossing log: %w", err)
	}

	return events, nil
}
