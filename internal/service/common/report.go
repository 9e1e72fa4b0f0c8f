//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protojson"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
	"github.com/oshokin/residency/internal/domain/residency"
)

// DescribeEvent renders an event for people, e.g. "Entered Russia 2021-03-05".
func DescribeEvent(event residency.Event, country string) string {
	verb := "Entered"
	if event.Kind == residency.Exit {
		verb = "Exited"
	}

	return fmt.Sprintf("%s %s %s", verb, country, event.Date.Format(time.DateOnly))
}

// WriteReport prints the numbered crossings in date order followed by the verdict.
// events may be nil when only the verdict is known.
func WriteReport(w io.Writer, country string, events []residency.Event, result *residency.Result) error {
	var b strings.Builder

	for i, event := range residency.Sort(events) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, DescribeEvent(event, country))
	}

	if len(events) > 0 {
		b.WriteString("\n")
	}

	today := result.Today.Format(time.DateOnly)
	if result.IsResident {
		fmt.Fprintf(&b, "For %s you're a tax resident of %s\n", today, country)
	} else {
		fmt.Fprintf(&b, "For %s you're NOT a tax resident of %s\n", today, country)
	}

	fmt.Fprintf(&b, "Days in %s between %s and %s: %d (threshold %d)\n",
		country, result.Window.Start.Format(time.DateOnly), today, result.Days, residency.Threshold)

	if result.IsResident {
		fmt.Fprintf(&b, "Your tax residency expires: %s\n", result.ExpiresAt.Format(time.DateOnly))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// WriteJSON prints the result as the JSON form of the Evaluate response.
func WriteJSON(w io.Writer, result *residency.Result) error {
	msg, err := api.EncodeResult(result)
	if err != nil {
		return err
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}
