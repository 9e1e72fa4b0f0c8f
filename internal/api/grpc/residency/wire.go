package residency

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/residency/internal/domain/residency"
)

// Field names of the request and response structs.
const (
	FieldToday       = "today"
	FieldCrossings   = "crossings"
	FieldDate        = "date"
	FieldKind        = "kind"
	FieldActor       = "actor"
	FieldHostname    = "hostname"
	FieldUsername    = "username"
	FieldWindowStart = "window_start"
	FieldDays        = "days"
	FieldIsResident  = "is_resident"
	FieldThreshold   = "threshold"
	FieldExpiresAt   = "expires_at"
)

// errMalformedMessage is returned for structs that do not follow the message layout.
var errMalformedMessage = errors.New("malformed message")

// Actor identifies who asked for an evaluation.
type Actor struct {
	// Hostname is the machine the request came from.
	Hostname string
	// Username is the system user who sent the request.
	Username string
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return a.Username + "@" + a.Hostname
}

// EvaluateRequest is the decoded Evaluate request.
type EvaluateRequest struct {
	// Today is the evaluation date; zero means the server's current date.
	Today time.Time
	// Crossings is the log to evaluate; nil means the server's own log.
	Crossings []domain.Event
	// Actor is the optional requester.
	Actor *Actor
}

// EncodeRequest builds the Evaluate request struct.
func EncodeRequest(req *EvaluateRequest) (*structpb.Struct, error) {
	fields := make(map[string]any, 3)

	if !req.Today.IsZero() {
		fields[FieldToday] = req.Today.Format(time.DateOnly)
	}

	if req.Crossings != nil {
		crossings := make([]any, 0, len(req.Crossings))
		for _, event := range req.Crossings {
			crossings = append(crossings, map[string]any{
				FieldDate: event.Date.Format(time.DateOnly),
				FieldKind: event.Kind.String(),
			})
		}

		fields[FieldCrossings] = crossings
	}

	if req.Actor != nil {
		fields[FieldActor] = map[string]any{
			FieldHostname: req.Actor.Hostname,
			FieldUsername: req.Actor.Username,
		}
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	return msg, nil
}

// DecodeRequest parses an Evaluate request struct.
func DecodeRequest(msg *structpb.Struct) (*EvaluateRequest, error) {
	req := new(EvaluateRequest)
	fields := msg.GetFields()

	if value, ok := fields[FieldToday]; ok {
		today, err := parseDate(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FieldToday, err)
		}

		req.Today = today
	}

	if value, ok := fields[FieldCrossings]; ok {
		list := value.GetListValue()
		if list == nil {
			return nil, fmt.Errorf("%w: %s must be a list", errMalformedMessage, FieldCrossings)
		}

		req.Crossings = make([]domain.Event, 0, len(list.GetValues()))

		for i, item := range list.GetValues() {
			event, err := decodeEvent(item.GetStructValue())
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", FieldCrossings, i, err)
			}

			req.Crossings = append(req.Crossings, event)
		}
	}

	if actor := fields[FieldActor].GetStructValue(); actor != nil {
		req.Actor = &Actor{
			Hostname: actor.GetFields()[FieldHostname].GetStringValue(),
			Username: actor.GetFields()[FieldUsername].GetStringValue(),
		}
	}

	return req, nil
}

// EncodeResult builds the Evaluate response struct.
func EncodeResult(result *domain.Result) (*structpb.Struct, error) {
	fields := map[string]any{
		FieldToday:       result.Today.Format(time.DateOnly),
		FieldWindowStart: result.Window.Start.Format(time.DateOnly),
		FieldDays:        result.Days,
		FieldIsResident:  result.IsResident,
		FieldThreshold:   domain.Threshold,
	}

	if !result.ExpiresAt.IsZero() {
		fields[FieldExpiresAt] = result.ExpiresAt.Format(time.DateOnly)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return msg, nil
}

// DecodeResult parses an Evaluate response struct.
func DecodeResult(msg *structpb.Struct) (*domain.Result, error) {
	fields := msg.GetFields()

	today, err := parseDate(fields[FieldToday])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FieldToday, err)
	}

	result := &domain.Result{
		Today:      today,
		Window:     domain.NewWindow(today),
		Days:       int(fields[FieldDays].GetNumberValue()),
		IsResident: fields[FieldIsResident].GetBoolValue(),
	}

	if value, ok := fields[FieldExpiresAt]; ok {
		if result.ExpiresAt, err = parseDate(value); err != nil {
			return nil, fmt.Errorf("%s: %w", FieldExpiresAt, err)
		}
	}

	return result, nil
}

func decodeEvent(msg *structpb.Struct) (domain.Event, error) {
	if msg == nil {
		return domain.Event{}, fmt.Errorf("%w: crossing must be an object", errMalformedMessage)
	}

	date, err := parseDate(msg.GetFields()[FieldDate])
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", FieldDate, err)
	}

	kind, err := domain.ParseKind(msg.GetFields()[FieldKind].GetStringValue())
	if err != nil {
		return domain.Event{}, err
	}

	return domain.NewEvent(kind, date), nil
}

func parseDate(value *structpb.Value) (time.Time, error) {
	s, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: date must be a string", errMalformedMessage)
	}

	date, err := time.Parse(time.DateOnly, s.StringValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return domain.Day(date), nil
}
