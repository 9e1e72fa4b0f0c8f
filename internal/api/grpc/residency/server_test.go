package residency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/residency/internal/domain/residency"
)

var errTestStorage = errors.New("test storage error")

// fakeService evaluates requests with the domain rules or returns a fixed error.
type fakeService struct {
	// err is returned instead of evaluating when set.
	err error
	// last is the most recent decoded request.
	last *EvaluateRequest
}

// Evaluate records the request and evaluates its crossings.
func (f *fakeService) Evaluate(_ context.Context, req *EvaluateRequest) (*domain.Result, error) {
	f.last = req

	if f.err != nil {
		return nil, f.err
	}

	return domain.Evaluate(req.Crossings, req.Today)
}

// TestServer_Evaluate_Validation ensures malformed requests return InvalidArgument.
func TestServer_Evaluate_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Evaluate(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	for _, fields := range []map[string]any{
		{FieldToday: "15.03.2022"},
		{FieldToday: 20220315},
		{FieldCrossings: "10.01.22 in"},
		{FieldCrossings: []any{map[string]any{FieldDate: "2022-01-10", FieldKind: "inside"}}},
		{FieldCrossings: []any{"2022-01-10 in"}},
	} {
		msg, err := structpb.NewStruct(fields)
		require.NoError(t, err)

		_, err = s.Evaluate(context.Background(), msg)
		require.Equal(t, codes.InvalidArgument, status.Code(err), fields)
	}
}

// TestServer_Evaluate_Errors maps service errors to status codes.
func TestServer_Evaluate_Errors(t *testing.T) {
	t.Parallel()

	msg, err := EncodeRequest(&EvaluateRequest{Today: domain.Date(2022, time.March, 15)})
	require.NoError(t, err)

	s := NewServer(&fakeService{err: domain.ErrInvalidSequence})
	_, err = s.Evaluate(context.Background(), msg)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	s = NewServer(&fakeService{err: errTestStorage})
	_, err = s.Evaluate(context.Background(), msg)
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestServer_Roundtrip encodes a request, evaluates it and decodes the response.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	service := new(fakeService)
	s := NewServer(service)

	today := domain.Date(2022, time.March, 15)
	req := &EvaluateRequest{
		Today: today,
		Crossings: []domain.Event{
			domain.NewEvent(domain.Enter, domain.Date(2021, time.April, 1)),
		},
		Actor: &Actor{
			Hostname: "test-hostname",
			Username: "test-user",
		},
	}

	msg, err := EncodeRequest(req)
	require.NoError(t, err)

	resp, err := s.Evaluate(context.Background(), msg)
	require.NoError(t, err)
	require.Equal(t, req, service.last)
	require.Equal(t, "test-user@test-hostname", service.last.Actor.String())

	result, err := DecodeResult(resp)
	require.NoError(t, err)
	require.Equal(t, 348, result.Days)
	require.True(t, result.IsResident)
	require.Equal(t, domain.Date(2021, time.October, 1), result.ExpiresAt)
	require.Equal(t, domain.Date(2021, time.March, 15), result.Window.Start)
	require.Equal(t, "2021-03-15", resp.GetFields()[FieldWindowStart].GetStringValue())
	require.InDelta(t, domain.Threshold, resp.GetFields()[FieldThreshold].GetNumberValue(), 0)
}

// TestDecodeRequest_Defaults leaves today and crossings unset when absent.
func TestDecodeRequest_Defaults(t *testing.T) {
	t.Parallel()

	req, err := DecodeRequest(&structpb.Struct{})
	require.NoError(t, err)
	require.True(t, req.Today.IsZero())
	require.Nil(t, req.Crossings)
	require.Nil(t, req.Actor)

	// An explicit empty list is kept so the server evaluates it instead of its own log.
	msg, err := EncodeRequest(&EvaluateRequest{Crossings: []domain.Event{}})
	require.NoError(t, err)

	req, err = DecodeRequest(msg)
	require.NoError(t, err)
	require.NotNil(t, req.Crossings)
	require.Empty(t, req.Crossings)
}
