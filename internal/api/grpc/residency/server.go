package residency

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/residency/internal/domain/residency"
)

// Service abstracts the business operation the transport layer depends on.
type Service interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*domain.Result, error)
}

// Server implements ResidencyServiceServer on top of a Service.
type Server struct {
	// service evaluates decoded requests.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Evaluate decodes the request, runs the evaluation and encodes the result.
func (s *Server) Evaluate(ctx context.Context, msg *structpb.Struct) (*structpb.Struct, error) {
	if msg == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	req, err := DecodeRequest(msg)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.service.Evaluate(ctx, req)

	switch {
	case errors.Is(err, domain.ErrInvalidSequence):
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, "unable to evaluate crossings")
	}

	resp, err := EncodeResult(result)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return resp, nil
}
