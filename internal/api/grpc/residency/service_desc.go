package residency

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "residency.v1.ResidencyService"
	// EvaluateMethod is the full method name of Evaluate.
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
)

// ResidencyServiceServer is the server API of the evaluation service.
type ResidencyServiceServer interface {
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the evaluation service for grpc.Server.
//
//nolint:gochecknoglobals // grpc.ServiceDesc is registered by address.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ResidencyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "residency/v1/residency.proto",
}

// RegisterResidencyServiceServer registers srv on the gRPC server.
func RegisterResidencyServiceServer(s grpc.ServiceRegistrar, srv ResidencyServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func evaluateHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ResidencyServiceServer).Evaluate(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EvaluateMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ResidencyServiceServer).Evaluate(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}
