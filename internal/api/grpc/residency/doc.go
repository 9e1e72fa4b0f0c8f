// Package residency is the gRPC transport of the evaluation service.
//
// The service is registered by hand through ServiceDesc and exchanges
// google.protobuf.Struct messages, so no generated code is needed. The
// helpers in wire.go convert between those structs and domain values for
// both the server and the client.
package residency
