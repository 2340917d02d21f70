// gRPC service bindings for fusion.proto. Hand-maintained alongside
// fusion.pb.go; keep in sync with the schema.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Requires gRPC-Go v1.64.0 or later for the generic stream types.
const _ = grpc.SupportPackageIsVersion9

const (
	FusionService_StreamUpdates_FullMethodName = "/fusion.v1.FusionService/StreamUpdates"
)

// FusionServiceClient is the client API for FusionService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
type FusionServiceClient interface {
	StreamUpdates(ctx context.Context, in *StreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[FusionUpdate], error)
}

type fusionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFusionServiceClient(cc grpc.ClientConnInterface) FusionServiceClient {
	return &fusionServiceClient{cc}
}

func (c *fusionServiceClient) StreamUpdates(ctx context.Context, in *StreamRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[FusionUpdate], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &FusionService_ServiceDesc.Streams[0], FusionService_StreamUpdates_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[StreamRequest, FusionUpdate]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type FusionService_StreamUpdatesClient = grpc.ServerStreamingClient[FusionUpdate]

// FusionServiceServer is the server API for FusionService service.
// All implementations must embed UnimplementedFusionServiceServer
// for forward compatibility.
type FusionServiceServer interface {
	StreamUpdates(*StreamRequest, grpc.ServerStreamingServer[FusionUpdate]) error
	mustEmbedUnimplementedFusionServiceServer()
}

// UnimplementedFusionServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedFusionServiceServer struct{}

func (UnimplementedFusionServiceServer) StreamUpdates(*StreamRequest, grpc.ServerStreamingServer[FusionUpdate]) error {
	return status.Errorf(codes.Unimplemented, "method StreamUpdates not implemented")
}
func (UnimplementedFusionServiceServer) mustEmbedUnimplementedFusionServiceServer() {}
func (UnimplementedFusionServiceServer) testEmbeddedByValue()                       {}

// UnsafeFusionServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to FusionServiceServer will
// result in compilation errors.
type UnsafeFusionServiceServer interface {
	mustEmbedUnimplementedFusionServiceServer()
}

func RegisterFusionServiceServer(s grpc.ServiceRegistrar, srv FusionServiceServer) {
	// If the following call panics, it indicates UnimplementedFusionServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&FusionService_ServiceDesc, srv)
}

func _FusionService_StreamUpdates_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(StreamRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(FusionServiceServer).StreamUpdates(m, &grpc.GenericServerStream[StreamRequest, FusionUpdate]{ServerStream: stream})
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type FusionService_StreamUpdatesServer = grpc.ServerStreamingServer[FusionUpdate]

// FusionService_ServiceDesc is the grpc.ServiceDesc for FusionService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var FusionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "fusion.v1.FusionService",
	HandlerType: (*FusionServiceServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamUpdates",
			Handler:       _FusionService_StreamUpdates_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "internal/fusion/stream/pb/fusion.proto",
}
