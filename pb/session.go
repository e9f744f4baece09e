// Package pb describes the remote session service.
//
// The service is declared by hand with protobuf well-known types as messages
// so no code generation step is needed:
//
//	service Session {
//	  rpc Play(stream google.protobuf.StringValue) returns (stream google.protobuf.Struct);
//	}
//
// Clients stream action names and receive a frame after every change.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName      = "picotet.v1.Session"
	PlayFullMethod   = "/" + ServiceName + "/Play"
	SessionIDHeader  = "picotet-session-id"
	playStreamMethod = "Play"
)

type (
	PlayServer = grpc.BidiStreamingServer[wrapperspb.StringValue, structpb.Struct]
	PlayClient = grpc.BidiStreamingClient[wrapperspb.StringValue, structpb.Struct]
)

// SessionServer is the server API for the Session service.
type SessionServer interface {
	Play(PlayServer) error
}

// UnimplementedSessionServer can be embedded to have forward compatible
// implementations.
type UnimplementedSessionServer struct{}

func (UnimplementedSessionServer) Play(PlayServer) error {
	return status.Errorf(codes.Unimplemented, "method Play not implemented")
}

func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&Session_ServiceDesc, srv)
}

func playHandler(srv any, stream grpc.ServerStream) error {
	return srv.(SessionServer).Play(&grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

// Session_ServiceDesc is the grpc.ServiceDesc for the Session service.
var Session_ServiceDesc = grpc.ServiceDesc{ //nolint:revive
	ServiceName: ServiceName,
	HandlerType: (*SessionServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    playStreamMethod,
			Handler:       playHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "picotet/v1/session.proto",
}

// SessionClient is the client API for the Session service.
type SessionClient interface {
	Play(ctx context.Context, opts ...grpc.CallOption) (PlayClient, error)
}

type sessionClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionClient(cc grpc.ClientConnInterface) SessionClient {
	return &sessionClient{cc}
}

func (c *sessionClient) Play(ctx context.Context, opts ...grpc.CallOption) (PlayClient, error) {
	stream, err := c.cc.NewStream(ctx, &Session_ServiceDesc.Streams[0], PlayFullMethod, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}, nil
}

// Action wraps an action name for sending.
func Action(a string) *wrapperspb.StringValue {
	return wrapperspb.String(a)
}
