package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "ludo.v1.LudoService"

// LudoServiceServer is the server API of ludo.v1.LudoService.
// Every message is a google.protobuf.Struct so no generated code is needed.
type LudoServiceServer interface {
	CreateRoom(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Join(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmColor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AvailableColors(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Start(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDie(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MoveDisc(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SwitchTurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlayerWon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Leave(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Snapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Stats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Connect(*structpb.Struct, grpc.ServerStream) error
}

type unaryMethod func(LudoServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LudoServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(LudoServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func connectHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LudoServiceServer).Connect(in, stream)
}

// FullMethod returns the path used on the wire and by interceptors.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var LudoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LudoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateRoom", LudoServiceServer.CreateRoom),
		unaryHandler("Join", LudoServiceServer.Join),
		unaryHandler("ConfirmColor", LudoServiceServer.ConfirmColor),
		unaryHandler("AvailableColors", LudoServiceServer.AvailableColors),
		unaryHandler("Start", LudoServiceServer.Start),
		unaryHandler("RollDie", LudoServiceServer.RollDie),
		unaryHandler("MoveDisc", LudoServiceServer.MoveDisc),
		unaryHandler("SwitchTurn", LudoServiceServer.SwitchTurn),
		unaryHandler("PlayerWon", LudoServiceServer.PlayerWon),
		unaryHandler("Leave", LudoServiceServer.Leave),
		unaryHandler("Snapshot", LudoServiceServer.Snapshot),
		unaryHandler("History", LudoServiceServer.History),
		unaryHandler("Stats", LudoServiceServer.Stats),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Connect",
			Handler:       connectHandler,
			ServerStreams: true,
		},
	},
	Metadata: "ludo/v1/ludo.proto",
}

func RegisterLudoServiceServer(s grpc.ServiceRegistrar, srv LudoServiceServer) {
	s.RegisterService(&LudoService_ServiceDesc, srv)
}
