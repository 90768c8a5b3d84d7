package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "levelgen.api.v1alpha1.LevelService"

// Full method names
const (
	LevelServiceGenerateLevelFullMethodName = "/" + ServiceName + "/GenerateLevel"
	LevelServiceGetLevelFullMethodName      = "/" + ServiceName + "/GetLevel"
	LevelServiceListLevelsFullMethodName    = "/" + ServiceName + "/ListLevels"
	LevelServiceValidateLevelFullMethodName = "/" + ServiceName + "/ValidateLevel"
)

// LevelServiceServer is the server API of the level service
type LevelServiceServer interface {
	GenerateLevel(context.Context, *GenerateLevelRequest) (*GenerateLevelResponse, error)
	GetLevel(context.Context, *GetLevelRequest) (*GetLevelResponse, error)
	ListLevels(context.Context, *ListLevelsRequest) (*ListLevelsResponse, error)
	ValidateLevel(context.Context, *ValidateLevelRequest) (*ValidateLevelResponse, error)
}

// UnimplementedLevelServiceServer answers Unimplemented for every method
type UnimplementedLevelServiceServer struct{}

func (UnimplementedLevelServiceServer) GenerateLevel(context.Context, *GenerateLevelRequest) (*GenerateLevelResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateLevel not implemented")
}

func (UnimplementedLevelServiceServer) GetLevel(context.Context, *GetLevelRequest) (*GetLevelResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLevel not implemented")
}

func (UnimplementedLevelServiceServer) ListLevels(context.Context, *ListLevelsRequest) (*ListLevelsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLevels not implemented")
}

func (UnimplementedLevelServiceServer) ValidateLevel(context.Context, *ValidateLevelRequest) (*ValidateLevelResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateLevel not implemented")
}

// RegisterLevelServiceServer registers srv on s
func RegisterLevelServiceServer(s grpc.ServiceRegistrar, srv LevelServiceServer) {
	s.RegisterService(&LevelServiceDesc, srv)
}

// unaryHandler adapts one typed method to the grpc.MethodDesc handler shape
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(LevelServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LevelServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LevelServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LevelServiceDesc describes the level service for grpc.Server
var LevelServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LevelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateLevel",
			Handler:    unaryHandler(LevelServiceGenerateLevelFullMethodName, LevelServiceServer.GenerateLevel),
		},
		{
			MethodName: "GetLevel",
			Handler:    unaryHandler(LevelServiceGetLevelFullMethodName, LevelServiceServer.GetLevel),
		},
		{
			MethodName: "ListLevels",
			Handler:    unaryHandler(LevelServiceListLevelsFullMethodName, LevelServiceServer.ListLevels),
		},
		{
			MethodName: "ValidateLevel",
			Handler:    unaryHandler(LevelServiceValidateLevelFullMethodName, LevelServiceServer.ValidateLevel),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "levelgen/api/v1alpha1/level.json",
}
