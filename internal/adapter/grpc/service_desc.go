package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the retirement service
const ServiceName = "retireplan.v1.RetirementService"

const (
	loadPlanMethod  = "/" + ServiceName + "/LoadPlan"
	savePlanMethod  = "/" + ServiceName + "/SavePlan"
	calculateMethod = "/" + ServiceName + "/Calculate"
)

// RetirementServiceServer is the server API for the retirement service.
// Plans travel as google.protobuf.Struct documents in the same shape as the HTTP API.
type RetirementServiceServer interface {
	LoadPlan(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SavePlan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRetirementServiceServer registers srv on s
func RegisterRetirementServiceServer(s grpc.ServiceRegistrar, srv RetirementServiceServer) {
	s.RegisterService(&RetirementServiceDesc, srv)
}

// RetirementServiceDesc describes the retirement service for grpc.Server
var RetirementServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RetirementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LoadPlan", Handler: loadPlanHandler},
		{MethodName: "SavePlan", Handler: savePlanHandler},
		{MethodName: "Calculate", Handler: calculateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "retireplan/v1/retirement.proto",
}

func loadPlanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RetirementServiceServer).LoadPlan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: loadPlanMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RetirementServiceServer).LoadPlan(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func savePlanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RetirementServiceServer).SavePlan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: savePlanMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RetirementServiceServer).SavePlan(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func calculateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RetirementServiceServer).Calculate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: calculateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RetirementServiceServer).Calculate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
