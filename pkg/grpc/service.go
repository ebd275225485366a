package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages are google.protobuf.Struct on both sides, so the service needs no
// generated code beyond this descriptor.
const (
	ServiceName = "sleeptelemetry.v1.TelemetryService"

	MethodIngestSensor      = "/" + ServiceName + "/IngestSensor"
	MethodIngestSleepStages = "/" + ServiceName + "/IngestSleepStages"
	MethodGetSleepStages    = "/" + ServiceName + "/GetSleepStages"
	MethodGetAnalysis       = "/" + ServiceName + "/GetAnalysis"
	MethodSetLimiter        = "/" + ServiceName + "/SetLimiter"
)

type TelemetryServiceServer interface {
	IngestSensor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	IngestSleepStages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSleepStages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetAnalysis(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv TelemetryServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TelemetryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TelemetryServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var TelemetryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TelemetryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "IngestSensor", Handler: unaryHandler(MethodIngestSensor, TelemetryServiceServer.IngestSensor)},
		{MethodName: "IngestSleepStages", Handler: unaryHandler(MethodIngestSleepStages, TelemetryServiceServer.IngestSleepStages)},
		{MethodName: "GetSleepStages", Handler: unaryHandler(MethodGetSleepStages, TelemetryServiceServer.GetSleepStages)},
		{MethodName: "GetAnalysis", Handler: unaryHandler(MethodGetAnalysis, TelemetryServiceServer.GetAnalysis)},
		{MethodName: "SetLimiter", Handler: unaryHandler(MethodSetLimiter, TelemetryServiceServer.SetLimiter)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sleeptelemetry/v1/telemetry.proto",
}

func RegisterTelemetryServiceServer(s grpc.ServiceRegistrar, srv TelemetryServiceServer) {
	s.RegisterService(&TelemetryServiceDesc, srv)
}

type TelemetryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTelemetryServiceClient(cc grpc.ClientConnInterface) *TelemetryServiceClient {
	return &TelemetryServiceClient{cc: cc}
}

func (c *TelemetryServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TelemetryServiceClient) IngestSensor(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodIngestSensor, in, opts...)
}

func (c *TelemetryServiceClient) IngestSleepStages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodIngestSleepStages, in, opts...)
}

func (c *TelemetryServiceClient) GetSleepStages(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetSleepStages, in, opts...)
}

func (c *TelemetryServiceClient) GetAnalysis(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAnalysis, in, opts...)
}

func (c *TelemetryServiceClient) SetLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSetLimiter, in, opts...)
}
