package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

// clientIDOf finds the caller id in a request, under client or client_uuid.
func clientIDOf(req any) string {
	s, ok := req.(*structpb.Struct)
	if !ok {
		return ""
	}
	for _, key := range []string{"client", "client_uuid"} {
		if v, ok := s.GetFields()[key]; ok && v.GetStringValue() != "" {
			return v.GetStringValue()
		}
	}
	return ""
}

func (s *TelemetryServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			if clientID := clientIDOf(req); clientID != "" {
				if !s.CheckClientLimiter(clientID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
