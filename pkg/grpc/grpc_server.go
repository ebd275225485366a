package grpc

import (
	"golang.org/x/time/rate"

	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
)

type TelemetryServer struct {
	Sleep            *sleep.Sleep
	RateLimiterStore *sleep.RateLimiterStore
}

func (s *TelemetryServer) GetLimiter(clientID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(clientID)
	}
}

func (s *TelemetryServer) CheckClientLimiter(clientID string) bool {
	limiter := s.GetLimiter(clientID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}
