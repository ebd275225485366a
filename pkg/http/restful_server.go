package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
)

type RestfulServer struct {
	Server           *gin.Engine
	Sleep            *sleep.Sleep
	RateLimiterStore *sleep.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(clientID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientID)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientID string) bool {
	limiter := rs.GetLimiter(clientID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(clientID string, clientRate float64, clientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(clientID, rate.Limit(clientRate), clientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.SetHTMLTemplate(viewTemplates)

	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.POST("/sensor-data", rs.PostSensorData)
	rs.Server.OPTIONS("/sleep-data", rs.Preflight)
	rs.Server.POST("/sleep-data", rs.PostSleepData)
	rs.Server.POST("/analysis", rs.PostAnalysis)

	rs.Server.GET("/sleep-stages", rs.GetSleepStages)
	rs.Server.GET("/analysis", rs.GetAnalysis)

	views := rs.Server.Group("/views")
	{
		views.GET("/sleep-records", rs.SleepRecordsView)
		views.GET("/analysis", rs.AnalysisView)
	}

	clients := rs.Server.Group("/clients/:client_uuid")
	{
		clients.POST("/limiter", rs.PostLimiter)
	}
}
