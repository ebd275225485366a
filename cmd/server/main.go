package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/completion"
	"liyu1981.xyz/sleep-telemetry-service/pkg/config"
	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
	sleepGrpc "liyu1981.xyz/sleep-telemetry-service/pkg/grpc"
	sleepHttp "liyu1981.xyz/sleep-telemetry-service/pkg/http"
	"liyu1981.xyz/sleep-telemetry-service/pkg/mqtt"
	"liyu1981.xyz/sleep-telemetry-service/pkg/queue"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
)

const (
	localWorkers     = 4
	localQueueBuffer = 256
	shutdownTimeout  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := common.GetLogger()

	sleepStore, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer sleepStore.Close()

	sleepCore := &sleep.Sleep{
		Store: sleepStore,
	}
	sleepCore.WithDefaultServices()

	if assistant, err := completion.NewAssistantClient(cfg.Completion); err != nil {
		// analysis requests fail with a completion error until a key is configured
		logger.Warn("Completion client disabled", zap.Error(err))
	} else {
		sleepCore.Completion = assistant
	}

	switch cfg.Dispatch {
	case queue.DispatchLocal:
		dispatcher := queue.NewLocalDispatcher(sleepCore.AnalysisHandler(), localWorkers, localQueueBuffer)
		dispatcher.Start(ctx)
		defer dispatcher.Close()
		sleepCore.WithDispatcher(dispatcher)

	case queue.DispatchRedis:
		client := queue.NewRedisClient(cfg.Redis)
		defer client.Close()
		sleepCore.WithDispatcher(&queue.RedisDispatcher{Client: client, Stream: cfg.AnalysisStream})

		consumer := cfg.ConsumerName
		if consumer == "" {
			consumer = "worker-" + uuid.NewString()
		}
		worker := &queue.RedisWorker{
			Client:   client,
			Stream:   cfg.AnalysisStream,
			Group:    cfg.ConsumerGroup,
			Consumer: consumer,
			Handler:  sleepCore.AnalysisHandler(),
		}
		go func() {
			if err := worker.Start(ctx); err != nil {
				logger.Error("Analysis worker stopped", zap.Error(err))
			}
		}()

	case queue.DispatchLambda:
		awsCfg, err := db.LoadAWSConfig(ctx)
		if err != nil {
			log.Fatalf("failed to load aws config: %v", err)
		}
		sleepCore.WithDispatcher(queue.NewLambdaDispatcher(awsCfg, cfg.AnalysisLambdaName))
	}

	logger.Info("Analysis dispatch configured", zap.String("dispatch", cfg.Dispatch))

	limiterInfo := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	if cfg.GrpcHostPort != "" {
		telemetryServer := sleepGrpc.TelemetryServer{
			Sleep:            sleepCore,
			RateLimiterStore: sleep.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		}
		interceptor := telemetryServer.CreateRateLimitInterceptor([]string{
			sleepGrpc.MethodIngestSensor,
			sleepGrpc.MethodIngestSleepStages,
		})
		s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		sleepGrpc.RegisterTelemetryServiceServer(s, &telemetryServer)
		logger.Info("gRPC server created with:", limiterInfo)

		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		go func() {
			logger.Info("start gRPC server on " + cfg.GrpcHostPort)
			if err := s.Serve(listener); err != nil {
				logger.Error("grpc server failed to serve", zap.Error(err))
			}
		}()
		defer s.GracefulStop()
	}

	if cfg.MqttBroker != "" {
		subscriber := mqtt.NewSubscriber(mqtt.Options{
			Broker:   cfg.MqttBroker,
			ClientID: cfg.MqttClientID,
			Username: cfg.MqttUsername,
			Password: cfg.MqttPassword,
			Topic:    cfg.MqttSensorTopic,
			Qos:      mqtt.DefaultQos,
		}, sleepCore, sleep.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst))

		if err := subscriber.Start(); err != nil {
			log.Fatalf("failed to start mqtt subscriber: %v", err)
		}
		logger.Info("MQTT subscriber started", zap.String("broker", cfg.MqttBroker), zap.String("topic", cfg.MqttSensorTopic))
		defer subscriber.Stop()
	}

	rs := &sleepHttp.RestfulServer{
		Server:           gin.Default(),
		Sleep:            sleepCore,
		RateLimiterStore: sleep.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Setup()
	logger.Info("http server created with:", limiterInfo)

	httpServer := &http.Server{
		Addr:    cfg.HttpHostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
