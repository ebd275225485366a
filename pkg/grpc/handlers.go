package grpc

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
)

func validateID(id *string) z.ZogIssueList {
	var idValidator = z.String().Min(1).Required()
	return idValidator.Validate(id)
}

// reply builds {success, message, ...extra}.
func reply(success bool, message string, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{"success": success, "message": message}
	for k, v := range extra {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}

func validationFailure(err any) (*structpb.Struct, error) {
	return reply(false, fmt.Sprintf("validation error: %v", err), nil)
}

func serviceFailure(err error, fallback string) (*structpb.Struct, error) {
	if sleep.HttpStatus(err) >= 500 {
		common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Request failed", zap.Error(err))
	}
	return reply(false, sleep.ErrorMessage(err, fallback), nil)
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func (s *TelemetryServer) IngestSensor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID := stringField(req, "client")
	if err := validateID(&clientID); err != nil {
		return validationFailure(err)
	}

	data := req.GetFields()["data"].GetStructValue()
	if data == nil {
		return reply(false, "validation error: data is required", nil)
	}

	if err := s.Sleep.Sensor.IngestSensorData(ctx, clientID, data.AsMap()); err != nil {
		return serviceFailure(err, "Failed to store data")
	}

	return reply(true, "Data stored successfully!", nil)
}

func (s *TelemetryServer) IngestSleepStages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID := stringField(req, "client_uuid")
	if err := validateID(&clientID); err != nil {
		return validationFailure(err)
	}

	list := req.GetFields()["sleep_data"].GetListValue()
	if list == nil {
		return reply(false, "validation error: missing sleep_data list", nil)
	}

	if err := s.Sleep.Stage.IngestSleepStages(ctx, clientID, list.AsSlice()); err != nil {
		return serviceFailure(err, "Failed to store sleep data")
	}

	return reply(true, "Sleep data stored successfully", nil)
}

func (s *TelemetryServer) GetSleepStages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID := stringField(req, "session_uuid")
	if err := validateID(&sessionID); err != nil {
		return validationFailure(err)
	}

	spans, err := s.Sleep.Report.GetSleepStages(ctx, sessionID)
	if err != nil {
		return serviceFailure(err, "Failed to fetch sleep records")
	}

	records := common.Mapper(spans, func(span models.StageSpan) any {
		return map[string]any{
			"start_time": span.StartTime,
			"end_time":   span.EndTime,
			"stage":      span.Stage,
		}
	})
	return reply(true, "OK", map[string]any{"records": records})
}

func (s *TelemetryServer) GetAnalysis(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID := stringField(req, "session_uuid")
	if err := validateID(&sessionID); err != nil {
		return validationFailure(err)
	}

	result, err := s.Sleep.Report.GetAnalysis(ctx, sessionID)
	if err != nil {
		return serviceFailure(err, "Failed to fetch analysis data")
	}

	var analysis any
	if result.Analysis != nil {
		analysis = *result.Analysis
	}
	return reply(true, "OK", map[string]any{"analysis": analysis})
}

func (s *TelemetryServer) SetLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID := stringField(req, "client_uuid")
	if err := validateID(&clientID); err != nil {
		return validationFailure(err)
	}

	clientRate := req.GetFields()["rate"].GetNumberValue()
	var rateValidator = z.Float64().GT(0).Required()
	if err := rateValidator.Validate(&clientRate); err != nil {
		return validationFailure(err)
	}

	clientBurst := int(req.GetFields()["burst"].GetNumberValue())
	var burstValidator = z.Int().GT(0).Required()
	if err := burstValidator.Validate(&clientBurst); err != nil {
		return validationFailure(err)
	}

	if s.RateLimiterStore == nil {
		return reply(false, "RateLimiterStore is not used. No effect.", nil)
	}

	s.RateLimiterStore.SetLimiter(clientID, rate.Limit(clientRate), clientBurst)
	return reply(true, "OK", nil)
}
