package sleep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

// The assistant is configured to read this prefix followed by a JSON
// document with sleep_data and sensor_data.
const promptPrefix = "데이터: "

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

type promptData struct {
	SleepData  []models.SleepStageRecord `json:"sleep_data"`
	SensorData []models.SensorReading    `json:"sensor_data"`
}

// sessionSpan is min(start_time) and max(end_time), skipping zero values.
func sessionSpan(records []models.SleepStageRecord) (int64, int64, bool) {
	var start, end int64
	haveStart, haveEnd := false, false
	for _, r := range records {
		if r.StartTime != 0 && (!haveStart || r.StartTime < start) {
			start, haveStart = r.StartTime, true
		}
		if r.EndTime != 0 && (!haveEnd || r.EndTime > end) {
			end, haveEnd = r.EndTime, true
		}
	}
	return start, end, haveStart && haveEnd
}

func composePrompt(records []models.SleepStageRecord, readings []models.SensorReading) (string, error) {
	if readings == nil {
		readings = []models.SensorReading{}
	}
	data, err := json.Marshal(promptData{SleepData: records, SensorData: readings})
	if err != nil {
		return "", err
	}
	return promptPrefix + string(data), nil
}

// extractResult parses the first ```json fenced object in reply.
func extractResult(reply string) (map[string]any, error) {
	match := fencedJSON.FindStringSubmatch(reply)
	if match == nil {
		return nil, fmt.Errorf("%w: no fenced json block", ErrExtraction)
	}

	decoder := json.NewDecoder(strings.NewReader(match[1]))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing content after json object", ErrExtraction)
	}
	return payload, nil
}

func scoreFrom(v any) *float64 {
	var f float64
	var err error
	switch val := v.(type) {
	case json.Number:
		f, err = val.Float64()
	case float64:
		f = val
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &f
}

func analysisFrom(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return &val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		s := string(data)
		return &s
	}
}

func (s *Sleep) analyzeSession(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameSleepCore, common.LoggerCategoryAnalysis).
		With(zap.String("session_uuid", sessionID))

	if sessionID == "" {
		return nil, NewValidationError("session_uuid is required")
	}

	records, err := s.Store.QuerySleepStages(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load sleep records", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if len(records) == 0 {
		logger.Warn("No sleep records for session")
		return nil, ErrSessionNotFound
	}

	clientID := records[0].ClientID
	start, end, ok := sessionSpan(records)
	if !ok {
		logger.Warn("Session has no usable time span", zap.Int("records", len(records)))
		return nil, ErrInvalidSession
	}

	readings, err := s.Store.QuerySensorReadings(ctx, clientID, start, end)
	if err != nil {
		logger.Error("Failed to load sensor readings",
			zap.String("client_uuid", clientID),
			zap.Int64("start", start),
			zap.Int64("end", end),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	logger.Info("Session loaded",
		zap.String("client_uuid", clientID),
		zap.Int("sleep_records", len(records)),
		zap.Int("sensor_readings", len(readings)))

	prompt, err := composePrompt(records, readings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	if s.Completion == nil {
		return nil, fmt.Errorf("%w: completion service not available", ErrCompletion)
	}
	reply, err := s.Completion.Complete(ctx, prompt)
	if err != nil {
		logger.Error("Completion request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	payload, err := extractResult(reply)
	if err != nil {
		logger.Error("Completion reply had no result", zap.Error(err))
		return nil, err
	}

	result := models.AnalysisResult{
		SessionID: sessionID,
		Score:     scoreFrom(payload["score"]),
		Analysis:  analysisFrom(payload["analysis"]),
	}

	if err := s.Store.PutAnalysis(ctx, result); err != nil {
		logger.Error("Failed to store analysis", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	logger.Info("Analysis stored", zap.Reflect("score", result.Score))
	return &result, nil
}

type IAnalysisImpl struct {
	sleep *Sleep
}

func (ia *IAnalysisImpl) AnalyzeSession(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	return ia.sleep.analyzeSession(ctx, sessionID)
}

func (s *Sleep) GetIAnalysis() IAnalysis {
	return &IAnalysisImpl{sleep: s}
}
