package awslambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
)

// AnalysisEvent is the async invoke payload {"session_uuid": ...}. When the
// function sits behind an API gateway the same object arrives in Body.
type AnalysisEvent struct {
	SessionID string `json:"session_uuid"`
	Body      string `json:"body,omitempty"`
}

type Handler struct {
	Sleep *sleep.Sleep
}

func response(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Error processing session data"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return response(status, map[string]any{"error": message})
}

// HandleRequest runs one analysis. Failures are reported in the status body
// and never as a returned error, so async invocations are not retried.
func (h *Handler) HandleRequest(ctx context.Context, event AnalysisEvent) (events.APIGatewayProxyResponse, error) {
	logger := common.GetLoggerWith(common.LoggerNameLambda)

	if event.SessionID == "" && event.Body != "" {
		var inner AnalysisEvent
		if err := json.Unmarshal([]byte(event.Body), &inner); err != nil {
			return errorResponse(http.StatusBadRequest, "Invalid JSON format"), nil
		}
		event.SessionID = inner.SessionID
	}

	logger.Info("Analysis requested", zap.String("session_uuid", event.SessionID))

	result, err := h.Sleep.Analysis.AnalyzeSession(ctx, event.SessionID)
	if err != nil {
		status := sleep.HttpStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Analysis failed", zap.String("session_uuid", event.SessionID), zap.Error(err))
		}
		return errorResponse(status, sleep.ErrorMessage(err, "Error processing session data")), nil
	}

	return response(http.StatusOK, map[string]any{
		"message":  "Analysis completed successfully",
		"score":    result.Score,
		"analysis": result.Analysis,
	}), nil
}
