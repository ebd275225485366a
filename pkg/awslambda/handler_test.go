package awslambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep/mocks"
	_ "liyu1981.xyz/sleep-telemetry-service/pkg/testing"
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockIAnalysis) {
	ctrl := gomock.NewController(t)
	mockIAnalysis := mocks.NewMockIAnalysis(ctrl)
	sleepCore := (&sleep.Sleep{}).WithServices(sleep.ServiceOpts{Analysis: mockIAnalysis})
	return &Handler{Sleep: sleepCore}, mockIAnalysis
}

func decodeBody(t *testing.T, resp string) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp), &body))
	return body
}

func TestHandleRequest(t *testing.T) {
	common.SetTestLoggerNop()
	h, mockIAnalysis := newTestHandler(t)

	score := 82.0
	text := "Deep sleep was steady."
	mockIAnalysis.EXPECT().
		AnalyzeSession(gomock.Any(), gomock.Eq("s1")).
		Return(&models.AnalysisResult{SessionID: "s1", Score: &score, Analysis: &text}, nil).
		Times(1)

	resp, err := h.HandleRequest(context.Background(), AnalysisEvent{SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Analysis completed successfully", body["message"])
	assert.Equal(t, 82.0, body["score"])
	assert.Equal(t, text, body["analysis"])
}

func TestHandleRequest_GatewayBody(t *testing.T) {
	common.SetTestLoggerNop()
	h, mockIAnalysis := newTestHandler(t)

	mockIAnalysis.EXPECT().
		AnalyzeSession(gomock.Any(), gomock.Eq("s2")).
		Return(&models.AnalysisResult{SessionID: "s2"}, nil).
		Times(1)

	resp, err := h.HandleRequest(context.Background(), AnalysisEvent{Body: `{"session_uuid":"s2"}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Nil(t, body["score"])
	assert.Nil(t, body["analysis"])

	resp, err = h.HandleRequest(context.Background(), AnalysisEvent{Body: "{"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON format", decodeBody(t, resp.Body)["error"])
}

func TestHandleRequest_Failures(t *testing.T) {
	common.SetTestLoggerNop()

	testCases := []struct {
		err     error
		status  int
		message string
	}{
		{err: sleep.NewValidationError("session_uuid is required"), status: http.StatusBadRequest, message: "session_uuid is required"},
		{err: sleep.ErrSessionNotFound, status: http.StatusNotFound, message: "Session data not found"},
		{err: sleep.ErrInvalidSession, status: http.StatusBadRequest, message: "Invalid session data"},
		{err: fmt.Errorf("%w: run failed", sleep.ErrCompletion), status: http.StatusInternalServerError, message: "Error processing GPT request"},
		{err: fmt.Errorf("%w: no block", sleep.ErrExtraction), status: http.StatusInternalServerError, message: "Error processing GPT request"},
		{err: fmt.Errorf("%w: table gone", sleep.ErrStorage), status: http.StatusInternalServerError, message: "Error processing session data"},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			h, mockIAnalysis := newTestHandler(t)
			mockIAnalysis.EXPECT().
				AnalyzeSession(gomock.Any(), gomock.Any()).
				Return(nil, tc.err).
				Times(1)

			resp, err := h.HandleRequest(context.Background(), AnalysisEvent{SessionID: "s3"})
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, decodeBody(t, resp.Body)["error"])
		})
	}
}
