package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/sleep"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

var (
	errEmptyBody     = errors.New("empty request body")
	errBodyNotObject = errors.New("request body is not an object")
)

// readJSONObject decodes a JSON object keeping numbers as json.Number.
func readJSONObject(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var body any
	if err := decoder.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, err
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, errBodyNotObject
	}
	return obj, nil
}

func validateID(id *string) z.ZogIssueList {
	var idValidator = z.String().Min(1).Required()
	return idValidator.Validate(id)
}

func abortWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message, "success": false})
}

func abortWithServiceError(c *gin.Context, err error, fallback string) {
	status := sleep.HttpStatus(err)
	if status >= http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	abortWithError(c, status, sleep.ErrorMessage(err, fallback))
}

// firstQueryValue returns the first non-empty value of a repeated query key.
func firstQueryValue(c *gin.Context, key string) string {
	for _, v := range c.QueryArray(key) {
		if v != "" {
			return v
		}
	}
	return ""
}

func (rs *RestfulServer) PostSensorData(c *gin.Context) {
	body, err := readJSONObject(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	clientID, _ := body["client"].(string)
	if issues := validateID(&clientID); issues != nil {
		abortWithError(c, http.StatusBadRequest, "client is required")
		return
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "data is required")
		return
	}

	if !rs.CheckClientLimiter(clientID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Sleep.Sensor.IngestSensorData(c.Request.Context(), clientID, data); err != nil {
		abortWithServiceError(c, err, "Failed to store data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data stored successfully!"})
}

func (rs *RestfulServer) Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

func (rs *RestfulServer) PostSleepData(c *gin.Context) {
	clientID := firstQueryValue(c, "client_uuid")
	if issues := validateID(&clientID); issues != nil {
		abortWithError(c, http.StatusBadRequest, "client_uuid is required as query parameter")
		return
	}

	if !rs.CheckClientLimiter(clientID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	body, err := readJSONObject(c.Request.Body)
	switch {
	case errors.Is(err, errEmptyBody), errors.Is(err, errBodyNotObject):
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	case err != nil:
		abortWithError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	case len(body) == 0:
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	records, ok := body["sleep_data"].([]any)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: missing sleep_data list")
		return
	}

	if err := rs.Sleep.Stage.IngestSleepStages(c.Request.Context(), clientID, records); err != nil {
		abortWithServiceError(c, err, "Failed to store sleep data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sleep data stored successfully", "success": true})
}

type AnalysisRequest struct {
	SessionID string `json:"session_uuid"`
}

func (rs *RestfulServer) PostAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if issues := validateID(&req.SessionID); issues != nil {
		abortWithError(c, http.StatusBadRequest, "session_uuid is required")
		return
	}

	result, err := rs.Sleep.Analysis.AnalyzeSession(c.Request.Context(), req.SessionID)
	if err != nil {
		abortWithServiceError(c, err, "Error processing session data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Analysis completed successfully",
		"score":    result.Score,
		"analysis": result.Analysis,
	})
}

func (rs *RestfulServer) GetSleepStages(c *gin.Context) {
	sessionID := c.Query("session_uuid")
	if issues := validateID(&sessionID); issues != nil {
		abortWithError(c, http.StatusBadRequest, "session_uuid is required as query parameter")
		return
	}

	spans, err := rs.Sleep.Report.GetSleepStages(c.Request.Context(), sessionID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to fetch sleep records")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": spans})
}

func (rs *RestfulServer) GetAnalysis(c *gin.Context) {
	sessionID := c.Query("session_uuid")
	if issues := validateID(&sessionID); issues != nil {
		abortWithError(c, http.StatusBadRequest, "session_uuid is required as query parameter")
		return
	}

	result, err := rs.Sleep.Report.GetAnalysis(c.Request.Context(), sessionID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to fetch analysis data")
		return
	}

	// score is not part of this view
	c.JSON(http.StatusOK, gin.H{"analysis": result.Analysis})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	clientID := c.Param("client_uuid")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(clientID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
