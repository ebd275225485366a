package http

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

const (
	viewSleepRecords = "sleep_records"
	viewAnalysis     = "analysis"

	instantLayout = "2006-01-02T15:04:05Z"
	htmlMediaType = "text/html; charset=utf-8"
)

const viewsTemplate = `{{define "sleep_records"}}<html>
<head>
    <meta charset="UTF-8">
    <title>Sleep Records</title>
</head>
<body>
    <h1>Sleep Records</h1>
    <table border="1">
        <tr>
            <th>Session UUID</th>
            <th>Start Time</th>
            <th>End Time</th>
            <th>Stage</th>
        </tr>
        {{- range .}}
        <tr>
            <td>{{.SessionID}}</td>
            <td>{{.StartTime}}</td>
            <td>{{.EndTime}}</td>
            <td>{{.Stage}}</td>
        </tr>
        {{- end}}
    </table>
</body>
</html>
{{end}}{{define "analysis"}}<html>
<head>
    <meta charset="UTF-8">
    <title>Analysis Data</title>
</head>
<body>
    <h1>Analysis Data</h1>
    <table border="1">
        <tr>
            <th>Session UUID</th>
            <th>Score</th>
            <th>Analysis</th>
        </tr>
        {{- range .}}
        <tr>
            <td>{{.SessionID}}</td>
            <td>{{.Score}}</td>
            <td>{{.Analysis}}</td>
        </tr>
        {{- end}}
    </table>
</body>
</html>
{{end}}`

var viewTemplates = template.Must(template.New("views").Parse(viewsTemplate))

type sleepRecordRow struct {
	SessionID string
	StartTime string
	EndTime   string
	Stage     int
}

type analysisRow struct {
	SessionID string
	Score     string
	Analysis  string
}

// formatInstant renders epoch seconds as an ISO-8601 UTC instant.
func formatInstant(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(instantLayout)
}

func toSleepRecordRow(r models.SleepStageRecord) sleepRecordRow {
	return sleepRecordRow{
		SessionID: r.SessionID,
		StartTime: formatInstant(r.StartTime),
		EndTime:   formatInstant(r.EndTime),
		Stage:     r.Stage,
	}
}

func toAnalysisRow(r models.AnalysisResult) analysisRow {
	row := analysisRow{SessionID: r.SessionID}
	if r.Score != nil {
		row.Score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
	}
	if r.Analysis != nil {
		row.Analysis = *r.Analysis
	}
	return row
}

func htmlMessage(c *gin.Context, status int, message string) {
	body := "<html><body><h1>" + template.HTMLEscapeString(message) + "</h1></body></html>"
	c.Data(status, htmlMediaType, []byte(body))
}

func (rs *RestfulServer) SleepRecordsView(c *gin.Context) {
	records, err := rs.Sleep.Report.ListSleepStages(c.Request.Context())
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Failed to render sleep records", zap.Error(err))
		htmlMessage(c, http.StatusInternalServerError, "Failed to load sleep records")
		return
	}

	if len(records) == 0 {
		htmlMessage(c, http.StatusNotFound, "No sleep records found")
		return
	}

	c.HTML(http.StatusOK, viewSleepRecords, common.Mapper(records, toSleepRecordRow))
}

func (rs *RestfulServer) AnalysisView(c *gin.Context) {
	results, err := rs.Sleep.Report.ListAnalyses(c.Request.Context())
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Failed to render analysis data", zap.Error(err))
		htmlMessage(c, http.StatusInternalServerError, "Failed to load analysis data")
		return
	}

	if len(results) == 0 {
		htmlMessage(c, http.StatusNotFound, "No analysis data found")
		return
	}

	c.HTML(http.StatusOK, viewAnalysis, common.Mapper(results, toAnalysisRow))
}
