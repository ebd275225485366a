package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

const (
	FieldClientUUID  = "client_uuid"
	FieldTime        = "time"
	FieldSessionUUID = "session_uuid"
)

// SensorReading is one row of sensor_data, keyed by (client_uuid, time).
// Fields holds the caller-defined measurements; numeric values are kept as
// json.Number so they round-trip as exact decimals.
type SensorReading struct {
	ClientID string
	Time     int64
	Fields   map[string]any
}

// Item flattens the reading into the stored row shape.
func (r SensorReading) Item() map[string]any {
	item := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		item[k] = v
	}
	item[FieldClientUUID] = r.ClientID
	item[FieldTime] = r.Time
	return item
}

func (r SensorReading) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Item())
}

// SensorRow is the relational shape of a SensorReading: the key columns
// plus the measurement fields as one JSON document.
type SensorRow struct {
	ClientID string         `gorm:"column:client_uuid;primaryKey"`
	Time     int64          `gorm:"column:time;primaryKey;autoIncrement:false"`
	Data     datatypes.JSON `gorm:"column:data"`
}

func (SensorRow) TableName() string {
	return "sensor_data"
}

type SleepStageRecord struct {
	ClientID  string `gorm:"column:client_uuid;index" json:"client_uuid" dynamodbav:"client_uuid"`
	SessionID string `gorm:"column:session_uuid;primaryKey" json:"session_uuid" dynamodbav:"session_uuid"`
	StartTime int64  `gorm:"column:start_time;primaryKey;autoIncrement:false" json:"start_time" dynamodbav:"start_time"`
	EndTime   int64  `gorm:"column:end_time" json:"end_time" dynamodbav:"end_time"`
	Stage     int    `gorm:"column:stage" json:"stage" dynamodbav:"stage"`
}

func (SleepStageRecord) TableName() string {
	return "sleep_records"
}

// AnalysisResult is the latest analysis of a session. Score and Analysis
// are nil when the model reply did not carry them.
type AnalysisResult struct {
	SessionID string   `gorm:"column:session_uuid;primaryKey" json:"session_uuid" dynamodbav:"session_uuid"`
	Score     *float64 `gorm:"column:score" json:"score" dynamodbav:"score"`
	Analysis  *string  `gorm:"column:analysis" json:"analysis" dynamodbav:"analysis"`
}

func (AnalysisResult) TableName() string {
	return "sleep_analysis"
}

// StageSpan is the read-back projection of a stage record.
type StageSpan struct {
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
	Stage     int   `json:"stage"`
}

func (r SleepStageRecord) Span() StageSpan {
	return StageSpan{StartTime: r.StartTime, EndTime: r.EndTime, Stage: r.Stage}
}
