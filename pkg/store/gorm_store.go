package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

// GormStore keeps the three tables in sqlite through gorm.
type GormStore struct {
	Db *db.DB
}

func NewGormStore(d *db.DB) *GormStore {
	return &GormStore{Db: d}
}

func (s *GormStore) PutSensorReading(ctx context.Context, reading models.SensorReading) error {
	logger := common.GetCategoryLogger(common.LoggerNameStore, common.LoggerCategoryGorm)

	data, err := encodeFields(reading.Fields)
	if err != nil {
		return err
	}

	row := models.SensorRow{
		ClientID: reading.ClientID,
		Time:     reading.Time,
		Data:     datatypes.JSON(data),
	}

	err = s.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_uuid"}, {Name: "time"}},
		UpdateAll: true,
	}).Create(&row).Error

	if err == nil {
		logger.Debug("Stored sensor reading", zap.String("client_uuid", row.ClientID), zap.Int64("time", row.Time))
	}
	return err
}

func (s *GormStore) QuerySensorReadings(ctx context.Context, clientID string, from, to int64) ([]models.SensorReading, error) {
	var rows []models.SensorRow
	err := s.Db.Conn.WithContext(ctx).
		Where("client_uuid = ? AND time BETWEEN ? AND ?", clientID, from, to).
		Order("time asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	readings := make([]models.SensorReading, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Data)
		if err != nil {
			return nil, err
		}
		readings = append(readings, models.SensorReading{ClientID: row.ClientID, Time: row.Time, Fields: fields})
	}
	return readings, nil
}

func (s *GormStore) PutSleepStage(ctx context.Context, record models.SleepStageRecord) error {
	return s.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_uuid"}, {Name: "start_time"}},
		UpdateAll: true,
	}).Create(&record).Error
}

func (s *GormStore) QuerySleepStages(ctx context.Context, sessionID string) ([]models.SleepStageRecord, error) {
	var records []models.SleepStageRecord
	err := s.Db.Conn.WithContext(ctx).
		Where("session_uuid = ?", sessionID).
		Order("start_time asc").
		Find(&records).Error
	return records, err
}

func (s *GormStore) ScanSleepStages(ctx context.Context) ([]models.SleepStageRecord, error) {
	var records []models.SleepStageRecord
	err := s.Db.Conn.WithContext(ctx).
		Order("session_uuid asc, start_time asc").
		Find(&records).Error
	return records, err
}

func (s *GormStore) PutAnalysis(ctx context.Context, result models.AnalysisResult) error {
	return s.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_uuid"}},
		UpdateAll: true,
	}).Create(&result).Error
}

func (s *GormStore) GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.Db.Conn.WithContext(ctx).First(&result, "session_uuid = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *GormStore) ScanAnalyses(ctx context.Context) ([]models.AnalysisResult, error) {
	var results []models.AnalysisResult
	err := s.Db.Conn.WithContext(ctx).Order("session_uuid asc").Find(&results).Error
	return results, err
}

// Close is a no-op: the gorm connection is the process-wide db singleton.
func (s *GormStore) Close() error {
	return nil
}
