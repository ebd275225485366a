package sleep

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

func (s *Sleep) getSleepStages(ctx context.Context, sessionID string) ([]models.StageSpan, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_uuid is required as query parameter")
	}

	records, err := s.Store.QuerySleepStages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if len(records) == 0 {
		return nil, ErrStagesNotFound
	}

	return common.Mapper(records, models.SleepStageRecord.Span), nil
}

func (s *Sleep) getAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_uuid is required as query parameter")
	}

	result, err := s.Store.GetAnalysis(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if result == nil {
		return nil, ErrAnalysisNotFound
	}
	return result, nil
}

func (s *Sleep) listSleepStages(ctx context.Context) ([]models.SleepStageRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameSleepCore, common.LoggerCategoryReport)

	records, err := s.Store.ScanSleepStages(ctx)
	if err != nil {
		logger.Error("Failed to scan sleep records", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return records, nil
}

func (s *Sleep) listAnalyses(ctx context.Context) ([]models.AnalysisResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameSleepCore, common.LoggerCategoryReport)

	results, err := s.Store.ScanAnalyses(ctx)
	if err != nil {
		logger.Error("Failed to scan analyses", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return results, nil
}

type IReportImpl struct {
	sleep *Sleep
}

func (ir *IReportImpl) GetSleepStages(ctx context.Context, sessionID string) ([]models.StageSpan, error) {
	return ir.sleep.getSleepStages(ctx, sessionID)
}

func (ir *IReportImpl) GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	return ir.sleep.getAnalysis(ctx, sessionID)
}

func (ir *IReportImpl) ListSleepStages(ctx context.Context) ([]models.SleepStageRecord, error) {
	return ir.sleep.listSleepStages(ctx)
}

func (ir *IReportImpl) ListAnalyses(ctx context.Context) ([]models.AnalysisResult, error) {
	return ir.sleep.listAnalyses(ctx)
}

func (s *Sleep) GetIReport() IReport {
	return &IReportImpl{sleep: s}
}
