package sleep

import (
	"context"
	"time"

	"liyu1981.xyz/sleep-telemetry-service/pkg/completion"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
	"liyu1981.xyz/sleep-telemetry-service/pkg/queue"
	"liyu1981.xyz/sleep-telemetry-service/pkg/store"
)

type ISensor interface {
	IngestSensorData(ctx context.Context, clientID string, data map[string]any) error
}

type IStage interface {
	// IngestSleepStages validates every element of records before writing any
	// of them, then writes in order and enqueues an analysis for each record
	// flagged end.
	IngestSleepStages(ctx context.Context, clientID string, records []any) error
}

type IAnalysis interface {
	AnalyzeSession(ctx context.Context, sessionID string) (*models.AnalysisResult, error)
}

type IReport interface {
	GetSleepStages(ctx context.Context, sessionID string) ([]models.StageSpan, error)
	GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error)
	ListSleepStages(ctx context.Context) ([]models.SleepStageRecord, error)
	ListAnalyses(ctx context.Context) ([]models.AnalysisResult, error)
}

type Sleep struct {
	Store      store.Store
	Dispatcher queue.IDispatcher
	Completion completion.ICompletion

	Sensor   ISensor
	Stage    IStage
	Analysis IAnalysis
	Report   IReport

	// Now is the clock used to stamp sensor readings; nil means time.Now.
	Now func() time.Time
}

type ServiceOpts struct {
	Sensor   ISensor
	Stage    IStage
	Analysis IAnalysis
	Report   IReport
}

func (s *Sleep) WithServices(opts ServiceOpts) *Sleep {
	if opts.Sensor != nil {
		s.Sensor = opts.Sensor
	}
	if opts.Stage != nil {
		s.Stage = opts.Stage
	}
	if opts.Analysis != nil {
		s.Analysis = opts.Analysis
	}
	if opts.Report != nil {
		s.Report = opts.Report
	}
	return s
}

// WithDefaultServices wires every service to its implementation on s.
func (s *Sleep) WithDefaultServices() *Sleep {
	return s.WithServices(ServiceOpts{
		Sensor:   s.GetISensor(),
		Stage:    s.GetIStage(),
		Analysis: s.GetIAnalysis(),
		Report:   s.GetIReport(),
	})
}

func (s *Sleep) WithDispatcher(d queue.IDispatcher) *Sleep {
	s.Dispatcher = d
	return s
}

// AnalysisHandler adapts the analysis service to a queue job handler.
func (s *Sleep) AnalysisHandler() queue.Handler {
	return func(ctx context.Context, sessionID string) error {
		_, err := s.Analysis.AnalyzeSession(ctx, sessionID)
		return err
	}
}

func (s *Sleep) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
