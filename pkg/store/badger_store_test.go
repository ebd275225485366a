package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/sleep-telemetry-service/pkg/db"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

func newMemoryBadgerStore(t *testing.T) *BadgerStore {
	bdb, err := db.OpenBadger("")
	require.NoError(t, err)
	s, err := NewBadgerStore(bdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSortableInt(t *testing.T) {
	values := []int64{-5, -1, 0, 1, 255, 256, 1_700_000_000}
	for i := 1; i < len(values); i++ {
		assert.Less(t, string(sortableInt(values[i-1])), string(sortableInt(values[i])))
	}
}

func TestBadgerStore_SensorRange(t *testing.T) {
	s := newMemoryBadgerStore(t)
	ctx := context.Background()

	for _, ts := range []int64{99, 100, 150, 200, 201} {
		require.NoError(t, s.PutSensorReading(ctx, models.SensorReading{
			ClientID: "client-a",
			Time:     ts,
			Fields:   map[string]any{"spo2": json.Number("97.5"), "nested": map[string]any{"x": json.Number("1")}},
		}))
	}
	require.NoError(t, s.PutSensorReading(ctx, models.SensorReading{ClientID: "client-ab", Time: 150}))

	readings, err := s.QuerySensorReadings(ctx, "client-a", 100, 200)
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, int64(100), readings[0].Time)
	assert.Equal(t, int64(200), readings[2].Time)
	assert.Equal(t, json.Number("97.5"), readings[1].Fields["spo2"])
	assert.Equal(t, map[string]any{"x": json.Number("1")}, readings[1].Fields["nested"])

	empty, err := s.QuerySensorReadings(ctx, "client-a", 300, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBadgerStore_StagesAndAnalysis(t *testing.T) {
	s := newMemoryBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutSleepStage(ctx, models.SleepStageRecord{ClientID: "c", SessionID: "s1", StartTime: 20, EndTime: 30, Stage: 2}))
	require.NoError(t, s.PutSleepStage(ctx, models.SleepStageRecord{ClientID: "c", SessionID: "s1", StartTime: 10, EndTime: 20, Stage: 1}))
	require.NoError(t, s.PutSleepStage(ctx, models.SleepStageRecord{ClientID: "c", SessionID: "s2", StartTime: 5, EndTime: 6, Stage: 3}))

	records, err := s.QuerySleepStages(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(10), records[0].StartTime)

	all, err := s.ScanSleepStages(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := s.GetAnalysis(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	score := 72.0
	text := "ok"
	require.NoError(t, s.PutAnalysis(ctx, models.AnalysisResult{SessionID: "s1", Score: &score, Analysis: &text}))

	got, err = s.GetAnalysis(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 72.0, *got.Score)

	analyses, err := s.ScanAnalyses(ctx)
	require.NoError(t, err)
	assert.Len(t, analyses, 1)
}
