package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
	"liyu1981.xyz/sleep-telemetry-service/pkg/models"
)

const keySep = byte(0)

var (
	tableSensor   = []byte("sensor_data")
	tableStages   = []byte("sleep_records")
	tableAnalysis = []byte("sleep_analysis")
)

type badgerSensorValue struct {
	ClientID string         `json:"client_uuid"`
	Time     int64          `json:"time"`
	Fields   map[string]any `json:"fields"`
}

// BadgerStore lays the three tables out in one badger keyspace as
// table \x00 partition \x00 sort-key, with zstd-compressed JSON values.
type BadgerStore struct {
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewBadgerStore(bdb *badger.DB) (*BadgerStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	return &BadgerStore{db: bdb, encoder: encoder, decoder: decoder}, nil
}

// sortableInt encodes v so byte order matches numeric order, negatives included.
func sortableInt(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v)^(1<<63))
	return b
}

func partitionPrefix(table []byte, partition string) []byte {
	key := make([]byte, 0, len(table)+len(partition)+2)
	key = append(key, table...)
	key = append(key, keySep)
	key = append(key, partition...)
	key = append(key, keySep)
	return key
}

func tablePrefix(table []byte) []byte {
	return append(append([]byte{}, table...), keySep)
}

func rowKey(table []byte, partition string, sort int64) []byte {
	return append(partitionPrefix(table, partition), sortableInt(sort)...)
}

func (s *BadgerStore) put(key []byte, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	compressed := s.encoder.EncodeAll(raw, make([]byte, 0, len(raw)))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, compressed)
	})
}

func (s *BadgerStore) decode(item *badger.Item, out any) error {
	return item.Value(func(val []byte) error {
		raw, err := s.decoder.DecodeAll(val, nil)
		if err != nil {
			return fmt.Errorf("failed to decompress value: %w", err)
		}
		return decodeJSON(raw, out)
	})
}

// scan visits every item whose key starts with prefix and is <= upper when
// upper is set, starting from seek.
func (s *BadgerStore) scan(ctx context.Context, prefix, seek, upper []byte, visit func(*badger.Item) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		if seek == nil {
			seek = prefix
		}
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			if upper != nil && bytes.Compare(item.Key(), upper) > 0 {
				break
			}
			if err := visit(item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) PutSensorReading(ctx context.Context, reading models.SensorReading) error {
	fields := reading.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return s.put(rowKey(tableSensor, reading.ClientID, reading.Time), badgerSensorValue{
		ClientID: reading.ClientID,
		Time:     reading.Time,
		Fields:   fields,
	})
}

func (s *BadgerStore) QuerySensorReadings(ctx context.Context, clientID string, from, to int64) ([]models.SensorReading, error) {
	readings := []models.SensorReading{}
	if from > to {
		return readings, nil
	}
	err := s.scan(ctx,
		partitionPrefix(tableSensor, clientID),
		rowKey(tableSensor, clientID, from),
		rowKey(tableSensor, clientID, to),
		func(item *badger.Item) error {
			var v badgerSensorValue
			if err := s.decode(item, &v); err != nil {
				return err
			}
			if v.Fields == nil {
				v.Fields = map[string]any{}
			}
			readings = append(readings, models.SensorReading{ClientID: v.ClientID, Time: v.Time, Fields: v.Fields})
			return nil
		})
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (s *BadgerStore) PutSleepStage(ctx context.Context, record models.SleepStageRecord) error {
	return s.put(rowKey(tableStages, record.SessionID, record.StartTime), record)
}

func (s *BadgerStore) collectStages(ctx context.Context, prefix []byte) ([]models.SleepStageRecord, error) {
	records := []models.SleepStageRecord{}
	err := s.scan(ctx, prefix, nil, nil, func(item *badger.Item) error {
		var record models.SleepStageRecord
		if err := s.decode(item, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BadgerStore) QuerySleepStages(ctx context.Context, sessionID string) ([]models.SleepStageRecord, error) {
	return s.collectStages(ctx, partitionPrefix(tableStages, sessionID))
}

func (s *BadgerStore) ScanSleepStages(ctx context.Context) ([]models.SleepStageRecord, error) {
	return s.collectStages(ctx, tablePrefix(tableStages))
}

func (s *BadgerStore) PutAnalysis(ctx context.Context, result models.AnalysisResult) error {
	return s.put(partitionPrefix(tableAnalysis, result.SessionID), result)
}

func (s *BadgerStore) GetAnalysis(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(partitionPrefix(tableAnalysis, sessionID))
		if err != nil {
			return err
		}
		return s.decode(item, &result)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *BadgerStore) ScanAnalyses(ctx context.Context) ([]models.AnalysisResult, error) {
	results := []models.AnalysisResult{}
	err := s.scan(ctx, tablePrefix(tableAnalysis), nil, nil, func(item *badger.Item) error {
		var result models.AnalysisResult
		if err := s.decode(item, &result); err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *BadgerStore) Close() error {
	s.decoder.Close()
	if err := s.encoder.Close(); err != nil {
		return err
	}
	return s.db.Close()
}
