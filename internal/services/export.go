package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prehab-dev/prehab/internal/aggregate"
	"github.com/prehab-dev/prehab/internal/metrics"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SnapshotSink receives exercise snapshots. Sinks are write-only; nothing
// reads exported data back.
type SnapshotSink interface {
	Name() string
	Push(ctx context.Context, snapshots []types.ExerciseSnapshot) error
}

type ExportService struct {
	store *repository.Store
	sinks []SnapshotSink
	now   func() time.Time
	log   zerolog.Logger
}

func NewExportService(store *repository.Store, log zerolog.Logger, sinks ...SnapshotSink) *ExportService {
	return &ExportService{
		store: store,
		sinks: sinks,
		now:   time.Now,
		log:   log,
	}
}

// Export pushes a snapshot of every exercise requester may read to each sink
// and returns the number of snapshots.
func (s *ExportService) Export(ctx context.Context, requester uint) (int, error) {
	if len(s.sinks) == 0 {
		return 0, types.ErrExportUnavailable
	}

	exercises, err := s.store.Exercises.ListReadable(ctx, requester)
	if err != nil {
		return 0, err
	}

	if len(exercises) == 0 {
		return 0, fmt.Errorf("%w: no exercises to export", types.ErrNotFound)
	}

	snapshots, err := aggregate.ForStore(s.store).Snapshots(ctx, exercises, s.now().UTC())
	if err != nil {
		return 0, err
	}

	for _, sink := range s.sinks {
		if err := sink.Push(ctx, snapshots); err != nil {
			return 0, fmt.Errorf("%s: %w", sink.Name(), err)
		}

		metrics.RecordExport(sink.Name(), len(snapshots))
		s.log.Info().Str("sink", sink.Name()).Int("exported", len(snapshots)).Msg("exercise snapshots exported")
	}

	return len(snapshots), nil
}

const (
	redisIndexKey  = "exercises"
	redisKeyPrefix = "exercise:"
)

// NewRedisClient connects and pings within five seconds.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// RedisSink stores each snapshot as JSON under exercise:<id> and indexes the
// ids in the exercises set.
type RedisSink struct {
	client redis.UniversalClient
}

func NewRedisSink(client redis.UniversalClient) *RedisSink {
	return &RedisSink{client: client}
}

func (s *RedisSink) Name() string {
	return "redis"
}

func (s *RedisSink) Push(ctx context.Context, snapshots []types.ExerciseSnapshot) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, snapshot := range snapshots {
			body, err := json.Marshal(snapshot)
			if err != nil {
				return fmt.Errorf("failed to marshal snapshot %d: %w", snapshot.ID, err)
			}

			pipe.Set(ctx, RedisKey(snapshot.ID), body, 0)
			pipe.SAdd(ctx, redisIndexKey, snapshot.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}

	return nil
}

func RedisKey(exerciseID uint) string {
	return redisKeyPrefix + strconv.FormatUint(uint64(exerciseID), 10)
}

type snapshotBatch struct {
	Exercises  []types.ExerciseSnapshot `json:"exercises"`
	ExportedAt time.Time                `json:"exported_at"`
}

// HTTPSink POSTs the whole batch as JSON to a fixed URL.
type HTTPSink struct {
	url    string
	client *http.Client
}

func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSink) Name() string {
	return "http"
}

func (s *HTTPSink) Push(ctx context.Context, snapshots []types.ExerciseSnapshot) error {
	batch := snapshotBatch{Exercises: snapshots}
	if len(snapshots) > 0 {
		batch.ExportedAt = snapshots[0].ExportedAt
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal export payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("export endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
