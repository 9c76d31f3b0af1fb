package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tunescout-poc/server/internal/agent/model"
	errx "github.com/tunescout-poc/server/internal/core/error"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// RedisMemoryRepository persists memory records as a Redis list per memory
// type, newest at the tail, trimmed to a retention cap.
type RedisMemoryRepository struct {
	rdb       redis.Cmdable
	retention int
	ttl       time.Duration
}

func NewRedisMemoryRepository(rdb redis.Cmdable, retention int, ttl time.Duration) *RedisMemoryRepository {
	if retention <= 0 {
		retention = 1000
	}
	return &RedisMemoryRepository{rdb: rdb, retention: retention, ttl: ttl}
}

func (r *RedisMemoryRepository) memoryKey(memoryType model.MemoryType) string {
	return fmt.Sprintf("memory:%s:records", memoryType)
}

func (r *RedisMemoryRepository) AddMemory(ctx context.Context, record model.MemoryRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	b, err := json.Marshal(record)
	if err != nil {
		logx.Error().Err(err).Str("memory_id", record.ID).Msg("failed to marshal memory record")
		return "", fmt.Errorf("marshal memory record: %w", err)
	}

	key := r.memoryKey(record.Type)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push memory record to redis")
		return "", errx.WrapRedis(err)
	}
	// keep only the newest records
	if err := r.rdb.LTrim(ctx, key, int64(-r.retention), -1).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to trim memory records")
		return "", errx.WrapRedis(err)
	}
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return "", errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on memory key")
		}
	}
	return record.ID, nil
}

func (r *RedisMemoryRepository) GetMemories(ctx context.Context, memoryType model.MemoryType, limit int) ([]model.MemoryRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	key := r.memoryKey(memoryType)

	rows, err := r.rdb.LRange(ctx, key, int64(-limit), -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.MemoryRecord{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load memory records from redis")
		return nil, errx.WrapRedis(err)
	}

	// stored oldest-first; return most recent first
	records := make([]model.MemoryRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		var rec model.MemoryRecord
		if err := json.Unmarshal([]byte(rows[i]), &rec); err != nil {
			logx.Error().Err(err).Str("key", key).Int("index", i).Msg("failed to unmarshal memory record")
			return nil, fmt.Errorf("unmarshal memory record at index %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

var _ model.MemoryRepository = (*RedisMemoryRepository)(nil)
