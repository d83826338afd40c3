package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hovertrans/backend/internal/model"
)

const (
	redisKeyPrefix   = "hovertrans:settings:"
	redisFieldValue  = "value"
	redisFieldUpdate = "updated_at"
)

type redisSettingsRepository struct {
	client redis.UniversalClient
}

// NewRedisSettingsRepository creates a settings repository that keeps every
// setting in its own redis hash under the hovertrans:settings: namespace.
func NewRedisSettingsRepository(client redis.UniversalClient) SettingsRepository {
	return &redisSettingsRepository{client: client}
}

func (r *redisSettingsRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	value, ok := fields[redisFieldValue]
	if !ok {
		return nil, nil
	}
	s := &model.Setting{Key: key, Value: value}
	s.UpdatedAt, _ = parseTime(fields[redisFieldUpdate])
	return s, nil
}

func (r *redisSettingsRepository) Set(ctx context.Context, key, value string) error {
	return r.client.HSet(ctx, redisKeyPrefix+key,
		redisFieldValue, value,
		redisFieldUpdate, formatTime(time.Now()),
	).Err()
}

func (r *redisSettingsRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}
