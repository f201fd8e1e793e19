package repository

import (
	"context"
	"errors"
	"fmt"

	"pesapal_gateway/internal/infrastructure/kvstore"

	"github.com/redis/go-redis/v9"
)

const defaultSettingsKeyPrefix = "pesapal:settings"

// SettingRedisRepository is a kvstore.Store backed by Redis string keys.
// Values never expire.
type SettingRedisRepository struct {
	rdb    *redis.Client
	prefix string
}

var _ kvstore.Store = (*SettingRedisRepository)(nil)

func NewSettingRedisRepository(rdb *redis.Client) *SettingRedisRepository {
	return &SettingRedisRepository{
		rdb:    rdb,
		prefix: getenvDefault("SETTINGS_KEY_PREFIX", defaultSettingsKeyPrefix),
	}
}

func (r *SettingRedisRepository) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *SettingRedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

func (r *SettingRedisRepository) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.redisKey(key), value, 0).Err()
}
