package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "skillbloom:"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Addr returns the Redis address in "host:port" format.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type redisStore struct {
	client redis.UniversalClient
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, c RedisConfig) (*redis.Client, error) {
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        c.Addr(),
		Password:    c.Password,
		DB:          c.DB,
		DialTimeout: c.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, c.DialTimeout)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewRedisStore keeps each entry under skillbloom:{learner}:{key} without expiry.
func NewRedisStore(client redis.UniversalClient) KeyValueStore {
	return &redisStore{client: client}
}

func redisKey(learnerID, key string) string {
	return redisKeyPrefix + learnerID + ":" + key
}

func (r *redisStore) Get(ctx context.Context, learnerID, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisKey(learnerID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *redisStore) Put(ctx context.Context, learnerID, key string, value []byte) error {
	return r.client.Set(ctx, redisKey(learnerID, key), value, 0).Err()
}
