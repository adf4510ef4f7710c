package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const materialListPrefix = "materials:list:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient is optional everywhere it is used: a nil *RedisClient is a
// disabled cache and every method becomes a no-op miss.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(ctx context.Context, cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisClient{Client: client}, nil
}

func (c *RedisClient) enabled() bool { return c != nil && c.Client != nil }

// GetJSON reports whether key was found and decoded into dest.
func (c *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisClient) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, ttl).Err()
}

// DeletePattern removes every key matching pattern using SCAN.
func (c *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	if !c.enabled() {
		return nil
	}
	iter := c.Client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisClient) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.Client.Close()
}

// MaterialListKey derives a cache key from a list filter.
func MaterialListKey(filter interface{}) (string, error) {
	data, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", materialListPrefix, md5.Sum(data)), nil
}

// InvalidateMaterialLists drops every cached material listing.
func (c *RedisClient) InvalidateMaterialLists(ctx context.Context) error {
	return c.DeletePattern(ctx, materialListPrefix+"*")
}
