package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"amlwatch/internal/models"

	"github.com/redis/go-redis/v9"
)

// LimitTTL bounds how long a limit lookup is served from cache.
const LimitTTL = 5 * time.Minute

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// limitEntry records both hits and known misses so an unconfigured pair
// does not hit the database on every transaction.
type limitEntry struct {
	Limit *models.TransactionLimit `json:"limit"`
}

func (s *CacheService) limitKey(channel, tranType string) string {
	return s.GenerateKey("limit", strings.ToUpper(channel), strings.ToUpper(tranType))
}

// Limit caching
func (s *CacheService) GetLimit(ctx context.Context, channel, tranType string) (*models.TransactionLimit, bool, error) {
	var entry limitEntry
	found, err := s.Get(ctx, s.limitKey(channel, tranType), &entry)
	if err != nil || !found {
		return nil, false, err
	}
	return entry.Limit, true, nil
}

func (s *CacheService) SetLimit(ctx context.Context, channel, tranType string, limit *models.TransactionLimit) error {
	return s.Set(ctx, s.limitKey(channel, tranType), limitEntry{Limit: limit})
}

func (s *CacheService) InvalidateLimit(ctx context.Context, channel, tranType string) error {
	return s.Delete(ctx, s.limitKey(channel, tranType))
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
