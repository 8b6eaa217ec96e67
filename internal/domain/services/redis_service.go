package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"smartrent-http-service/internal/domain/models"
	"smartrent-http-service/internal/infrastructure/config"
)

// Cache TTLs
const (
	userCacheTTL      = 5 * time.Minute
	dashboardCacheTTL = 1 * time.Minute
)

// InterfaceRedisService defines the cache operations used by the services.
// All callers must tolerate a nil service (Redis disabled or unreachable).
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error

	CacheUser(user *models.User) error
	GetCachedUser(id string) (*models.User, error)
	InvalidateUser(id string) error

	CacheDashboard(userID string, stats interface{}) error
	GetCachedDashboard(userID string, dest interface{}) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheUser caches a user record by id
func (s *RedisService) CacheUser(user *models.User) error {
	return s.Set("user:"+user.ID, user, userCacheTTL)
}

// GetCachedUser returns a cached user record, or an error on miss
func (s *RedisService) GetCachedUser(id string) (*models.User, error) {
	var user models.User
	if err := s.Get("user:"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// InvalidateUser drops a cached user record
func (s *RedisService) InvalidateUser(id string) error {
	return s.Delete("user:" + id)
}

// CacheDashboard caches dashboard stats for a user
func (s *RedisService) CacheDashboard(userID string, stats interface{}) error {
	return s.Set("dashboard:"+userID, stats, dashboardCacheTTL)
}

// GetCachedDashboard returns cached dashboard stats, or an error on miss
func (s *RedisService) GetCachedDashboard(userID string, dest interface{}) error {
	return s.Get("dashboard:"+userID, dest)
}
