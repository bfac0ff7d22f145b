package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// 邮箱验证码有效期
const EmailCodeExpiration = 5 * time.Minute

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheEmailCode(email, code string) error
	VerifyEmailCode(email, code string) (bool, error)
	CacheDashboardStats(key string, stats interface{}, expiration time.Duration) error
	GetDashboardStats(key string, dest interface{}) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 2 Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 4 CacheEmailCode 缓存邮箱验证码，有效期5分钟
func (s *RedisService) CacheEmailCode(email, code string) error {
	key := "email_code:" + email
	return s.Client.Set(s.Ctx, key, code, EmailCodeExpiration).Err()
}

// 5 VerifyEmailCode 校验邮箱验证码，校验通过后立即失效
func (s *RedisService) VerifyEmailCode(email, code string) (bool, error) {
	key := "email_code:" + email
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if val != code {
		return false, nil
	}

	// 验证码一次性使用
	s.Client.Del(s.Ctx, key)
	return true, nil
}

// 6 CacheDashboardStats 缓存仪表盘统计数据
func (s *RedisService) CacheDashboardStats(key string, stats interface{}, expiration time.Duration) error {
	return s.Set("dashboard:"+key, stats, expiration)
}

// 7 GetDashboardStats 读取仪表盘统计缓存
func (s *RedisService) GetDashboardStats(key string, dest interface{}) error {
	return s.Get("dashboard:"+key, dest)
}
