package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64   // 每秒填充的令牌数
	capacity   int       // 桶的容量
	tokens     float64   // 当前令牌数
	lastRefill time.Time // 上次填充时间
	mu         sync.Mutex
}

// NewTokenBucket 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

var (
	limiters   = make(map[string]*TokenBucket)
	limitersMu sync.RWMutex
)

// getLimiter 按键获取或创建限流器
func getLimiter(key string, rate float64, burst int) *TokenBucket {
	limitersMu.RLock()
	limiter, exists := limiters[key]
	limitersMu.RUnlock()

	if !exists {
		limiter = NewTokenBucket(rate, burst)
		limitersMu.Lock()
		limiters[key] = limiter
		limitersMu.Unlock()
	}

	return limiter
}

// IPRateLimiter 按客户端IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getLimiter(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CombinedRateLimiter 按IP和路径组合限流
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.Request.URL.Path
		limiter := getLimiter(key, rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// 定期清理闲置的限流器，避免map无限增长
func init() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			limitersMu.Lock()
			limiters = make(map[string]*TokenBucket)
			limitersMu.Unlock()
		}
	}()
}
