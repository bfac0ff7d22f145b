package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// 内存缓存
type memoryCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

// 全局缓存实例
var cache = &memoryCache{
	items: make(map[string]cacheEntry),
}

// cacheKey 由请求路径和排序后的查询参数生成缓存键
func cacheKey(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	var queryKeys []string
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var sb strings.Builder
	sb.WriteString(path)
	sb.WriteString("?")
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			sb.WriteString(key + "=" + value + "&")
		}
	}

	hasher := md5.New()
	hasher.Write([]byte(sb.String()))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Cache 创建GET响应缓存中间件
// 列表类接口（FAQ、POI分类等）变化不频繁，短时缓存减轻数据库压力
func Cache(expiration time.Duration) gin.HandlerFunc {
	if expiration <= 0 {
		expiration = 5 * time.Minute
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)

		cache.RLock()
		entry, found := cache.items[key]
		cache.RUnlock()

		if found && entry.Expiration.After(time.Now()) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		// 只缓存成功响应
		if c.Writer.Status() == http.StatusOK {
			cache.Lock()
			cache.items[key] = cacheEntry{
				Content:    writer.body.Bytes(),
				Expiration: time.Now().Add(expiration),
			}
			cache.Unlock()
		}
	}
}

// PurgeCache 清除所有缓存
func PurgeCache() {
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// 定期清理过期缓存
func init() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			cache.Lock()
			for key, entry := range cache.items {
				if entry.Expiration.Before(now) {
					delete(cache.items, key)
				}
			}
			cache.Unlock()
		}
	}()
}
