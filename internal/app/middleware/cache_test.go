package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesRepeatedGets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits int32
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"n": atomic.LoadInt32(&hits)})
	})

	first := doGet(r, "/cached", "Bearer token-a")
	second := doGet(r, "/cached", "Bearer token-a")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

// Two principals hitting the same path must never share a cache entry;
// list responses are scoped to the caller.
func TestCacheKeyIncludesCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits int32
	r := gin.New()
	r.GET("/scoped", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"caller": c.GetHeader("Authorization")})
	})

	a := doGet(r, "/scoped", "Bearer token-a")
	b := doGet(r, "/scoped", "Bearer token-b")

	assert.NotEqual(t, a.Body.String(), b.Body.String())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCacheSkipsErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits int32
	r := gin.New()
	r.GET("/flaky", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
	})

	doGet(r, "/flaky", "Bearer token-a")
	doGet(r, "/flaky", "Bearer token-a")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestTokenBucket(t *testing.T) {
	bucket := NewTokenBucket(1, 2)

	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	// the bucket is drained and refills at one token per second
	assert.False(t, bucket.Allow())
}

func TestIPRateLimiterRejectsBursts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(IPRateLimiter(1, 2))
	r.GET("/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
